package core

// Color is a foreground colour for a screen cell.
// The platform maps each value to an ANSI colour.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorOrange
	ColorGray
)

// PieceColors is the palette order used for piece values.
var PieceColors = []Color{
	ColorRed,
	ColorGreen,
	ColorYellow,
	ColorBlue,
	ColorMagenta,
	ColorCyan,
	ColorOrange,
	ColorWhite,
}
