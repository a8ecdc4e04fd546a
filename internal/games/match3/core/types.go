// Package core provides the board and match engine for the match-3 game.
// This package is UI-agnostic: rendering and timing are supplied by the host
// through the Animator and Tracker interfaces.
package core

import "fmt"

// Dir represents one of the four orthogonal directions on the board.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y: row 0 is the top of the board and gravity pulls toward larger Y.
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// PieceID is the opaque identity of a piece. Zero means "no piece".
type PieceID uint64

// Piece is a single tile on the board.
type Piece struct {
	ID    PieceID
	Value int   // Index into the palette, [0, palette)
	Pos   Coord // Current board coordinate
}

// String returns a short debug representation.
func (p Piece) String() string {
	return fmt.Sprintf("#%d:%d@%s", p.ID, p.Value, p.Pos)
}

// PieceSet is a set of piece identities used to exclude already counted
// pieces from run detection.
type PieceSet map[PieceID]struct{}

// Has reports whether id is in the set. A nil set contains nothing.
func (s PieceSet) Has(id PieceID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s PieceSet) Add(id PieceID) {
	s[id] = struct{}{}
}

// Vec2 is a position in the host's local coordinate space.
type Vec2 struct {
	X float64
	Y float64
}

// RefillPolicy controls where refill pieces get their identity.
type RefillPolicy string

const (
	// RefillRecycle reuses the identities of the pieces removed in the same pass.
	RefillRecycle RefillPolicy = "recycle"
	// RefillFresh allocates a new identity for every refilled piece.
	RefillFresh RefillPolicy = "fresh"
)
