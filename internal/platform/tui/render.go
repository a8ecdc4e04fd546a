package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// palette maps core colours to ANSI colour codes.
var palette = map[core.Color]string{
	core.ColorRed:     "9",
	core.ColorGreen:   "10",
	core.ColorYellow:  "11",
	core.ColorBlue:    "12",
	core.ColorMagenta: "13",
	core.ColorCyan:    "14",
	core.ColorWhite:   "15",
	core.ColorOrange:  "208",
	core.ColorGray:    "245",
}

// ScreenRenderer turns Screen buffers into styled strings for one output.
// SSH sessions each get their own so colour detection follows the client.
type ScreenRenderer struct {
	styles map[core.Color]lipgloss.Style
}

// NewScreenRenderer builds styles on r. A nil r uses the default renderer.
func NewScreenRenderer(r *lipgloss.Renderer) *ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := map[core.Color]lipgloss.Style{
		core.ColorDefault: r.NewStyle(),
	}
	for c, code := range palette {
		styles[c] = r.NewStyle().Foreground(lipgloss.Color(code))
	}
	styles[core.ColorWhite] = styles[core.ColorWhite].Bold(true)
	return &ScreenRenderer{styles: styles}
}

// Render converts a Screen to a string, grouping runs of equal colour to
// keep escape sequences down.
func (sr *ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := sr.styles[color]
			if !ok {
				style = sr.styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

var defaultScreenRenderer = NewScreenRenderer(nil)

// RenderScreen renders with the process-wide default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultScreenRenderer.Render(s)
}
