package match3

import (
	"fmt"
	"math"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const (
	cellW     = 3 // Terminal columns per board cell
	hudHeight = 2
)

// pieceGlyphs gives each value a distinct shape as well as a colour.
var pieceGlyphs = []rune{'●', '▲', '■', '◆', '★', '♥', '♣', '♠'}

func glyph(value int) (rune, platformcore.Color) {
	if value < 0 {
		return ' ', platformcore.ColorDefault
	}
	return pieceGlyphs[value%len(pieceGlyphs)],
		platformcore.PieceColors[value%len(platformcore.PieceColors)]
}

// boardRect returns the framed board area centred below the HUD.
func (g *Game) boardRect(dst *platformcore.Screen) platformcore.Rect {
	size := g.engine.Config().Size
	w := size*cellW + 2
	h := size + 2
	return platformcore.NewRect((dst.Width()-w)/2, hudHeight+1, w, h)
}

func (g *Game) fits(dst *platformcore.Screen) bool {
	r := g.boardRect(dst)
	return r.X >= 0 && r.Bottom()+1 <= dst.Height()
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.engine == nil {
		msg := "Cannot start game"
		if g.failed != nil {
			msg = g.failed.Error()
		}
		g.renderOverlay(dst, msg, "Check the match3 config")
		return
	}
	if !g.fits(dst) {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	frame := g.boardRect(dst)
	dst.DrawBox(frame, platformcore.ColorGray)
	g.renderPieces(dst, frame)
	g.renderMarkers(dst, frame)
	g.renderMessage(dst, frame)

	switch {
	case g.gameOver && g.failed != nil:
		g.renderOverlay(dst, "Game Over", g.failed.Error())
	case g.gameOver:
		g.renderOverlay(dst, fmt.Sprintf("Game Over  Score: %d", g.counter.Score()), "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := " " + g.title
	if g.counter != nil {
		hud += fmt.Sprintf(" | Score: %d", g.counter.Score())
		if left := g.counter.MovesLeft(); left >= 0 {
			hud += fmt.Sprintf(" | Moves: %d", left)
		} else {
			hud += fmt.Sprintf(" | Moves played: %d", g.counter.MovesUsed())
		}
	}
	dst.DrawTextWithColor(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetWithColor(x, 1, '─', platformcore.ColorGray)
	}
}

// renderPieces draws every sprite at its interpolated position. Pieces
// still falling in from above the board are clipped by the frame.
func (g *Game) renderPieces(dst *platformcore.Screen, frame platformcore.Rect) {
	size := g.engine.Config().Size
	pieceSize := g.engine.Config().PieceSize
	inner := platformcore.NewRect(frame.X+1, frame.Y+1, size*cellW, size)

	for _, s := range g.anim.Sprites() {
		if s.Scale < 0.34 {
			continue
		}
		col := s.Pos.X/pieceSize - 0.5
		row := -s.Pos.Y/pieceSize - 0.5
		x := inner.X + int(math.Round(col*cellW)) + 1
		y := inner.Y + int(math.Round(row))
		if !inner.Contains(x, y) {
			continue
		}

		r, c := glyph(s.Value)
		if s.Scale < 0.67 {
			r = '•'
		}
		dst.SetWithColor(x, y, r, c)
	}
}

// renderMarkers brackets the cursor, the selection and an active hint.
func (g *Game) renderMarkers(dst *platformcore.Screen, frame platformcore.Rect) {
	bracket := func(at core.Coord, left, right rune, c platformcore.Color) {
		x := frame.X + 1 + at.X*cellW
		y := frame.Y + 1 + at.Y
		dst.SetWithColor(x, y, left, c)
		dst.SetWithColor(x+cellW-1, y, right, c)
	}

	if g.anim.Now() < g.hintUntil {
		bracket(g.hint.A, '>', '<', platformcore.ColorGreen)
		bracket(g.hint.B, '>', '<', platformcore.ColorGreen)
	}
	if sel, ok := g.engine.Selected(); ok {
		bracket(sel, '(', ')', platformcore.ColorYellow)
	}
	bracket(g.cursor, '[', ']', platformcore.ColorWhite)
}

func (g *Game) renderMessage(dst *platformcore.Screen, frame platformcore.Rect) {
	if g.message != "" && g.anim.Now() < g.messageTill {
		x := (dst.Width() - utf8.RuneCountInString(g.message)) / 2
		dst.DrawTextWithColor(x, frame.Bottom(), g.message, platformcore.ColorYellow)
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	maxLen := utf8.RuneCountInString(line1)
	if n := utf8.RuneCountInString(line2); n > maxLen {
		maxLen = n
	}
	box := platformcore.NewRect((dst.Width()-maxLen-4)/2, (dst.Height()-5)/2, maxLen+4, 5)

	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
