package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func TestScreenRendererPlainText(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.ANSI256)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.SetWithColor(2, 0, '●', core.ColorRed)
	s.SetWithColor(0, 1, '▲', core.ColorGreen)

	got := ansi.Strip(sr.Render(s))
	want := "ab● \n▲   "
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestScreenRendererColours(t *testing.T) {
	r := lipgloss.NewRenderer(&strings.Builder{})
	r.SetColorProfile(termenv.ANSI256)
	sr := NewScreenRenderer(r)

	s := core.NewScreen(3, 1)
	s.SetWithColor(0, 0, '●', core.ColorOrange)

	got := sr.Render(s)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Render() = %q, want ANSI escapes", got)
	}
	if !strings.Contains(got, "●") {
		t.Errorf("Render() = %q lost the glyph", got)
	}
}
