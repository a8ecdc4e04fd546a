package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		key    string
		want   core.Action
		isQuit bool
	}{
		{"up", core.ActionUp, false},
		{"w", core.ActionUp, false},
		{"left", core.ActionLeft, false},
		{"d", core.ActionRight, false},
		{"enter", core.ActionConfirm, false},
		{"x", core.ActionBack, false},
		{"h", core.ActionHint, false},
		{"esc", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"q", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"z", core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got, quit := km.MapKey(keyMsg(tc.key))
			if got != tc.want || quit != tc.isQuit {
				t.Errorf("MapKey(%q) = %v, %v, want %v, %v", tc.key, got, quit, tc.want, tc.isQuit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(keyMsg("h"), &frame) {
		t.Fatal("hint reported as quit")
	}
	if !frame.Has(core.ActionHint) {
		t.Error("frame missing ActionHint")
	}
	if !km.MapKeyToFrame(keyMsg("q"), &frame) {
		t.Error("q not reported as quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not reach the game")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := map[string]MenuAction{
		"k":     MenuActionUp,
		"j":     MenuActionDown,
		"left":  MenuActionLeft,
		"l":     MenuActionRight,
		"enter": MenuActionSelect,
		"tab":   MenuActionScoreboard,
		"q":     MenuActionQuit,
		"z":     MenuActionNone,
	}
	for k, want := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(k)); got != want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", k, got, want)
		}
	}
}
