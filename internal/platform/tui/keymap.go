package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// GameKeyMap defines the key bindings used while a game is running.
type GameKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Cancel  key.Binding
	Hint    key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Cancel, k.Hint, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Cancel, k.Hint},
		{k.Pause, k.Restart, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Cancel:  key.NewBinding(key.WithKeys("x", "backspace"), key.WithHelp("x", "cancel")),
		Hint:    key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hint")),
		Pause:   key.NewBinding(key.WithKeys("p", "esc"), key.WithHelp("p", "pause")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	keys     GameKeyMap
	bindings []struct {
		binding *key.Binding
		action  core.Action
	}
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	km := &KeyMapper{keys: DefaultGameKeyMap()}
	k := &km.keys
	km.bindings = []struct {
		binding *key.Binding
		action  core.Action
	}{
		{&k.Quit, core.ActionQuit},
		{&k.Up, core.ActionUp},
		{&k.Down, core.ActionDown},
		{&k.Left, core.ActionLeft},
		{&k.Right, core.ActionRight},
		{&k.Select, core.ActionConfirm},
		{&k.Cancel, core.ActionBack},
		{&k.Hint, core.ActionHint},
		{&k.Pause, core.ActionPause},
		{&k.Restart, core.ActionRestart},
	}
	return km
}

// Keys returns the bindings, for help rendering.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, *b.binding) {
			return b.action, b.action == core.ActionQuit
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
