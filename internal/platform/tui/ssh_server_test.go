package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

func newTestSession(t *testing.T, store *storage.Store) SessionModel {
	t.Helper()
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	m := NewSessionModel(SessionOptions{
		Store:    store,
		Config:   cfg,
		Game:     config.DefaultMatch3Config(),
		Username: "tester",
	})
	t.Cleanup(m.Close)
	return m
}

func sessionKeys(m SessionModel, keys ...string) (SessionModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(SessionModel)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSessionPlaysAndReturnsToMenu(t *testing.T) {
	m := newTestSession(t, nil)

	m, cmd := sessionKeys(m, "enter")
	require.Equal(t, screenGame, m.screen)
	assert.False(t, isQuit(cmd), "starting a game must not end the session")
	assert.Equal(t, "match3", m.game.game.ID())

	next, _ := m.Update(TickMsg{})
	m = next.(SessionModel)
	assert.Contains(t, m.View(), "Moves: 50")

	m, cmd = sessionKeys(m, "q")
	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Difficulty")
}

func TestSessionKeepsPresetPerPlayer(t *testing.T) {
	m := newTestSession(t, nil)

	m, _ = sessionKeys(m, "left", "enter") // normal -> easy
	next, _ := m.Update(TickMsg{})
	m = next.(SessionModel)
	assert.Contains(t, m.View(), "Moves: 70")

	m, _ = sessionKeys(m, "q")
	assert.Equal(t, config.DifficultyEasy, m.menu.Preset())
}

func TestSessionScoreboard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer store.Close()

	m := newTestSession(t, store)
	m, cmd := sessionKeys(m, "tab")
	require.Equal(t, screenScores, m.screen)
	assert.False(t, isQuit(cmd))

	m, cmd = sessionKeys(m, "esc")
	assert.Equal(t, screenMenu, m.screen)
	assert.False(t, isQuit(cmd))
}

func TestSessionQuitFromMenu(t *testing.T) {
	m := newTestSession(t, nil)
	_, cmd := sessionKeys(m, "q")
	assert.True(t, isQuit(cmd))
}

func TestSessionIDsAreUnique(t *testing.T) {
	a := newTestSession(t, nil)
	b := newTestSession(t, nil)
	assert.NotEqual(t, a.ID(), b.ID())
}
