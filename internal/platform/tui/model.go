package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// helpHeight is the number of rows kept under the game for the key help.
const helpHeight = 1

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether score has been saved for current game over
	lastSaved  storage.ScoreEntry
	renderer   *ScreenRenderer

	// With menuReturn set, quitting hands control back to a menu instead
	// of ending the program.
	menuReturn bool
	backToMenu bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the logger used for storage failures.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithScreenRenderer renders through r, e.g. one bound to an SSH session.
func WithScreenRenderer(r *ScreenRenderer) ModelOption {
	return func(m *Model) {
		if r != nil {
			m.renderer = r
		}
	}
}

// WithMenuReturn makes the quit key return to the menu.
func WithMenuReturn() ModelOption {
	return func(m *Model) {
		m.menuReturn = true
	}
}

// ConfigurableGame is a game that accepts its own configuration.
type ConfigurableGame interface {
	UseConfig(cfg config.Match3Config)
}

// ConfigureGame gives game the base configuration adjusted for preset, if
// the game can be configured.
func ConfigureGame(game registry.Game, base config.Match3Config, preset config.DifficultyPreset) {
	cg, ok := game.(ConfigurableGame)
	if !ok {
		return
	}
	config.ApplyPreset(&base, preset)
	cg.UseConfig(base)
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		store:      store,
		logger:     log.New(io.Discard),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		renderer:   defaultScreenRenderer,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH))
	m.config.ScreenH = gameHeight(cfg.ScreenH)
	return m
}

func gameHeight(h int) int {
	return max(h-helpHeight, 0)
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if msg.String() == "?" {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.game.Close()
		if m.menuReturn {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize only resizes the buffer; the board is re-centred on the
// next render, so a resize never costs the player their game.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = gameHeight(msg.Height)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records a finished game. Zero scores are not worth a row.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	entry, err := m.store.SaveScore(storage.ScoreEntry{
		GameID: m.game.ID(),
		Score:  m.gameState.Score,
		Moves:  m.gameState.MovesUsed,
		Seed:   uint64(m.config.Seed),
	})
	if err != nil {
		m.logger.Error("cannot save score", "game", m.game.ID(), "err", err)
		return
	}
	m.lastSaved = entry
	m.logger.Info("score saved", "game", entry.GameID, "score", entry.Score, "run", entry.RunID)
}

// saveScreenshot writes the plain-text screen to ~/.match3/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".match3", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot dir", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the game and the key help line.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return m.renderer.Render(m.screen) + "\n" + m.help.View(m.keyMapper.Keys())
}

// BackToMenu reports whether the player left the game for the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// LastSaved returns the most recently stored score entry, if any.
func (m Model) LastSaved() storage.ScoreEntry {
	return m.lastSaved
}

// Run starts the Bubble Tea program with the given game.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	game.Close()
	return err
}
