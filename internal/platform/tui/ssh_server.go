package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

// shutdownTimeout bounds how long open sessions get to finish.
const shutdownTimeout = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.match3/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	TickRate int

	// Game is the base board configuration; each session applies its
	// chosen difficulty on top of it.
	Game   config.Match3Config
	Preset config.DifficultyPreset
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Game:        config.DefaultMatch3Config(),
		Preset:      config.DifficultyNormal,
	}
}

// SSHServer serves the game over SSH with Wish.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a server. store may be nil, in which case scores
// are not kept.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger.WithPrefix("match3-ssh"),
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".match3", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil, nil
	}

	rc := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}
	renderer := NewScreenRenderer(bubbletea.MakeRenderer(sess))

	model := NewSessionModel(SessionOptions{
		Store:    s.store,
		Config:   rc,
		Game:     s.config.Game,
		Preset:   s.config.Preset,
		Username: sess.User(),
		Renderer: renderer,
		Logger:   s.logger,
	})
	go func() {
		<-sess.Context().Done()
		model.Close()
	}()
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		s.logger.Info("session started", "user", sess.User(), "remote", sess.RemoteAddr().String())
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...")
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// SessionOptions configures a SessionModel.
type SessionOptions struct {
	Store    *storage.Store
	Config   core.RuntimeConfig
	Game     config.Match3Config
	Preset   config.DifficultyPreset
	Username string
	Renderer *ScreenRenderer
	Logger   *log.Logger
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScores
)

// SessionModel drives one remote player through menu, game and
// scoreboard without ever ending the program in between.
type SessionModel struct {
	opts   SessionOptions
	id     uuid.UUID
	logger *log.Logger

	// live is shared by every copy of the model so the connection
	// handler can stop the running game when the client drops.
	live *liveGame

	screen     sessionScreen
	config     core.RuntimeConfig
	menu       MenuModel
	game       Model
	scoreboard ScoreboardModel
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(opts SessionOptions) SessionModel {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Preset == "" {
		opts.Preset = config.DifficultyNormal
	}
	id := uuid.New()

	return SessionModel{
		opts:   opts,
		id:     id,
		logger: opts.Logger.With("session", id.String()[:8], "user", opts.Username),
		live:   &liveGame{},
		config: opts.Config,
		menu:   NewMenuModel(opts.Store, opts.Config, opts.Preset),
	}
}

type liveGame struct {
	mu   sync.Mutex
	game registry.Game
}

func (l *liveGame) set(g registry.Game) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.game = g
}

func (l *liveGame) close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.game != nil {
		l.game.Close()
		l.game = nil
	}
}

// ID returns the session identifier.
func (m SessionModel) ID() uuid.UUID {
	return m.id
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu forwards to the menu. The menu ends its own program when a
// choice is made, so those commands are dropped here.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.quitting:
		return m, tea.Quit

	case m.menu.openScoreboard:
		m.menu.openScoreboard = false
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenScores
		return m, m.scoreboard.Init()

	case m.menu.selected != nil:
		id := m.menu.selected.GameID
		m.menu.selected = nil
		return m.startGame(id)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Error("cannot create game", "game", id, "err", err)
		return m, nil
	}
	ConfigureGame(game, m.opts.Game, m.menu.Preset())
	m.live.set(game)

	m.config.Seed = time.Now().UnixNano()
	m.game = NewModel(game, m.opts.Store, m.config,
		WithLogger(m.logger),
		WithScreenRenderer(m.opts.Renderer),
		WithMenuReturn(),
	)
	m.screen = screenGame
	m.logger.Info("game started", "game", id, "preset", m.menu.Preset(), "seed", m.config.Seed)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	if m.game.BackToMenu() {
		m.logger.Info("game left", "game", m.game.game.ID(), "score", m.game.gameState.Score)
		m.live.set(nil)
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	m.scoreboard = next.(ScoreboardModel)

	switch {
	case m.scoreboard.quitting:
		return m, tea.Quit
	case m.scoreboard.goingBack:
		return m.backToMenu()
	}
	return m, cmd
}

// backToMenu rebuilds the menu so best scores are current.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	preset := m.menu.Preset()
	m.menu = NewMenuModel(m.opts.Store, m.config, preset)
	m.screen = screenMenu
	return m, nil
}

// View renders the active screen.
func (m SessionModel) View() string {
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// Close stops a game still running in the session.
func (m SessionModel) Close() {
	m.live.close()
}
