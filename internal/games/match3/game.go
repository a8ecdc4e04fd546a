// Package match3 provides the match-3 puzzle game for the terminal platform.
package match3

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

const (
	hintTicks    = 120 // How long a hint stays highlighted
	messageTicks = 90
)

// Package-level settings applied to every game created afterwards.
var (
	settingsMu sync.RWMutex
	gameConfig = config.DefaultMatch3Config()
	gameLogger = log.New(io.Discard)
)

// Configure sets the configuration used by new games.
func Configure(cfg config.Match3Config) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	gameConfig = cfg
}

// SetLogger sets the logger handed to new engines.
func SetLogger(l *log.Logger) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if l != nil {
		gameLogger = l
	}
}

func settings() (config.Match3Config, *log.Logger) {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return gameConfig, gameLogger
}

func init() {
	registry.Register("match3", func() registry.Game {
		return New("match3", "Match-3", false)
	})
	registry.Register("match3_endless", func() registry.Game {
		return New("match3_endless", "Match-3 Endless", true)
	})
}

type selectResult struct {
	res core.Result
	err error
}

// Game is the playable match-3 board: a cursor, the engine and the
// animator that paces its cascades.
type Game struct {
	id      string
	title   string
	endless bool

	cfg      config.Match3Config
	override *config.Match3Config
	logger   *log.Logger
	engine   *core.Engine
	counter  *core.Counter
	anim     *TickAnimator

	// Engine calls run off the tick loop and report back here.
	results chan selectResult
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	busy    bool

	screenW  int
	screenH  int
	tickRate int
	seed     int64

	cursor      core.Coord
	hint        core.Move
	hintUntil   uint64
	message     string
	messageTill uint64

	gameOver bool
	paused   bool
	failed   error
}

// New creates a game variant. Endless games ignore the move budget.
func New(id, title string, endless bool) *Game {
	return &Game{id: id, title: title, endless: endless}
}

// UseConfig replaces the package configuration for this game from the
// next Reset on. SSH sessions use it to pick a difficulty per player.
func (g *Game) UseConfig(cfg config.Match3Config) {
	g.override = &cfg
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.title
}

// Reset stops any running cascade and deals a new board.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.Close()

	g.cfg, g.logger = settings()
	if g.override != nil {
		g.cfg = *g.override
	}
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.seed = cfg.Seed
	g.gameOver = false
	g.paused = false
	g.failed = nil
	g.busy = false
	g.hintUntil = 0
	g.message = ""
	g.results = make(chan selectResult, 1)
	g.ctx, g.cancel = context.WithCancel(context.Background())

	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}
	g.anim = NewTickAnimator(time.Second / time.Duration(g.tickRate))

	moves := g.cfg.MoveBudget()
	if g.endless {
		moves = -1
	}
	g.counter = core.NewCounter(moves)

	ec, err := g.cfg.Engine()
	if err == nil {
		g.engine, err = core.NewEngine(ec, core.NewRand(uint64(cfg.Seed)), g.anim, g.counter,
			core.WithLogger(g.logger.With("game", g.id)))
	}
	if err != nil {
		g.logger.Error("cannot start game", "game", g.id, "err", err)
		g.engine = nil
		g.failed = err
		g.gameOver = true
		return
	}

	mid := ec.Size / 2
	g.cursor = core.C(mid, mid)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.engine == nil || g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	g.anim.Advance()
	g.collect()

	if g.gameOver {
		if in.Has(platformcore.ActionRestart) {
			g.Reset(platformcore.RuntimeConfig{
				ScreenW:  g.screenW,
				ScreenH:  g.screenH,
				TickRate: g.tickRate,
				Seed:     g.seed + 1,
			})
		}
		return platformcore.StepResult{State: g.State()}
	}

	g.moveCursor(in)

	switch {
	case in.Has(platformcore.ActionConfirm):
		g.selectAtCursor()
	case in.Has(platformcore.ActionBack):
		if !g.busy {
			g.engine.Deselect()
		}
	case in.Has(platformcore.ActionHint):
		g.showHint()
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in platformcore.InputFrame) {
	size := g.engine.Config().Size
	for _, m := range []struct {
		action platformcore.Action
		dir    core.Dir
	}{
		{platformcore.ActionUp, core.DirUp},
		{platformcore.ActionDown, core.DirDown},
		{platformcore.ActionLeft, core.DirLeft},
		{platformcore.ActionRight, core.DirRight},
	} {
		if in.Has(m.action) {
			next := g.cursor.Step(m.dir)
			g.cursor = core.C(
				platformcore.Clamp(next.X, 0, size-1),
				platformcore.Clamp(next.Y, 0, size-1),
			)
		}
	}
}

// selectAtCursor hands the cursor cell to the engine on a worker goroutine,
// because a completed swap blocks until its cascade has played out.
func (g *Game) selectAtCursor() {
	if g.busy {
		return
	}
	g.busy = true
	g.hintUntil = 0

	engine, at, ctx, results := g.engine, g.cursor, g.ctx, g.results
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		res, err := engine.Select(ctx, at)
		results <- selectResult{res: res, err: err}
	}()
}

// collect applies a finished engine call, if there is one.
func (g *Game) collect() {
	select {
	case r := <-g.results:
		g.busy = false
		g.apply(r)
	default:
	}
}

func (g *Game) apply(r selectResult) {
	if r.err != nil {
		g.logger.Error("engine call failed", "game", g.id, "err", r.err)
		g.failed = r.err
		g.gameOver = true
		return
	}

	switch r.res.Outcome {
	case core.OutcomeMatched:
		msg := fmt.Sprintf("+%d", r.res.Points)
		if r.res.Passes > 1 {
			msg += fmt.Sprintf("  cascade x%d", r.res.Passes)
		}
		if r.res.Reshuffled {
			msg += "  reshuffled"
		}
		g.say(msg)
	case core.OutcomeNoMatch, core.OutcomeSameValue:
		g.say("no match")
	case core.OutcomeNoMoves:
		g.gameOver = true
	}

	if !g.counter.HasMovesRemaining() {
		g.gameOver = true
		return
	}
	if !g.engine.Board().HasPossibleMove() {
		g.say("no moves left")
		g.gameOver = true
	}
}

func (g *Game) showHint() {
	if g.busy {
		return
	}
	m, ok := g.engine.Hint()
	if !ok {
		g.say("no moves left")
		return
	}
	g.hint = m
	g.hintUntil = g.anim.Now() + hintTicks
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageTill = g.anim.Now() + messageTicks
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	st := platformcore.GameState{
		GameOver: g.gameOver,
		Paused:   g.paused,
		Busy:     g.busy,
	}
	if g.counter != nil {
		st.Score = g.counter.Score()
		st.MovesLeft = g.counter.MovesLeft()
		st.MovesUsed = g.counter.MovesUsed()
	}
	return st
}

// Seed returns the seed the current board was dealt from.
func (g *Game) Seed() int64 {
	return g.seed
}

// Close cancels in-flight engine calls and waits for them to return.
func (g *Game) Close() {
	if g.cancel != nil {
		g.cancel()
	}
	if g.anim != nil {
		g.anim.Close()
	}
	g.wg.Wait()
}
