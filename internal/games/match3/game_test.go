package match3

import (
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vovakirdan/tui-match3/internal/config"
	platformcore "github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestGame(t *testing.T, id string, endless bool) *Game {
	t.Helper()
	Configure(config.DefaultMatch3Config())

	g := New(id, "Test", endless)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42})
	t.Cleanup(g.Close)
	require.NotNil(t, g.engine, "game failed to start: %v", g.failed)
	return g
}

func press(actions ...platformcore.Action) platformcore.InputFrame {
	in := platformcore.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// settle steps the game until no engine call is in flight.
func settle(t *testing.T, g *Game) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for g.busy && time.Now().Before(deadline) {
		g.Step(platformcore.NewInputFrame())
		runtime.Gosched()
	}
	require.False(t, g.busy, "engine call never finished")
}

func playHint(t *testing.T, g *Game) core.Move {
	t.Helper()
	m, ok := g.engine.Hint()
	require.True(t, ok, "fresh board has no move")

	g.cursor = m.A
	g.Step(press(platformcore.ActionConfirm))
	settle(t, g)
	g.cursor = m.B
	g.Step(press(platformcore.ActionConfirm))
	settle(t, g)
	return m
}

func TestGamePlaysAMove(t *testing.T) {
	g := newTestGame(t, "match3", false)

	playHint(t, g)

	st := g.State()
	assert.Positive(t, st.Score)
	assert.Equal(t, 49, st.MovesLeft)
	assert.Equal(t, 1, st.MovesUsed)
	assert.False(t, st.Busy)
	assert.True(t, g.engine.Board().Full())
}

func TestGameEndlessHasNoBudget(t *testing.T) {
	g := newTestGame(t, "match3_endless", true)

	playHint(t, g)
	assert.Negative(t, g.State().MovesLeft)
	assert.False(t, g.State().GameOver)
}

func TestGameCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, "match3", false)
	g.cursor = core.C(0, 0)

	g.Step(press(platformcore.ActionUp, platformcore.ActionLeft))
	assert.Equal(t, core.C(0, 0), g.cursor)

	g.Step(press(platformcore.ActionRight, platformcore.ActionDown))
	assert.Equal(t, core.C(1, 1), g.cursor)
}

func TestGamePauseFreezesCascade(t *testing.T) {
	g := newTestGame(t, "match3", false)
	m, ok := g.engine.Hint()
	require.True(t, ok)

	g.cursor = m.A
	g.Step(press(platformcore.ActionConfirm))
	settle(t, g)
	g.cursor = m.B
	g.Step(press(platformcore.ActionConfirm))
	g.Step(press(platformcore.ActionPause))
	require.True(t, g.State().Paused)

	now := g.anim.Now()
	for i := 0; i < 50; i++ {
		g.Step(platformcore.NewInputFrame())
	}
	assert.Equal(t, now, g.anim.Now(), "clock advanced while paused")

	g.Step(press(platformcore.ActionPause))
	settle(t, g)
	assert.Equal(t, 1, g.State().MovesUsed)
}

func TestGameCloseStopsCascade(t *testing.T) {
	g := newTestGame(t, "match3", false)
	m, ok := g.engine.Hint()
	require.True(t, ok)

	g.cursor = m.A
	g.Step(press(platformcore.ActionConfirm))
	settle(t, g)
	g.cursor = m.B
	g.Step(press(platformcore.ActionConfirm))
	require.True(t, g.busy)

	// Close releases the goroutine stuck in the swap wait; goleak checks
	// that nothing is left behind.
	g.Close()

	// The cascade still finished in the model.
	b := g.engine.Board()
	assert.True(t, b.Full(), "board left with holes after Close")
	assert.False(t, b.HasMatches())
	assert.False(t, g.engine.Locked())
	assert.Positive(t, g.counter.Score())
	assert.Equal(t, 1, g.counter.MovesUsed())
}

func TestGameRunsOutOfMoves(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Scoring.Moves = 1
	Configure(cfg)
	t.Cleanup(func() { Configure(config.DefaultMatch3Config()) })

	g := New("match3", "Test", false)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	t.Cleanup(g.Close)

	playHint(t, g)
	assert.True(t, g.State().GameOver)
	assert.Equal(t, 0, g.State().MovesLeft)
}

func TestGameHintHighlightsMove(t *testing.T) {
	g := newTestGame(t, "match3", false)
	g.Step(press(platformcore.ActionHint))

	want, _ := g.engine.Hint()
	assert.Equal(t, want, g.hint)
	assert.Greater(t, g.hintUntil, g.anim.Now())
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, "match3", false)
	screen := platformcore.NewScreen(80, 24)

	g.Render(screen)

	assert.True(t, strings.Contains(screen.Row(0), "Score: 0"), "HUD = %q", screen.Row(0))
	assert.True(t, strings.Contains(screen.Row(0), "Moves: 50"), "HUD = %q", screen.Row(0))

	frame := g.boardRect(screen)
	assert.Equal(t, '┌', screen.Get(frame.X, frame.Y))
	assert.Equal(t, '┘', screen.Get(frame.Right()-1, frame.Bottom()-1))

	// Every board cell shows a piece glyph in its centre column.
	size := g.engine.Config().Size
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cell := screen.GetCell(frame.X+1+x*cellW+1, frame.Y+1+y)
			want, color := glyph(g.engine.Board().Value(core.C(x, y)))
			assert.Equal(t, want, cell.Rune, "cell (%d,%d)", x, y)
			assert.Equal(t, color, cell.Color, "cell (%d,%d)", x, y)
		}
	}
}

func TestGameRenderTooSmall(t *testing.T) {
	g := newTestGame(t, "match3", false)
	screen := platformcore.NewScreen(20, 8)

	g.Render(screen)
	assert.Contains(t, screen.String(), "too small")
}

func TestGameBadConfigEndsGame(t *testing.T) {
	cfg := config.DefaultMatch3Config()
	cfg.Board.Palette = 1
	Configure(cfg)
	t.Cleanup(func() { Configure(config.DefaultMatch3Config()) })

	g := New("match3", "Test", false)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	t.Cleanup(g.Close)

	assert.True(t, g.State().GameOver)
	assert.Error(t, g.failed)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "PALETTE")
}
