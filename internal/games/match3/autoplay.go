package match3

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// AutoplayResult summarises a headless game.
type AutoplayResult struct {
	Seed      uint64
	Score     int
	Moves     int
	Removed   int
	Cascades  int // Turns that needed more than one pass
	Reshuffle int
	Final     core.Snapshot
}

// AutoplayOption configures Autoplay.
type AutoplayOption func(*autoplaySettings)

type autoplaySettings struct {
	anim core.Animator
}

// WithPacing makes every animation take its configured wall-clock time,
// so a watched run moves at the speed of the real game.
func WithPacing() AutoplayOption {
	return func(s *autoplaySettings) {
		s.anim = core.SleepAnimator{}
	}
}

// Autoplay plays a game without animation by always taking the hint.
// It stops when the move budget runs out, the board is dead or maxTurns
// turns have been played. maxTurns <= 0 means no turn limit, which only
// terminates with a finite move budget.
func Autoplay(ctx context.Context, cfg config.Match3Config, seed uint64, maxTurns int, logger *log.Logger, opts ...AutoplayOption) (AutoplayResult, error) {
	out := AutoplayResult{Seed: seed}
	settings := autoplaySettings{anim: core.NopAnimator{}}
	for _, opt := range opts {
		opt(&settings)
	}

	ec, err := cfg.Engine()
	if err != nil {
		return out, err
	}
	if maxTurns <= 0 && cfg.MoveBudget() < 0 {
		return out, fmt.Errorf("match3: autoplay needs a move budget or a turn limit")
	}

	counter := core.NewCounter(cfg.MoveBudget())
	if logger == nil {
		logger = log.New(io.Discard)
	}
	engine, err := core.NewEngine(ec, core.NewRand(seed), settings.anim, counter, core.WithLogger(logger))
	if err != nil {
		return out, err
	}

	for turn := 0; maxTurns <= 0 || turn < maxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if !counter.HasMovesRemaining() {
			break
		}
		m, ok := engine.Hint()
		if !ok {
			break
		}

		res, err := engine.Swap(ctx, m.A, m.B)
		if err != nil {
			return out, fmt.Errorf("match3: autoplay turn %d: %w", turn, err)
		}
		if res.Outcome != core.OutcomeMatched {
			return out, fmt.Errorf("match3: autoplay turn %d: hint %s-%s gave %s", turn, m.A, m.B, res.Outcome)
		}
		logger.Debug("autoplay turn", "turn", turn, "move", m.A.String()+"-"+m.B.String(),
			"points", res.Points, "passes", res.Passes)
		out.Removed += res.Removed
		if res.Passes > 1 {
			out.Cascades++
		}
		if res.Reshuffled {
			out.Reshuffle++
		}
	}

	out.Score = counter.Score()
	out.Moves = counter.MovesUsed()
	out.Final = engine.Snapshot()
	return out, nil
}
