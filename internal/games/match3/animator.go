package match3

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// ErrAnimatorClosed is returned by Wait after the animator has been closed.
var ErrAnimatorClosed = errors.New("match3: animator closed")

// Sprite is the drawable state of one piece at the current tick.
type Sprite struct {
	ID    core.PieceID
	Value int
	Pos   core.Vec2 // Local position
	Scale float64   // 1 = full size, 0 = gone
}

type sprite struct {
	value int

	from, to  core.Vec2
	moveStart uint64
	moveTicks uint64

	shrinking   bool
	shrinkStart uint64
	shrinkTicks uint64
}

func (s *sprite) pos(now uint64) core.Vec2 {
	t := progress(now, s.moveStart, s.moveTicks)
	return core.Vec2{
		X: s.from.X + (s.to.X-s.from.X)*t,
		Y: s.from.Y + (s.to.Y-s.from.Y)*t,
	}
}

func (s *sprite) scale(now uint64) float64 {
	if !s.shrinking {
		return 1
	}
	return 1 - progress(now, s.shrinkStart, s.shrinkTicks)
}

func progress(now, start, ticks uint64) float64 {
	if ticks == 0 || now >= start+ticks {
		return 1
	}
	return float64(now-start) / float64(ticks)
}

type waiter struct {
	until uint64
	done  chan error
}

// TickAnimator plays engine animations on the simulation clock.
// The game calls Advance once per tick; engine goroutines blocked in Wait
// are released when enough ticks have passed.
type TickAnimator struct {
	mu      sync.Mutex
	tickDur time.Duration
	now     uint64
	sprites map[core.PieceID]*sprite
	waiters []waiter
	closed  bool
}

// NewTickAnimator creates an animator whose clock advances tickDur per tick.
func NewTickAnimator(tickDur time.Duration) *TickAnimator {
	if tickDur <= 0 {
		tickDur = time.Second / 60
	}
	return &TickAnimator{
		tickDur: tickDur,
		sprites: make(map[core.PieceID]*sprite),
	}
}

// ticks rounds d up to whole ticks.
func (a *TickAnimator) ticks(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64((d + a.tickDur - 1) / a.tickDur)
}

func (a *TickAnimator) MoveTo(p core.Piece, to core.Vec2, d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sprites[p.ID]
	if !ok {
		s = &sprite{from: to, to: to}
		a.sprites[p.ID] = s
	}
	s.value = p.Value
	s.from = s.pos(a.now)
	s.to = to
	s.moveStart = a.now
	s.moveTicks = a.ticks(d)
}

func (a *TickAnimator) Shrink(p core.Piece, d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sprites[p.ID]
	if !ok {
		return
	}
	s.shrinking = true
	s.shrinkStart = a.now
	s.shrinkTicks = a.ticks(d)
}

func (a *TickAnimator) Spawn(p core.Piece, at core.Vec2) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.sprites[p.ID] = &sprite{value: p.Value, from: at, to: at}
}

// Wait blocks until d of simulation time has passed, the context is
// cancelled or the animator is closed.
func (a *TickAnimator) Wait(ctx context.Context, d time.Duration) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrAnimatorClosed
	}
	n := a.ticks(d)
	if n == 0 {
		a.mu.Unlock()
		return nil
	}
	w := waiter{until: a.now + n, done: make(chan error, 1)}
	a.waiters = append(a.waiters, w)
	a.mu.Unlock()

	select {
	case err := <-w.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Advance moves the clock forward one tick, drops finished removals and
// releases due waiters.
func (a *TickAnimator) Advance() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.now++
	for id, s := range a.sprites {
		if s.shrinking && a.now >= s.shrinkStart+s.shrinkTicks {
			delete(a.sprites, id)
		}
	}

	kept := a.waiters[:0]
	for _, w := range a.waiters {
		if a.now >= w.until {
			w.done <- nil
			continue
		}
		kept = append(kept, w)
	}
	a.waiters = kept
}

// Waiting reports whether an engine goroutine is blocked in Wait.
func (a *TickAnimator) Waiting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.waiters) > 0
}

// Now returns the current tick.
func (a *TickAnimator) Now() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.now
}

// Sprites returns every live sprite ordered by identity.
func (a *TickAnimator) Sprites() []Sprite {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Sprite, 0, len(a.sprites))
	for id, s := range a.sprites {
		out = append(out, Sprite{
			ID:    id,
			Value: s.value,
			Pos:   s.pos(a.now),
			Scale: s.scale(a.now),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Close releases every pending Wait with ErrAnimatorClosed. Later Waits
// fail immediately.
func (a *TickAnimator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true
	for _, w := range a.waiters {
		w.done <- ErrAnimatorClosed
	}
	a.waiters = nil
}

var _ core.Animator = (*TickAnimator)(nil)
