package core

import (
	"context"
	"sync"
	"time"
)

// Animator receives visual requests from the engine.
// MoveTo, Shrink and Spawn must return immediately; the engine calls Wait
// to suspend until the effects it issued have had time to play.
type Animator interface {
	// MoveTo slides a piece to a local position over d. Zero d is instant.
	MoveTo(p Piece, to Vec2, d time.Duration)
	// Shrink plays the removal effect for a piece over d.
	Shrink(p Piece, d time.Duration)
	// Spawn places a piece (or re-skins a recycled one) at a local position.
	Spawn(p Piece, at Vec2)
	// Wait blocks for d of animation time.
	Wait(ctx context.Context, d time.Duration) error
}

// Tracker is the host's score and move counter.
type Tracker interface {
	AddScore(points int)
	ConsumeMove()
	HasMovesRemaining() bool
	LockInteraction()
	UnlockInteraction()
}

// NopAnimator completes every animation instantly.
type NopAnimator struct{}

func (NopAnimator) MoveTo(Piece, Vec2, time.Duration) {}
func (NopAnimator) Shrink(Piece, time.Duration)       {}
func (NopAnimator) Spawn(Piece, Vec2)                 {}

func (NopAnimator) Wait(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// SleepAnimator waits in wall-clock time and draws nothing.
// Used by headless runs that want real pacing.
type SleepAnimator struct{}

func (SleepAnimator) MoveTo(Piece, Vec2, time.Duration) {}
func (SleepAnimator) Shrink(Piece, time.Duration)       {}
func (SleepAnimator) Spawn(Piece, Vec2)                 {}

func (SleepAnimator) Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Counter is a Tracker that keeps score and a move budget.
// A negative budget means unlimited moves.
type Counter struct {
	mu        sync.Mutex
	score     int
	movesLeft int
	movesUsed int
	locked    bool
}

// NewCounter creates a counter with the given move budget.
func NewCounter(moves int) *Counter {
	return &Counter{movesLeft: moves}
}

func (c *Counter) AddScore(points int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.score += points
}

func (c *Counter) ConsumeMove() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.movesUsed++
	if c.movesLeft > 0 {
		c.movesLeft--
	}
}

func (c *Counter) HasMovesRemaining() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.movesLeft != 0
}

func (c *Counter) LockInteraction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = true
}

func (c *Counter) UnlockInteraction() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locked = false
}

// Score returns the accumulated score.
func (c *Counter) Score() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.score
}

// MovesLeft returns the remaining budget, negative when unlimited.
func (c *Counter) MovesLeft() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.movesLeft
}

// MovesUsed returns how many moves produced a match.
func (c *Counter) MovesUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.movesUsed
}

// Locked reports whether interaction is currently locked.
func (c *Counter) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}
