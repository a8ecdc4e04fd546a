package match3

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

const testTick = 10 * time.Millisecond

func TestTickAnimatorWaitReleasesAfterTicks(t *testing.T) {
	a := NewTickAnimator(testTick)

	done := make(chan error, 1)
	go func() {
		done <- a.Wait(context.Background(), 25*time.Millisecond) // 3 ticks
	}()

	require.Eventually(t, a.Waiting, time.Second, time.Millisecond)
	a.Advance()
	a.Advance()
	select {
	case <-done:
		t.Fatal("Wait returned before its ticks elapsed")
	default:
	}

	a.Advance()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after 3 ticks")
	}
	assert.False(t, a.Waiting())
}

func TestTickAnimatorZeroWait(t *testing.T) {
	a := NewTickAnimator(testTick)
	assert.NoError(t, a.Wait(context.Background(), 0))
}

func TestTickAnimatorCloseReleasesWaiters(t *testing.T) {
	a := NewTickAnimator(testTick)

	done := make(chan error, 1)
	go func() {
		done <- a.Wait(context.Background(), time.Hour)
	}()
	require.Eventually(t, a.Waiting, time.Second, time.Millisecond)

	a.Close()
	err := <-done
	assert.True(t, errors.Is(err, ErrAnimatorClosed), "got %v", err)
	assert.ErrorIs(t, a.Wait(context.Background(), time.Second), ErrAnimatorClosed)
}

func TestTickAnimatorWaitHonoursContext(t *testing.T) {
	a := NewTickAnimator(testTick)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, a.Wait(ctx, time.Second), context.Canceled)
}

func TestTickAnimatorInterpolatesMoves(t *testing.T) {
	a := NewTickAnimator(testTick)
	p := core.Piece{ID: 7, Value: 2}

	a.Spawn(p, core.Vec2{X: 0, Y: 0})
	a.MoveTo(p, core.Vec2{X: 4, Y: -2}, 40*time.Millisecond)

	a.Advance()
	a.Advance()
	sprites := a.Sprites()
	require.Len(t, sprites, 1)
	assert.Equal(t, core.Vec2{X: 2, Y: -1}, sprites[0].Pos)
	assert.Equal(t, 2, sprites[0].Value)

	a.Advance()
	a.Advance()
	a.Advance()
	assert.Equal(t, core.Vec2{X: 4, Y: -2}, a.Sprites()[0].Pos)
}

func TestTickAnimatorShrinkRemovesSprite(t *testing.T) {
	a := NewTickAnimator(testTick)
	p := core.Piece{ID: 1, Value: 0}
	a.Spawn(p, core.Vec2{})

	a.Shrink(p, 20*time.Millisecond)
	a.Advance()
	require.Len(t, a.Sprites(), 1)
	assert.InDelta(t, 0.5, a.Sprites()[0].Scale, 1e-9)

	a.Advance()
	assert.Empty(t, a.Sprites())

	// A recycled identity comes back at full size.
	a.Spawn(core.Piece{ID: 1, Value: 4}, core.Vec2{X: 1})
	require.Len(t, a.Sprites(), 1)
	assert.Equal(t, 1.0, a.Sprites()[0].Scale)
	assert.Equal(t, 4, a.Sprites()[0].Value)
}
