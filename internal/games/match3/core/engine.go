package core

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// reshuffleAttempts bounds dead-board regeneration.
const reshuffleAttempts = 100

// Outcome describes what an engine call did.
type Outcome int

const (
	OutcomeNone        Outcome = iota
	OutcomeSelected            // First piece selected
	OutcomeUnchanged           // Selected piece selected again
	OutcomeReselected          // Non-adjacent piece replaced the selection
	OutcomeDeselected          // Selection cleared
	OutcomeNotAdjacent         // Direct swap between non-neighbours
	OutcomeSameValue           // Equal values swapped and reverted
	OutcomeNoMatch             // Swap produced no run and was reverted
	OutcomeMatched             // At least one run resolved
	OutcomeLocked              // A cascade is in progress
	OutcomeNoMoves             // Tracker has no moves left
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "None"
	case OutcomeSelected:
		return "Selected"
	case OutcomeUnchanged:
		return "Unchanged"
	case OutcomeReselected:
		return "Reselected"
	case OutcomeDeselected:
		return "Deselected"
	case OutcomeNotAdjacent:
		return "NotAdjacent"
	case OutcomeSameValue:
		return "SameValue"
	case OutcomeNoMatch:
		return "NoMatch"
	case OutcomeMatched:
		return "Matched"
	case OutcomeLocked:
		return "Locked"
	case OutcomeNoMoves:
		return "NoMoves"
	default:
		return "Unknown"
	}
}

// Result is returned by every engine entry point.
type Result struct {
	Outcome    Outcome
	Removed    int  // Pieces removed across all passes
	Points     int  // Points passed to the tracker
	Passes     int  // Cascade passes that removed something
	Reshuffled bool // Board was regenerated because no move was left
}

// Engine owns the board and resolves swaps.
//
// Calls are serialized by the lock flag: any call made while another is
// running returns OutcomeLocked immediately. Read accessors may be used
// from other goroutines during a cascade.
type Engine struct {
	mu      sync.RWMutex
	board   *Board
	cfg     Config
	rng     Rand
	anim    Animator
	tracker Tracker
	logger  *log.Logger

	selected    Coord
	hasSelected bool
	locked      atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithBoard starts the engine from an existing full board instead of
// generating one. The board's size overrides Config.Size.
func WithBoard(b *Board) Option {
	return func(e *Engine) {
		e.board = b
	}
}

// NewEngine validates cfg, generates a board if none was given and
// announces every piece to the animator.
func NewEngine(cfg Config, rng Rand, anim Animator, tracker Tracker, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:     cfg,
		rng:     rng,
		anim:    anim,
		tracker: tracker,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.anim == nil {
		e.anim = NopAnimator{}
	}
	if e.tracker == nil {
		e.tracker = NewCounter(-1)
	}
	if e.cfg.Refill == "" {
		e.cfg.Refill = RefillRecycle
	}

	if e.board != nil {
		e.cfg.Size = e.board.Size()
		if !e.board.Full() {
			return nil, ValidationError{Code: "BOARD_NOT_FULL", Message: "starting board has empty cells"}
		}
		if err := e.board.Verify(); err != nil {
			return nil, err
		}
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	if e.board == nil {
		b, err := Generate(e.cfg.Size, e.cfg.Palette, e.rng)
		if err != nil {
			return nil, err
		}
		e.board = b
		if e.cfg.Reshuffle && !b.HasPossibleMove() {
			b.Reshuffle(e.cfg.Palette, e.rng, reshuffleAttempts)
		}
	}

	for _, p := range e.board.Pieces() {
		e.anim.Spawn(p, e.local(p.Pos.X, p.Pos.Y))
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Locked reports whether a call is in progress.
func (e *Engine) Locked() bool {
	return e.locked.Load()
}

// Selected returns the currently selected coordinate.
func (e *Engine) Selected() (Coord, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected, e.hasSelected
}

// Board returns a copy of the current board.
func (e *Engine) Board() *Board {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.Clone()
}

// Hint returns the swap that removes the most pieces, if any. The search
// runs on a copy, so the live board is never touched.
func (e *Engine) Hint() (Move, bool) {
	return e.Board().BestMove()
}

// Deselect clears the selection. It is ignored while locked.
func (e *Engine) Deselect() Result {
	if !e.locked.CompareAndSwap(false, true) {
		return Result{Outcome: OutcomeLocked}
	}
	defer e.locked.Store(false)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.hasSelected = false
	return Result{Outcome: OutcomeDeselected}
}

// Select handles a click on c. The first selection is remembered; selecting
// an adjacent second cell swaps and resolves, blocking until the cascade
// and all of its animation waits have finished.
func (e *Engine) Select(ctx context.Context, c Coord) (Result, error) {
	if !e.locked.CompareAndSwap(false, true) {
		return Result{Outcome: OutcomeLocked}, nil
	}
	defer e.locked.Store(false)

	if err := e.board.checkBounds(c); err != nil {
		return Result{}, err
	}
	if !e.tracker.HasMovesRemaining() {
		return Result{Outcome: OutcomeNoMoves}, nil
	}

	e.mu.Lock()
	first, had := e.selected, e.hasSelected
	switch {
	case !had:
		e.selected, e.hasSelected = c, true
		e.mu.Unlock()
		e.logger.Debug("selected", "at", c)
		return Result{Outcome: OutcomeSelected}, nil
	case first == c:
		e.mu.Unlock()
		return Result{Outcome: OutcomeUnchanged}, nil
	case !IsAdjacent(first, c):
		e.selected = c
		e.mu.Unlock()
		e.logger.Debug("reselected", "from", first, "to", c)
		return Result{Outcome: OutcomeReselected}, nil
	}
	e.hasSelected = false
	e.mu.Unlock()

	return e.resolve(ctx, first, c, true)
}

// Swap resolves a swap between two cells directly, clearing any selection.
func (e *Engine) Swap(ctx context.Context, a, b Coord) (Result, error) {
	return e.swapCall(ctx, a, b, true)
}

// Drag resolves a drag gesture from one cell onto a neighbour. The piece is
// already under the pointer, so the swap itself is not animated or awaited.
func (e *Engine) Drag(ctx context.Context, from, to Coord) (Result, error) {
	return e.swapCall(ctx, from, to, false)
}

func (e *Engine) swapCall(ctx context.Context, a, b Coord, animate bool) (Result, error) {
	if !e.locked.CompareAndSwap(false, true) {
		return Result{Outcome: OutcomeLocked}, nil
	}
	defer e.locked.Store(false)

	if err := e.board.checkBounds(a); err != nil {
		return Result{}, err
	}
	if err := e.board.checkBounds(b); err != nil {
		return Result{}, err
	}
	if !e.tracker.HasMovesRemaining() {
		return Result{Outcome: OutcomeNoMoves}, nil
	}

	e.mu.Lock()
	e.hasSelected = false
	e.mu.Unlock()

	if !IsAdjacent(a, b) {
		return Result{Outcome: OutcomeNotAdjacent}, nil
	}
	return e.resolve(ctx, a, b, animate)
}

// resolve runs one full interaction cycle for an adjacent pair.
// The caller holds the lock flag.
func (e *Engine) resolve(ctx context.Context, a, b Coord, animate bool) (Result, error) {
	ctx = context.WithoutCancel(ctx)
	var res Result

	e.tracker.LockInteraction()
	defer e.tracker.UnlockInteraction()

	swapDur := e.cfg.SwapDuration
	if !animate {
		swapDur = 0
	}

	e.logger.Debug("swap", "a", a, "b", b)
	if err := e.swap(ctx, a, b, swapDur); err != nil {
		return res, err
	}

	e.mu.RLock()
	pa, _ := e.board.Get(a)
	pb, _ := e.board.Get(b)
	e.mu.RUnlock()

	if pa.Value == pb.Value {
		if err := e.swap(ctx, a, b, swapDur); err != nil {
			return res, err
		}
		res.Outcome = OutcomeSameValue
		return res, nil
	}

	pending := []PieceID{pb.ID, pa.ID}
	for {
		matched := e.collectMatches(pending)
		if len(matched) == 0 {
			break
		}
		res.Passes++
		res.Removed += len(matched)

		columns, recycled, err := e.remove(ctx, matched)
		if err != nil {
			return res, err
		}
		points := e.cfg.PerPieceScore * len(matched)
		res.Points += points
		e.tracker.AddScore(points)
		e.logger.Debug("pass", "n", res.Passes, "removed", len(matched), "points", points)

		pending, err = e.collapse(columns, recycled)
		if err != nil {
			return res, err
		}

		if len(pending) > 0 {
			e.pause(ctx, e.cfg.FallDuration)
		}
	}

	if res.Passes == 0 {
		if err := e.swap(ctx, a, b, swapDur); err != nil {
			return res, err
		}
		res.Outcome = OutcomeNoMatch
		return res, nil
	}

	e.tracker.ConsumeMove()
	res.Outcome = OutcomeMatched

	if e.cfg.Reshuffle {
		res.Reshuffled = e.reshuffleIfDead()
	}
	e.logger.Debug("cascade done", "passes", res.Passes, "removed", res.Removed, "reshuffled", res.Reshuffled)
	return res, nil
}

// swap exchanges two cells, animates both pieces and waits d. Only a bad
// coordinate is an error.
func (e *Engine) swap(ctx context.Context, a, b Coord, d time.Duration) error {
	e.mu.Lock()
	if err := e.board.Swap(a, b); err != nil {
		e.mu.Unlock()
		return err
	}
	for _, c := range []Coord{a, b} {
		if p, ok := e.board.Get(c); ok {
			e.anim.MoveTo(p, e.local(c.X, c.Y), d)
		}
	}
	e.mu.Unlock()

	if d > 0 {
		e.pause(ctx, d)
	}
	return nil
}

// pause waits d on the animator. A failed wait only costs the delay; the
// cascade keeps running in the model so the board never keeps holes.
func (e *Engine) pause(ctx context.Context, d time.Duration) {
	if err := e.anim.Wait(ctx, d); err != nil {
		e.logger.Debug("animation wait failed", "d", d, "err", err)
	}
}

// collectMatches evaluates the pending pieces in order. Pieces already
// reported this pass are excluded, so runs never overlap.
func (e *Engine) collectMatches(pending []PieceID) []Piece {
	e.mu.RLock()
	defer e.mu.RUnlock()

	excluded := PieceSet{}
	var matched []Piece
	for _, id := range pending {
		p, ok := e.board.Piece(id)
		if !ok {
			continue
		}
		for _, c := range e.board.MatchesExcluding(p.Pos, excluded) {
			q, _ := e.board.Get(c)
			excluded.Add(q.ID)
			matched = append(matched, q)
		}
	}
	return matched
}

// remove shrinks and clears the matched pieces. It returns the touched
// columns in first-seen order and the freed identities.
func (e *Engine) remove(ctx context.Context, matched []Piece) ([]int, []PieceID, error) {
	e.mu.Lock()
	var columns []int
	seen := make(map[int]bool)
	recycled := make([]PieceID, 0, len(matched))
	for _, p := range matched {
		e.anim.Shrink(p, e.cfg.ShrinkDuration)
		if _, _, err := e.board.Clear(p.Pos); err != nil {
			e.mu.Unlock()
			return nil, nil, err
		}
		recycled = append(recycled, p.ID)
		if !seen[p.Pos.X] {
			seen[p.Pos.X] = true
			columns = append(columns, p.Pos.X)
		}
	}
	e.mu.Unlock()

	e.pause(ctx, e.cfg.ShrinkDuration)
	return columns, recycled, nil
}

// collapse compacts and refills every touched column. It returns the
// identities that moved or spawned, which become the next pending set.
func (e *Engine) collapse(columns []int, recycled []PieceID) ([]PieceID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var pending []PieceID
	for _, x := range columns {
		moved, err := e.compactColumn(x)
		if err != nil {
			return nil, err
		}
		pending = append(pending, moved...)

		spawned, rest, err := e.refillColumn(x, recycled)
		if err != nil {
			return nil, err
		}
		recycled = rest
		pending = append(pending, spawned...)
	}
	return pending, nil
}

// compactColumn drops every piece in column x by the number of empty cells
// below it, walking from the bottom so relative order is kept.
func (e *Engine) compactColumn(x int) ([]PieceID, error) {
	var moved []PieceID
	empty := 0
	for y := e.board.Size() - 1; y >= 0; y-- {
		p, ok := e.board.Get(C(x, y))
		if !ok {
			empty++
			continue
		}
		if empty == 0 {
			continue
		}
		to := C(x, y+empty)
		if err := e.board.Move(p.ID, to); err != nil {
			return nil, err
		}
		p.Pos = to
		e.anim.MoveTo(p, e.local(to.X, to.Y), e.cfg.FallDuration)
		moved = append(moved, p.ID)
	}
	return moved, nil
}

// refillColumn fills the empty top of column x. The first new piece lands in
// the lowest empty cell and spawns just above the board; later ones spawn
// progressively higher so they fall in as a stack.
func (e *Engine) refillColumn(x int, recycled []PieceID) ([]PieceID, []PieceID, error) {
	empty := 0
	for y := 0; y < e.board.Size(); y++ {
		if _, ok := e.board.Get(C(x, y)); ok {
			break
		}
		empty++
	}

	var spawned []PieceID
	for used := 0; empty > 0; used++ {
		at := C(x, empty-1)
		value := e.rng.IntN(e.cfg.Palette)

		var (
			p   Piece
			err error
		)
		if e.cfg.Refill == RefillRecycle && len(recycled) > 0 {
			p, err = e.board.Place(at, recycled[0], value)
			recycled = recycled[1:]
		} else {
			p, err = e.board.Set(at, value)
		}
		if err != nil {
			return nil, nil, err
		}

		e.anim.Spawn(p, e.local(x, -used-1))
		e.anim.MoveTo(p, e.local(at.X, at.Y), e.cfg.FallDuration)
		spawned = append(spawned, p.ID)
		empty--
	}
	return spawned, recycled, nil
}

// reshuffleIfDead regenerates the board when no swap can make a run.
func (e *Engine) reshuffleIfDead() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.board.HasPossibleMove() {
		return false
	}
	e.board.Reshuffle(e.cfg.Palette, e.rng, reshuffleAttempts)
	for _, p := range e.board.Pieces() {
		e.anim.Spawn(p, e.local(p.Pos.X, p.Pos.Y))
	}
	e.logger.Debug("reshuffled dead board")
	return true
}

func (e *Engine) local(x, y int) Vec2 {
	return BoardToLocal(x, y, e.cfg.PieceSize)
}
