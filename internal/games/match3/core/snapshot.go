package core

// Snapshot is a copy of the engine state for determinism checks and display.
type Snapshot struct {
	Values      [][]int
	Selected    Coord
	HasSelected bool
	Locked      bool
	Available   []Move // Swaps that would make a run

	// Filled from the tracker when it reports them, as Counter does.
	Score     int
	MovesLeft int // Negative means unlimited
	MovesUsed int
}

// Progress is implemented by trackers that can report their totals.
type Progress interface {
	Score() int
	MovesLeft() int
	MovesUsed() int
}

// Snapshot captures the board values, selection, available swaps and,
// when the tracker exposes them, score and moves.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	s := Snapshot{
		Values:      e.board.Values(),
		Selected:    e.selected,
		HasSelected: e.hasSelected,
		Locked:      e.locked.Load(),
	}
	board := e.board.Clone()
	e.mu.RUnlock()

	s.Available = board.FindMoves()
	if p, ok := e.tracker.(Progress); ok {
		s.Score = p.Score()
		s.MovesLeft = p.MovesLeft()
		s.MovesUsed = p.MovesUsed()
	}
	return s
}
