package core

// Move is a legal swap together with the number of pieces its first pass removes.
type Move struct {
	A       Coord
	B       Coord
	Removed int
}

// FindMoves lists every adjacent swap that would produce at least one run.
// Swaps are tried to the right and downward from each cell in row-major order.
func (b *Board) FindMoves() []Move {
	var moves []Move
	for _, a := range b.AllCoords() {
		for _, d := range []Dir{DirRight, DirDown} {
			c := a.Step(d)
			if n := b.trySwap(a, c); n > 0 {
				moves = append(moves, Move{A: a, B: c, Removed: n})
			}
		}
	}
	return moves
}

// HasPossibleMove reports whether any swap on the board produces a run.
func (b *Board) HasPossibleMove() bool {
	for _, a := range b.AllCoords() {
		if b.trySwap(a, a.Step(DirRight)) > 0 || b.trySwap(a, a.Step(DirDown)) > 0 {
			return true
		}
	}
	return false
}

// BestMove returns the move removing the most pieces. Ties keep the first found.
func (b *Board) BestMove() (Move, bool) {
	var best Move
	found := false
	for _, m := range b.FindMoves() {
		if !found || m.Removed > best.Removed {
			best = m
			found = true
		}
	}
	return best, found
}

// trySwap swaps two cells, counts the pieces matched through them and swaps back.
func (b *Board) trySwap(a, c Coord) int {
	pa, okA := b.Get(a)
	pc, okC := b.Get(c)
	if !okA || !okC || pa.Value == pc.Value {
		return 0
	}

	//nolint:errcheck // both cells checked above
	b.Swap(a, c)
	excluded := PieceSet{}
	total := 0
	for _, at := range []Coord{a, c} {
		run := b.MatchesExcluding(at, excluded)
		for _, rc := range run {
			p, _ := b.Get(rc)
			excluded.Add(p.ID)
		}
		total += len(run)
	}
	//nolint:errcheck // both cells checked above
	b.Swap(a, c)
	return total
}
