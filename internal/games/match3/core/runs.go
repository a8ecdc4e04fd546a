package core

// MinRun is the shortest sequence of equal values that counts as a match.
const MinRun = 3

// CountDirection counts how many consecutive cells beyond c, walking in d,
// hold a piece of the given value that is not excluded. The origin is not
// counted. The walk is bounded by the board size.
func (b *Board) CountDirection(c Coord, value int, d Dir, excluded PieceSet) int {
	count := 0
	cur := c
	for i := 0; i < b.size; i++ {
		cur = cur.Step(d)
		if !b.InBounds(cur) {
			break
		}
		id := b.cells[b.index(cur)]
		if id == 0 || excluded.Has(id) || b.pieces[id].Value != value {
			break
		}
		count++
	}
	return count
}

// MatchesAt returns the run through c, or nil when c is not part of one.
func (b *Board) MatchesAt(c Coord) []Coord {
	return b.MatchesExcluding(c, nil)
}

// MatchesExcluding returns the run through c ignoring excluded pieces.
//
// When c qualifies on both axes the longer one wins and ties go to the
// vertical axis, so a piece is reported in at most one run per pass.
// Coordinates are ordered top to bottom or left to right.
func (b *Board) MatchesExcluding(c Coord, excluded PieceSet) []Coord {
	p, ok := b.Get(c)
	if !ok || excluded.Has(p.ID) {
		return nil
	}

	up := b.CountDirection(c, p.Value, DirUp, excluded)
	down := b.CountDirection(c, p.Value, DirDown, excluded)
	left := b.CountDirection(c, p.Value, DirLeft, excluded)
	right := b.CountDirection(c, p.Value, DirRight, excluded)

	vertical := up + down
	horizontal := left + right
	if vertical < MinRun-1 && horizontal < MinRun-1 {
		return nil
	}

	var run []Coord
	if vertical >= horizontal {
		run = make([]Coord, 0, vertical+1)
		for y := c.Y - up; y <= c.Y+down; y++ {
			run = append(run, C(c.X, y))
		}
	} else {
		run = make([]Coord, 0, horizontal+1)
		for x := c.X - left; x <= c.X+right; x++ {
			run = append(run, C(x, c.Y))
		}
	}
	return run
}

// HasMatches reports whether any cell on the board is part of a run.
func (b *Board) HasMatches() bool {
	for _, c := range b.AllCoords() {
		if len(b.MatchesAt(c)) > 0 {
			return true
		}
	}
	return false
}
