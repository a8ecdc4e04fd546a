package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindMoves(t *testing.T) {
	b := mustRows(t, [][]int{
		{0, 0, 1, 2},
		{1, 2, 0, 1},
		{2, 1, 2, 0},
		{1, 0, 1, 2},
	})

	moves := b.FindMoves()
	want := Move{A: C(2, 0), B: C(2, 1), Removed: 3}
	found := false
	for _, m := range moves {
		if m == want {
			found = true
		}
		if m.Removed < MinRun {
			t.Errorf("move %v removes %d, want at least %d", m, m.Removed, MinRun)
		}
	}
	if !found {
		t.Errorf("FindMoves() = %v, missing %v", moves, want)
	}

	before := b.Values()
	b.FindMoves()
	if diff := cmp.Diff(before, b.Values()); diff != "" {
		t.Errorf("FindMoves() changed the board (-before +after):\n%s", diff)
	}
}

func TestHasPossibleMoveDeadBoard(t *testing.T) {
	b := mustRows(t, [][]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	})
	if b.HasPossibleMove() {
		t.Errorf("HasPossibleMove() = true on dead board, moves %v", b.FindMoves())
	}
	if _, ok := b.BestMove(); ok {
		t.Error("BestMove() found a move on dead board")
	}
}
