package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustRows(t *testing.T, rows [][]int) *Board {
	t.Helper()
	b, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows() failed: %v", err)
	}
	return b
}

func TestCountDirection(t *testing.T) {
	b := mustRows(t, [][]int{
		{0, 0, 0, 1},
		{2, 3, 0, 1},
		{2, 3, 4, 1},
		{2, 4, 4, 4},
	})

	tests := []struct {
		name string
		at   Coord
		dir  Dir
		want int
	}{
		{"right from left edge", C(0, 0), DirRight, 2},
		{"left from middle", C(1, 0), DirLeft, 1},
		{"stops at mismatch", C(2, 0), DirRight, 0},
		{"down to edge", C(3, 0), DirDown, 2},
		{"up off board", C(3, 0), DirUp, 0},
		{"up the column", C(0, 3), DirUp, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := b.Get(tt.at)
			got := b.CountDirection(tt.at, p.Value, tt.dir, nil)
			if got != tt.want {
				t.Errorf("CountDirection(%v, %v) = %d, want %d", tt.at, tt.dir, got, tt.want)
			}
		})
	}
}

func TestCountDirectionStopsOnEmptyAndExcluded(t *testing.T) {
	b := mustRows(t, [][]int{
		{1, 1, -1, 1},
		{0, 2, 0, 2},
		{2, 0, 2, 0},
		{0, 2, 0, 2},
	})
	if got := b.CountDirection(C(0, 0), 1, DirRight, nil); got != 1 {
		t.Errorf("CountDirection across gap = %d, want 1", got)
	}

	b = mustRows(t, [][]int{
		{1, 1, 1, 1},
		{0, 2, 0, 2},
		{2, 0, 2, 0},
		{0, 2, 0, 2},
	})
	mid, _ := b.Get(C(2, 0))
	excluded := PieceSet{}
	excluded.Add(mid.ID)
	if got := b.CountDirection(C(0, 0), 1, DirRight, excluded); got != 1 {
		t.Errorf("CountDirection through excluded = %d, want 1", got)
	}
}

func TestMatchesAt(t *testing.T) {
	const A, B = 0, 1

	tests := []struct {
		name string
		rows [][]int
		at   Coord
		want []Coord
	}{
		{
			name: "row of three from the middle",
			rows: [][]int{
				{A, A, A, B},
				{B, 2, B, 2},
				{2, B, 2, B},
				{B, 2, B, 2},
			},
			at:   C(1, 0),
			want: []Coord{C(0, 0), C(1, 0), C(2, 0)},
		},
		{
			name: "broken run of two",
			rows: [][]int{
				{A, A, B, A},
				{B, 2, A, 2},
				{2, B, 2, B},
				{B, 2, B, 2},
			},
			at:   C(0, 0),
			want: nil,
		},
		{
			name: "column ordered top to bottom",
			rows: [][]int{
				{B, A, B, 2},
				{2, A, 2, B},
				{B, A, B, 2},
				{2, A, 2, B},
			},
			at:   C(1, 3),
			want: []Coord{C(1, 0), C(1, 1), C(1, 2), C(1, 3)},
		},
		{
			name: "tie prefers vertical",
			rows: [][]int{
				{B, A, B, 2},
				{A, A, A, B},
				{B, A, B, 2},
				{2, B, 2, B},
			},
			at:   C(1, 1),
			want: []Coord{C(1, 0), C(1, 1), C(1, 2)},
		},
		{
			name: "longer horizontal wins",
			rows: [][]int{
				{B, A, B, 2},
				{A, A, A, A},
				{B, A, B, 2},
				{2, B, 2, B},
			},
			at:   C(1, 1),
			want: []Coord{C(0, 1), C(1, 1), C(2, 1), C(3, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustRows(t, tt.rows)
			got := b.MatchesAt(tt.at)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("MatchesAt(%v) mismatch (-want +got):\n%s", tt.at, diff)
			}
		})
	}
}

func TestMatchesExcludingOrigin(t *testing.T) {
	b := mustRows(t, [][]int{
		{0, 0, 0},
		{1, 2, 1},
		{2, 1, 2},
	})
	p, _ := b.Get(C(0, 0))
	excluded := PieceSet{}
	excluded.Add(p.ID)

	if got := b.MatchesExcluding(C(0, 0), excluded); got != nil {
		t.Errorf("MatchesExcluding(excluded origin) = %v, want nil", got)
	}
	if got := b.MatchesExcluding(C(2, 0), excluded); got != nil {
		t.Errorf("MatchesExcluding across excluded piece = %v, want nil", got)
	}
}

func TestMatchesAtEmptyCell(t *testing.T) {
	b := NewBoard(3)
	if got := b.MatchesAt(C(1, 1)); got != nil {
		t.Errorf("MatchesAt(empty) = %v, want nil", got)
	}
	if got := b.MatchesAt(C(5, 5)); got != nil {
		t.Errorf("MatchesAt(out of bounds) = %v, want nil", got)
	}
}
