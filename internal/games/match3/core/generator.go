package core

import (
	"math/rand/v2"
)

// Rand is the source of randomness used for generation and refill.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a deterministic PCG source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate creates a full board with no pre-existing runs.
func Generate(size, palette int, rng Rand) (*Board, error) {
	if err := validateShape(size, palette); err != nil {
		return nil, err
	}
	b := NewBoard(size)
	if err := b.fill(palette, rng, nil); err != nil {
		return nil, err
	}
	return b, nil
}

// fill populates an empty board in row-major order. Each cell draws values
// until it would not extend a run of two above it or to its left; cells
// further on are still empty so only those two directions matter.
// When ids is non-empty those identities are reused in order.
func (b *Board) fill(palette int, rng Rand, ids []PieceID) error {
	for i, c := range b.AllCoords() {
		value := rng.IntN(palette)
		for b.CountDirection(c, value, DirUp, nil) > 1 || b.CountDirection(c, value, DirLeft, nil) > 1 {
			value = rng.IntN(palette)
		}

		var err error
		if i < len(ids) {
			_, err = b.Place(c, ids[i], value)
		} else {
			_, err = b.Set(c, value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Reshuffle regenerates every value on a full board, keeping identities,
// until the board has no runs and at least one legal move.
// It gives up after maxAttempts and reports whether a playable board was found.
func (b *Board) Reshuffle(palette int, rng Rand, maxAttempts int) bool {
	pieces := b.Pieces()
	ids := make([]PieceID, len(pieces))
	for i, p := range pieces {
		ids[i] = p.ID
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		for _, c := range b.AllCoords() {
			//nolint:errcheck // coordinates come from AllCoords
			b.Clear(c)
		}
		if err := b.fill(palette, rng, ids); err != nil {
			return false
		}
		if b.HasPossibleMove() {
			return true
		}
	}
	return false
}
