package config

import (
	_ "embed"
)

//go:embed defaults/match3.yaml
var defaultMatch3YAML []byte

// DefaultMatch3Config returns the hard-coded match-3 configuration.
// It mirrors defaults/match3.yaml and is used if the embedded file is unreadable.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Size:      8,
			Palette:   5,
			Refill:    "recycle",
			Reshuffle: true,
		},
		Scoring: ScoringConfig{
			PerPiece: 10,
			Moves:    50,
		},
		Animation: AnimationConfig{
			SwapMS:    150,
			ShrinkMS:  200,
			FallMS:    250,
			PieceSize: 1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMatch3YAML
}
