package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Use the file values as-is
)

// Presets lists every preset in display order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name, case-insensitively.
func ParsePreset(name string) (DifficultyPreset, error) {
	p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Presets {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: %q: %w", name, ErrUnknownPreset)
}

// ApplyPreset adjusts palette size and move budget for a preset.
// Fewer colours make runs easier to form.
func ApplyPreset(cfg *Match3Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Board.Palette = 4
		cfg.Scoring.Moves = 70
	case DifficultyNormal:
		cfg.Board.Palette = 5
		cfg.Scoring.Moves = 50
	case DifficultyHard:
		cfg.Board.Palette = 6
		cfg.Scoring.Moves = 35
	}
}
