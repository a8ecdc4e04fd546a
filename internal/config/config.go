// Package config provides YAML-based configuration loading and difficulty
// presets for the match-3 game.
package config

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board     BoardConfig     `yaml:"board"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Animation AnimationConfig `yaml:"animation"`
}

// BoardConfig defines the board shape and how it is refilled.
type BoardConfig struct {
	Size      int    `yaml:"size"`
	Palette   int    `yaml:"palette"`   // Number of distinct piece values
	Refill    string `yaml:"refill"`    // "recycle" or "fresh"
	Reshuffle bool   `yaml:"reshuffle"` // Regenerate boards with no legal move
}

// ScoringConfig defines points and the move budget.
type ScoringConfig struct {
	PerPiece int `yaml:"per_piece"`
	Moves    int `yaml:"moves"` // 0 or negative = unlimited
}

// AnimationConfig defines animation timings in milliseconds.
type AnimationConfig struct {
	SwapMS    int     `yaml:"swap_ms"`
	ShrinkMS  int     `yaml:"shrink_ms"`
	FallMS    int     `yaml:"fall_ms"`
	PieceSize float64 `yaml:"piece_size"`
}
