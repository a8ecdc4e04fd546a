package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

// ErrUnknownPreset is returned by ParsePreset for unrecognised names.
var ErrUnknownPreset = errors.New("unknown difficulty preset")

// Load loads the match-3 configuration.
// Search order: customPath -> ~/.match3/configs/match3.yaml -> ./configs/match3.yaml -> embedded default
func Load(customPath string) (Match3Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Match3Config{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath("match3.yaml"), filepath.Join("configs", "match3.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := parse(defaultMatch3YAML)
	if err != nil {
		return DefaultMatch3Config(), nil
	}
	return cfg, nil
}

// parse decodes YAML on top of the hard-coded defaults so partial files work.
func parse(data []byte) (Match3Config, error) {
	cfg := DefaultMatch3Config()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Match3Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".match3", "configs", filename)
}

// Engine converts the file configuration into an engine configuration.
// The result is validated, so field errors surface as core.ValidationError.
func (c Match3Config) Engine() (core.Config, error) {
	ec := core.Config{
		Size:           c.Board.Size,
		Palette:        c.Board.Palette,
		PerPieceScore:  c.Scoring.PerPiece,
		PieceSize:      c.Animation.PieceSize,
		Refill:         core.RefillPolicy(c.Board.Refill),
		Reshuffle:      c.Board.Reshuffle,
		SwapDuration:   ms(c.Animation.SwapMS),
		ShrinkDuration: ms(c.Animation.ShrinkMS),
		FallDuration:   ms(c.Animation.FallMS),
	}
	if err := ec.Validate(); err != nil {
		return core.Config{}, fmt.Errorf("config: %w", err)
	}
	return ec, nil
}

// MoveBudget returns the move budget in tracker form, where -1 is unlimited.
func (c Match3Config) MoveBudget() int {
	if c.Scoring.Moves <= 0 {
		return -1
	}
	return c.Scoring.Moves
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
