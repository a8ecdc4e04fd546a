package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, DefaultMatch3Config(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  size: 6\n  refill: fresh\nscoring:\n  moves: 0\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Board.Size)
	assert.Equal(t, "fresh", cfg.Board.Refill)
	assert.Equal(t, 5, cfg.Board.Palette, "unset fields keep defaults")
	assert.Equal(t, -1, cfg.MoveBudget())
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("board: [1, 2"), 0o600))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "cannot parse")
}

func TestEngineConversion(t *testing.T) {
	ec, err := DefaultMatch3Config().Engine()
	require.NoError(t, err)

	assert.Equal(t, 8, ec.Size)
	assert.Equal(t, core.RefillRecycle, ec.Refill)
	assert.Equal(t, 250*time.Millisecond, ec.FallDuration)
}

func TestEngineConversionRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match3Config)
		code   string
	}{
		{"zero size", func(c *Match3Config) { c.Board.Size = 0 }, "EMPTY_BOARD"},
		{"tiny palette", func(c *Match3Config) { c.Board.Palette = 2 }, "PALETTE_TOO_SMALL"},
		{"negative score", func(c *Match3Config) { c.Scoring.PerPiece = -5 }, "BAD_SCORE"},
		{"unknown refill", func(c *Match3Config) { c.Board.Refill = "magic" }, "BAD_REFILL"},
		{"negative duration", func(c *Match3Config) { c.Animation.FallMS = -1 }, "BAD_DURATION"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultMatch3Config()
			tc.mutate(&cfg)

			_, err := cfg.Engine()
			var verr core.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.code, verr.Code)
		})
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" Hard ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, p)

	_, err = ParsePreset("nightmare")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultMatch3Config()
	ApplyPreset(&cfg, DifficultyEasy)
	assert.Equal(t, 4, cfg.Board.Palette)
	assert.Equal(t, 70, cfg.Scoring.Moves)

	cfg.Board.Palette = 7
	ApplyPreset(&cfg, DifficultyFixed)
	assert.Equal(t, 7, cfg.Board.Palette, "fixed keeps file values")
}
