package core

import (
	"fmt"
	"time"
)

// ValidationError contains details about a configuration failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Config holds the engine parameters.
type Config struct {
	Size          int          // Board side length
	Palette       int          // Number of distinct piece values
	PerPieceScore int          // Points per removed piece
	PieceSize     float64      // Tile size in local units, used by BoardToLocal
	Refill        RefillPolicy // Identity policy for refilled pieces
	Reshuffle     bool         // Regenerate the board when no legal move is left

	SwapDuration   time.Duration
	ShrinkDuration time.Duration
	FallDuration   time.Duration
}

// DefaultConfig returns the standard 8×8, five colour setup.
func DefaultConfig() Config {
	return Config{
		Size:           8,
		Palette:        5,
		PerPieceScore:  10,
		PieceSize:      1,
		Refill:         RefillRecycle,
		Reshuffle:      true,
		SwapDuration:   150 * time.Millisecond,
		ShrinkDuration: 200 * time.Millisecond,
		FallDuration:   250 * time.Millisecond,
	}
}

// Validate checks the configuration before a game starts.
func (c Config) Validate() error {
	if err := validateShape(c.Size, c.Palette); err != nil {
		return err
	}
	if c.PerPieceScore < 0 {
		return ValidationError{
			Code:    "BAD_SCORE",
			Message: fmt.Sprintf("per-piece score %d is negative", c.PerPieceScore),
		}
	}
	if c.PieceSize <= 0 {
		return ValidationError{
			Code:    "BAD_PIECE_SIZE",
			Message: fmt.Sprintf("piece size %g must be positive", c.PieceSize),
		}
	}
	switch c.Refill {
	case "", RefillRecycle, RefillFresh:
	default:
		return ValidationError{
			Code:    "BAD_REFILL",
			Message: fmt.Sprintf("unknown refill policy %q", c.Refill),
		}
	}
	for name, d := range map[string]time.Duration{
		"swap":   c.SwapDuration,
		"shrink": c.ShrinkDuration,
		"fall":   c.FallDuration,
	} {
		if d < 0 {
			return ValidationError{
				Code:    "BAD_DURATION",
				Message: fmt.Sprintf("%s duration %s is negative", name, d),
			}
		}
	}
	return nil
}

// validateShape rejects boards that cannot hold a run and palettes too small
// for generation to always find a value.
func validateShape(size, palette int) error {
	if size <= 0 {
		return ValidationError{Code: "EMPTY_BOARD", Message: "board size must be positive"}
	}
	if size < MinRun {
		return ValidationError{
			Code:    "BOARD_TOO_SMALL",
			Message: fmt.Sprintf("board size %d is below the minimum run of %d", size, MinRun),
		}
	}
	if palette <= 0 {
		return ValidationError{Code: "EMPTY_PALETTE", Message: "palette must have at least one value"}
	}
	if palette < 3 {
		return ValidationError{
			Code:    "PALETTE_TOO_SMALL",
			Message: fmt.Sprintf("palette of %d cannot avoid runs during generation, need at least 3", palette),
		}
	}
	return nil
}
