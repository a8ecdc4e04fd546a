package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 means the platform picks one from the clock
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is what a game reports back to the platform every tick.
type GameState struct {
	Score     int
	MovesLeft int // Negative when unlimited
	MovesUsed int
	GameOver  bool
	Paused    bool
	Busy      bool // A cascade is resolving
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
