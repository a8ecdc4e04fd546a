// Package registry provides a global registry for game factories.
// Game variants register themselves in init() functions, so the platform can
// list and start them by ID without importing them directly.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-match3/internal/core"
)

// Game is the interface every playable variant implements.
// Games hold no Bubble Tea state; the platform maps keys, drives the clock and
// paints the screen.
type Game interface {
	// ID returns the identifier used on the command line and in the score table.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new game. Called once at start and after game over.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game into the pre-cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current score, move budget and flags.
	State() core.GameState

	// Close stops any work the game still has in flight.
	Close()
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
)

// Register adds a game factory under id. The title is read from a throwaway
// instance. Panics if the id is taken.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g := f()
	defer g.Close()
	factories[id] = f
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
