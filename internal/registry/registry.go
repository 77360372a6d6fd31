// Package registry provides a global registry for game factories.
// Layouts register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/brickfall/internal/core"
)

// Game is the interface every playable layout implements.
// Games contain pure simulation logic with no terminal or window dependencies.
// The platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier (e.g., "breakout", "breakout_pyramid").
	// Used for CLI commands and replay storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset builds a fresh session. Called once at start and again on restart.
	// Malformed configuration is reported here, before any tick runs.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by exactly one fixed tick.
	Step(in core.Intents) core.StepResult

	// Scene returns a read-only copy of what to draw this frame.
	Scene() core.Scene

	// State returns the current game state.
	State() core.GameState

	// Hash fingerprints the simulation state for replay verification.
	Hash() uint64
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
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
