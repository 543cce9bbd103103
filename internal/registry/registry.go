// Package registry lets games announce themselves at init time so the
// command line, the terminal UI and the SSH server can create them by ID.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/helixfall/internal/core"
)

// Game is what the platform drives: a fixed-tick simulation that draws
// itself into a character screen. Implementations stay free of any
// terminal or network code.
type Game interface {
	// ID returns a unique identifier, used on the command line and in
	// the round ledger.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts the game from scratch with the given runtime settings.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick of 1/TickRate seconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst. dst is cleared first.
	Render(dst *core.Screen)

	// State returns score, lives and phase as of the last step.
	State() core.GameState
}

// Describer is implemented by games that can explain their controls.
type Describer interface {
	Description() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	// Metadata comes from a throwaway instance
	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	entries[id] = entry{factory: f, info: info}
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns the metadata of a registered game.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return e.factory(), nil
}
