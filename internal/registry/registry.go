// Package registry maps game IDs to factories. Game packages register
// themselves in init(), so commands and servers only need a blank import.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/whackamole/internal/core"
)

// Game is what the platform drives: one Step per tick, one Render per frame.
// Implementations hold pure logic; input mapping, timing and terminal output
// belong to the platform.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "mole", "mole_big").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display (e.g., "Whack-a-Mole").
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when the platform rebuilds the game.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	// Input is abstracted to platform-level actions and board targets.
	// Returns the result of this tick including current game state.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Targetable is implemented by games with a grid of hit targets.
// The platform uses it to turn keys and mouse clicks into InputFrame targets.
type Targetable interface {
	// SlotAt maps a grid position to a slot index.
	SlotAt(row, col int) (int, bool)

	// HitTest maps a screen cell from the last Render to a slot index.
	HitTest(x, y int) (int, bool)
}

// Tunable is implemented by games with a selectable difficulty.
// The choice applies to the next Reset and to any session already running.
type Tunable interface {
	SetDifficulty(name string) error
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory to the registry, usually from a game's init().
// It panics if id is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	// The title comes from a throwaway instance so List needs no factories.
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered game sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create returns a fresh, un-Reset instance of the game id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
