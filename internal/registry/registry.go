// Package registry provides a global registry for arena scenarios.
// Scenarios register themselves in init() functions, allowing the harness
// and the CLI to discover them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/dogfight/internal/config"
	"github.com/vovakirdan/dogfight/internal/core"
)

// ErrUnknownScenario is returned by Create for unregistered IDs.
var ErrUnknownScenario = errors.New("registry: unknown scenario")

// Scenario describes how a game starts: where the ships spawn and how the
// hazard field is laid out. Scenarios hold no per-game state.
type Scenario interface {
	// ID returns a unique identifier (e.g., "duel", "field").
	// Used for CLI arguments and result storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Layout builds the initial placement for one game. The arena config
	// already carries the difficulty-scaled hazard count and speed.
	// All randomness must come from rng so games replay from a seed.
	Layout(arena config.Arena, rng *rand.Rand) core.Layout
}

// ScenarioInfo contains metadata about a registered scenario.
type ScenarioInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a scenario.
type Factory func() Scenario

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scenario factory to the registry.
// Panics if a scenario with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scenario %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered scenarios, sorted by ID.
func List() []ScenarioInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ScenarioInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ScenarioInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a scenario by its ID.
func Create(id string) (Scenario, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScenario, id)
	}

	return f(), nil
}

// Exists checks if a scenario with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
