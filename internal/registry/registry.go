// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/carrot-jump/internal/audio"
	"github.com/vovakirdan/carrot-jump/internal/core"
)

// Game is the interface that every game must implement.
// Games contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns a unique identifier used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset returns the game to its splash screen.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// Generational is implemented by games that count runs. The platform
// restarts its tick source whenever the generation changes.
type Generational interface {
	Generation() uint64
}

// SoundPlayer plays short sound effects.
type SoundPlayer interface {
	Play(e audio.Effect)
}

// HighScoreStore persists one game's high score.
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(value int) error
}

// Services are the collaborators handed to a factory.
// Zero values mean "use the game's default".
type Services struct {
	ConfigPath string
	Difficulty string
	TickRate   int // Simulation ticks per second; 0 keeps the game's own
	Logger     *log.Logger
	Sound      SoundPlayer
	HighScores HighScoreStore
	Clock      core.Clock
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a game.
type Factory func(s Services) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f(Services{})
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
func Create(id string, s Services) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(s), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
