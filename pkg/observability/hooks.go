// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about board state transitions and autoplay runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// The engine never logs on its own. The CLI registers hooks that forward
// events to its logger, and tests register recorders.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetGameHooks(&myGameHooks{})
//	    observability.SetRunHooks(&myRunHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Game().OnLayersCleared(b.ID(), cleared, b.Score())
//
// Game hooks are invoked synchronously from inside board operations, so
// implementations must be fast and must not call back into the board.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/cubetris/pkg/geom"
)

// =============================================================================
// Game Hooks
// =============================================================================

// GameHooks receives events from board state transitions. board is the
// board's session ID.
type GameHooks interface {
	// OnSpawn records a piece becoming active.
	OnSpawn(board string, blocks []geom.Block)

	// OnCement records a piece being written into the grid.
	OnCement(board string, blocks []geom.Block)

	// OnLayersCleared records the layers removed by one cascade.
	OnLayersCleared(board string, layers, score int)

	// OnGameOver records a spawn that did not fit.
	OnGameOver(board string, score int)
}

// =============================================================================
// Run Hooks
// =============================================================================

// RunHooks receives events from headless autoplay runs.
type RunHooks interface {
	// OnRunStart records the start of a game driven by a player.
	OnRunStart(ctx context.Context, board, player string)

	// OnRunComplete records the end of a run. err is non-nil when the run
	// was cancelled.
	OnRunComplete(ctx context.Context, board string, pieces, score int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGameHooks is a no-op implementation of GameHooks.
type NoopGameHooks struct{}

func (NoopGameHooks) OnSpawn(string, []geom.Block)     {}
func (NoopGameHooks) OnCement(string, []geom.Block)    {}
func (NoopGameHooks) OnLayersCleared(string, int, int) {}
func (NoopGameHooks) OnGameOver(string, int)           {}

// NoopRunHooks is a no-op implementation of RunHooks.
type NoopRunHooks struct{}

func (NoopRunHooks) OnRunStart(context.Context, string, string) {}
func (NoopRunHooks) OnRunComplete(context.Context, string, int, int, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	gameHooks GameHooks = NoopGameHooks{}
	runHooks  RunHooks  = NoopRunHooks{}
	hooksMu   sync.RWMutex
)

// SetGameHooks registers custom game hooks.
// This should be called once at application startup before any board is created.
func SetGameHooks(h GameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		gameHooks = h
	}
}

// SetRunHooks registers custom run hooks.
// This should be called once at application startup before any autoplay run.
func SetRunHooks(h RunHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		runHooks = h
	}
}

// Game returns the registered game hooks.
func Game() GameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return gameHooks
}

// Run returns the registered run hooks.
func Run() RunHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return runHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	gameHooks = NoopGameHooks{}
	runHooks = NoopRunHooks{}
}
