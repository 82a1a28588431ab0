// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about graph construction, solver runs, and
// cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not by
// libraries) and keeps the core library free of observability frameworks.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolveHooks(&mySolveHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solve().OnBuildStart(ctx, runID, recordCount)
//	// ... build graph ...
//	observability.Solve().OnBuildComplete(ctx, runID, edgeCount, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// SolveHooks receives events from the optimization pipeline.
type SolveHooks interface {
	// Build events
	OnBuildStart(ctx context.Context, runID string, recordCount int)
	OnBuildComplete(ctx context.Context, runID string, edgeCount int, duration time.Duration, err error)

	// Solver events. engine is "frontier", "dijkstra" or "floyd-warshall".
	OnSolveStart(ctx context.Context, runID, engine string)
	OnSolveComplete(ctx context.Context, runID, engine string, duration time.Duration, err error)

	// OnCostSkipped records an edge excluded for a negative or non-finite
	// cost. Fires once per distinct edge per run.
	OnCostSkipped(ctx context.Context, runID string, from, to int, costValue float64)
}

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopSolveHooks is a no-op implementation of SolveHooks.
type NoopSolveHooks struct{}

func (NoopSolveHooks) OnBuildStart(context.Context, string, int)                          {}
func (NoopSolveHooks) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (NoopSolveHooks) OnSolveStart(context.Context, string, string)                       {}
func (NoopSolveHooks) OnSolveComplete(context.Context, string, string, time.Duration, error) {
}
func (NoopSolveHooks) OnCostSkipped(context.Context, string, int, int, float64) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	solveHooks SolveHooks = NoopSolveHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetSolveHooks registers custom solver hooks.
// This should be called once at application startup before any runs.
func SetSolveHooks(h SolveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solveHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any runs.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Solve returns the registered solver hooks.
func Solve() SolveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solveHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solveHooks = NoopSolveHooks{}
	cacheHooks = NoopCacheHooks{}
}
