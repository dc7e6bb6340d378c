// Package observability lets callers instrument the pipeline and cache
// without coupling the core packages to any metrics or tracing backend.
//
// The pattern is a pair of small event interfaces with no-op defaults and a
// process-wide registry. main registers concrete hooks once at startup, and
// the libraries emit events through the registry:
//
//	observability.SetPipelineHooks(&promHooks{})
//
//	observability.Pipeline().OnParseStart(ctx, source)
//	// parse the network
//	observability.Pipeline().OnParseComplete(ctx, source, nodes, edges, took, err)
//
// Because registration happens in main and emission in the libraries, no
// import cycle forms and a backend swap touches one file.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the visualization pipeline.
type PipelineHooks interface {
	// Parse events
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, nodeCount, edgeCount int, duration time.Duration, err error)

	// Layout events
	OnLayoutStart(ctx context.Context, visibleNodes int)
	OnLayoutComplete(ctx context.Context, steps int, alpha float64, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnParseStart(context.Context, string) {}
func (NoopPipelineHooks) OnParseComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopPipelineHooks) OnLayoutStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnLayoutComplete(context.Context, int, float64, time.Duration, error) {
}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// The registry is guarded by a mutex rather than atomics; hooks are set
// once at startup and read on the hot path only through the two getters.
var (
	hooksMu       sync.RWMutex
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
)

// SetPipelineHooks installs pipeline hooks. Call once before the first
// pipeline run; a nil argument is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	pipelineHooks = h
	hooksMu.Unlock()
}

// SetCacheHooks installs cache hooks. Call once before the first cache
// operation; a nil argument is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooksMu.Lock()
	cacheHooks = h
	hooksMu.Unlock()
}

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Cache returns the installed cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores the no-op defaults, for tests.
func Reset() {
	hooksMu.Lock()
	pipelineHooks = NoopPipelineHooks{}
	cacheHooks = NoopCacheHooks{}
	hooksMu.Unlock()
}
