// Package cache provides pluggable caching for the bionet pipeline.
//
// Three backends are available:
//   - FileCache: persistent, for CLI runs (XDG cache directory)
//   - MemoryCache: bounded in-process LRU with TTL, for the HTTP server
//   - NullCache: disables caching entirely
//
// Keys are derived by a Keyer so the three pipeline stages (parsed graph,
// settled layout, rendered artifact) each get stable, content-addressed
// namespaces.
package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer - Stage Cache Keys
// =============================================================================

// LayoutKeyOpts are the inputs that change a settled layout frame. The frame
// bakes in presentation as well as positions (node colors follow the
// highlight, the label layer is optional), so those fields key it too.
type LayoutKeyOpts struct {
	WeightThreshold float64
	DegreeThreshold int
	Width           float64
	Height          float64
	Highlight       string
	ShowLabels      bool
}

// ArtifactKeyOpts are the inputs that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string
	Style      string
	ShowLabels bool
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// GraphKey keys a parsed graph by the hash of its source text.
	GraphKey(sourceHash string) string

	// LayoutKey keys a settled layout by graph content and layout inputs.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by layout content and format.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for parsed-graph caching.
func (k *DefaultKeyer) GraphKey(sourceHash string) string {
	return hashKey("graph", sourceHash)
}

// LayoutKey generates a key for settled-layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for rendered-artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// =============================================================================
// ScopedKeyer - Namespaced Keys
// =============================================================================

// ScopedKeyer wraps a Keyer with a prefix so multiple viewer sessions or
// tenants can share one backend without key collisions.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for parsed-graph caching.
func (k *ScopedKeyer) GraphKey(sourceHash string) string {
	return k.prefix + k.inner.GraphKey(sourceHash)
}

// LayoutKey generates a prefixed key for settled-layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
