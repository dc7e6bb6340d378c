package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryCacheSize bounds the in-process cache entry count.
const DefaultMemoryCacheSize = 512

// MemoryCache is a bounded in-process LRU cache with per-cache TTL.
// It backs the HTTP server, where rendered frames and artifacts are hot for
// the lifetime of a viewer session and safe to evict anytime.
type MemoryCache struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemoryCache creates an LRU cache holding at most size entries, each
// expiring after ttl. A non-positive size falls back to the default; a zero
// ttl disables expiration.
func NewMemoryCache(size int, ttl time.Duration) Cache {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

// Get retrieves a value from the cache.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.lru.Get(key)
	return data, ok, nil
}

// Set stores a value. The per-entry ttl argument is ignored: expirable.LRU
// applies a single cache-wide TTL, which is sufficient for frame caching.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.lru.Add(key, data)
	return nil
}

// Delete removes a value from the cache.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Close purges all entries.
func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}

// Ensure MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)
