package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/alphacut/internal/fuzzy"
)

// MemoryCache implements in-memory caching with expiry
type MemoryCache struct {
	cache  *gocache.Cache
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a copy of a cached set
func (c *MemoryCache) Get(key string) (*fuzzy.FuzzySet, bool) {
	if val, found := c.cache.Get(key); found {
		c.hits.Add(1)
		return val.(*fuzzy.FuzzySet).Clone(), true
	}
	c.misses.Add(1)
	return nil, false
}

// Set stores a copy of value with the given TTL. A zero TTL uses the default.
func (c *MemoryCache) Set(key string, value *fuzzy.FuzzySet, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value.Clone(), ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len returns the number of cached entries, including expired ones not yet cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

// Stats returns the hit and miss counters
func (c *MemoryCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
