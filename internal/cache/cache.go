package cache

import (
	"strings"
	"sync"
	"time"
)

// entry stores a cached response body and its absolute expiration timestamp.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// ResponseCache is a process-wide key/value store for serialized response
// payloads with per-entry TTL. Expired entries are treated as misses and
// evicted lazily on the access that finds them expired.
//
// Safe for concurrent use. Two requests racing to fill the same key
// resolve last-write-wins; no stronger consistency is provided.
type ResponseCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	defaultTTL time.Duration
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

// New constructs a ResponseCache. defaultTTL applies to entries stored
// without an explicit TTL.
func New(defaultTTL time.Duration) *ResponseCache {
	return &ResponseCache{
		items:      make(map[string]entry),
		defaultTTL: defaultTTL,
	}
}

// Key derives a deterministic cache key from a route name and its
// identifying parameters, e.g. Key("products_by_id", "prod-42").
func Key(route string, parts ...string) string {
	if len(parts) == 0 {
		return route
	}
	return route + ":" + strings.Join(parts, ":")
}

// Get returns the cached value and whether it was present and not expired.
// An expired entry is removed on the access that observes it.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry in the meantime.
		if cur, ok := c.items[key]; ok && now().After(cur.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores the value under key. If ttl <= 0, the cache's default TTL
// is applied.
func (c *ResponseCache) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{
		value:     value,
		expiresAt: now().Add(ttl),
	}
}

// InvalidateAll removes every entry. Called whenever the underlying
// collection is replaced in bulk, so no stale id keeps being served.
func (c *ResponseCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]entry)
}

// Len returns the number of non-expired entries currently stored.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	count := 0
	ts := now()
	for _, e := range c.items {
		if ts.Before(e.expiresAt) {
			count++
		}
	}
	return count
}
