package cache

import (
	"sync"
	"time"
)

// -----------------------------------------------------------------------------
// TTLCache is a thread-safe in-memory store with per-entry expiry, used to
// time-box upstream API responses. It is constructed once in main and handed
// to whoever needs it; nothing reads it as ambient global state.
// -----------------------------------------------------------------------------

type entry struct {
	value  interface{}
	expiry time.Time
}

type TTLCache struct {
	entries map[string]entry
	mu      sync.RWMutex

	// now is injectable for expiry tests.
	now func() time.Time
}

// -----------------------------------------------------------------------------

func NewTTLCache() *TTLCache {
	return &TTLCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// -----------------------------------------------------------------------------

// Set stores value under key for ttl.
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiry: c.now().Add(ttl)}
}

// -----------------------------------------------------------------------------

// Get returns the value and true if present and not expired. Expired entries
// are dropped on access.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().After(e.expiry) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// -----------------------------------------------------------------------------

// Clear drops all entries.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
