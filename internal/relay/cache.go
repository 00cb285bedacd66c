package relay

import (
	"sync"
	"time"
)

// cacheEntry stores one cached response with its insertion time.
type cacheEntry struct {
	resp     Response
	storedAt time.Time
}

// Cache holds recent success responses per uppercased symbol. Entries
// expire lazily on read; there is no background sweep and no explicit
// eviction.
type Cache struct {
	TTL time.Duration
	// Now is the clock used for expiry checks; nil means time.Now.
	Now func() time.Time

	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewCache creates a cache with the given TTL. A TTL <= 0 disables
// caching entirely.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{TTL: ttl}
}

func (c *Cache) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Get returns the live entry for symbol, if any. An expired entry is
// treated as absent.
func (c *Cache) Get(symbol string) (Response, bool) {
	if c == nil || c.TTL <= 0 {
		return Response{}, false
	}
	c.mu.RLock()
	e, ok := c.items[symbol]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.storedAt) >= c.TTL {
		return Response{}, false
	}
	return e.resp, true
}

// Put stores a response for symbol. Last write wins on a given key.
func (c *Cache) Put(symbol string, resp Response) {
	if c == nil || c.TTL <= 0 {
		return
	}
	c.mu.Lock()
	if c.items == nil {
		c.items = make(map[string]cacheEntry)
	}
	c.items[symbol] = cacheEntry{resp: resp, storedAt: c.now()}
	c.mu.Unlock()
}
