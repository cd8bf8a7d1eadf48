package assistant

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Cache is an in-memory TTL cache for generated responses, keyed by the
// feature name plus a hash of the request payload. Identical prompts within
// the TTL reuse the previous completion instead of spending another call.
type Cache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	data    []byte
	expires time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data, expires: time.Now().Add(c.ttl)}
}

func cacheKey(feature, payload string) string {
	sum := sha256.Sum256([]byte(payload))
	return feature + ":" + hex.EncodeToString(sum[:])
}
