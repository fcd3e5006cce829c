package services

import (
	"encoding/json"
	"sort"
	"strconv"
	"sync"
	"time"
)

const (
	DefaultCacheTTL      = time.Hour
	DefaultCacheCapacity = 500
)

// ResponseCache stores validated LLM JSON keyed by prompt hash.
type ResponseCache interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value json.RawMessage)
	Clear()
	Stats() CacheStats
}

type CacheEntry struct {
	Key       string
	Data      json.RawMessage
	Timestamp time.Time
}

type CacheStats struct {
	Size   int      `json:"size"`
	Keys   []string `json:"keys"`
	Hits   int64    `json:"hits"`
	Misses int64    `json:"misses"`
}

// CacheKey hashes the two prompts with a 31-multiplier rolling hash. It is
// order-sensitive and not collision-free.
func CacheKey(prompt, systemPrompt string) string {
	var h int32
	for _, r := range prompt + systemPrompt {
		h = 31*h + int32(r)
	}
	return strconv.FormatInt(int64(h), 10)
}

type memoryCache struct {
	mu       sync.RWMutex
	entries  map[string]CacheEntry
	ttl      time.Duration
	capacity int
	now      func() time.Time
	hits     int64
	misses   int64
}

// NewMemoryCache returns an in-process cache. Entries older than ttl read as
// misses; once capacity is reached the oldest entry is evicted.
func NewMemoryCache(ttl time.Duration, capacity int) ResponseCache {
	return newMemoryCache(ttl, capacity, time.Now)
}

func newMemoryCache(ttl time.Duration, capacity int, now func() time.Time) *memoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &memoryCache{
		entries:  make(map[string]CacheEntry),
		ttl:      ttl,
		capacity: capacity,
		now:      now,
	}
}

// Get implements ResponseCache.
func (c *memoryCache) Get(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok && c.now().Sub(entry.Timestamp) >= c.ttl {
		delete(c.entries, key)
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}

	c.hits++
	return cloneRaw(entry.Data), true
}

// Set implements ResponseCache.
func (c *memoryCache) Set(key string, value json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		c.evictOldest()
	}

	c.entries[key] = CacheEntry{
		Key:       key,
		Data:      cloneRaw(value),
		Timestamp: c.now(),
	}
}

// Clear implements ResponseCache.
func (c *memoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]CacheEntry)
	c.hits = 0
	c.misses = 0
}

// Stats implements ResponseCache.
func (c *memoryCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return CacheStats{
		Size:   len(c.entries),
		Keys:   keys,
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// evictOldest must be called with mu held.
func (c *memoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	found := false
	for key, entry := range c.entries {
		if !found || entry.Timestamp.Before(oldest) {
			oldestKey = key
			oldest = entry.Timestamp
			found = true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}

type noopCache struct{}

// NewNoopCache returns a cache that never stores anything.
func NewNoopCache() ResponseCache {
	return noopCache{}
}

func (noopCache) Get(string) (json.RawMessage, bool) { return nil, false }
func (noopCache) Set(string, json.RawMessage)         {}
func (noopCache) Clear()                              {}
func (noopCache) Stats() CacheStats                   { return CacheStats{Keys: []string{}} }

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
