package cache

import (
	"encoding/json"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// MemoryCache is a capacity-bounded, recency-ordered map from key to
// serialized payload. It has no durability and no per-entry TTL: entries
// leave only through eviction, Remove, Resize, or Clear. All operations are
// total; there is no I/O to fail.
//
// The LRU list and the lock protecting it live inside the component so the
// acquire-mutate-release discipline cannot be bypassed. Lookups that
// reorder the recency list take the write lock even though they are
// semantically reads.
type MemoryCache struct {
	mu       sync.RWMutex
	lru      *simplelru.LRU[string, string]
	capacity int

	hits   uint64
	misses uint64
}

// MemoryStats is a point-in-time snapshot of the memory layer.
type MemoryStats struct {
	Entries  int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// HitRate returns hits over total accesses, or 0 when there were none.
func (s MemoryStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// UsagePercent returns how full the cache is, in percent.
func (s MemoryStats) UsagePercent() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Entries) / float64(s.Capacity) * 100
}

// NewMemoryCache creates an empty cache bounded to the given number of
// entries. A capacity below 1 is coerced to 1.
func NewMemoryCache(capacity int) *MemoryCache {
	capacity = max(capacity, 1)
	// simplelru only errors on a non-positive size, which the coercion
	// above rules out.
	lru, _ := simplelru.NewLRU[string, string](capacity, nil)
	return &MemoryCache{lru: lru, capacity: capacity}
}

// GetRaw looks up the serialized payload for key. A hit marks the key
// most-recently-used and counts as a hit; a miss counts as a miss.
func (c *MemoryCache) GetRaw(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.lru.Get(key)
	if !ok {
		c.misses++
		return "", false
	}
	c.hits++
	return value, true
}

// Set inserts or overwrites the payload for key, evicting the
// least-recently-used entry when the cache is full and the key is new.
func (c *MemoryCache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, value)
}

// Remove drops the entry for key and returns its prior payload. Counters
// are unaffected.
func (c *MemoryCache) Remove(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.lru.Peek(key)
	if !ok {
		return "", false
	}
	c.lru.Remove(key)
	return value, true
}

// Contains reports whether key is present without touching recency order
// or counters.
func (c *MemoryCache) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Contains(key)
}

// Peek returns the payload for key without touching recency order or
// counters. Diagnostic use.
func (c *MemoryCache) Peek(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Peek(key)
}

// Clear empties the cache and resets the hit/miss counters.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.hits = 0
	c.misses = 0
}

// Resize changes the capacity bound. Shrinking evicts least-recently-used
// entries until the new bound is met; growing only raises the bound. A
// capacity below 1 is coerced to 1.
func (c *MemoryCache) Resize(capacity int) {
	capacity = max(capacity, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Resize(capacity)
	c.capacity = capacity
}

// Len returns the number of entries currently held.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Len()
}

// Keys returns all keys from least to most recently used.
func (c *MemoryCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lru.Keys()
}

// Stats returns a snapshot of entry count, capacity, and counters.
func (c *MemoryCache) Stats() MemoryStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return MemoryStats{
		Entries:  c.lru.Len(),
		Capacity: c.capacity,
		Hits:     c.hits,
		Misses:   c.misses,
	}
}

// MemoryGet is the deserializing lookup: it reads the payload for key and
// unmarshals it into T. An entry whose payload does not unmarshal is
// reported as a miss.
func MemoryGet[T any](c *MemoryCache, key string) (T, bool) {
	var value T
	raw, ok := c.GetRaw(key)
	if !ok {
		return value, false
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false
	}
	return value, true
}

// MemorySet serializes value and stores it under key.
func MemorySet[T any](c *MemoryCache, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.Set(key, string(raw))
	return nil
}
