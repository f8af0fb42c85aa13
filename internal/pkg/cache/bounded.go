// Package cache provides a small bounded in-process cache for read-heavy,
// low-churn lookups. It trades a narrow staleness window for fewer round
// trips: writers update entries in place instead of invalidating them.
package cache

import (
	"sync"
)

const (
	// DefaultMaxEntries is how many entries the cache holds before an
	// eviction pass runs.
	DefaultMaxEntries = 50
	// DefaultEvictCount is how many of the oldest entries one pass removes.
	DefaultEvictCount = 10
)

// Bounded is a mutex-guarded map capped at a fixed entry count. When an
// insert pushes it past the cap, the oldest entries (by insertion order)
// are evicted in one batch. Safe for concurrent use.
type Bounded struct {
	mu         sync.Mutex
	maxEntries int
	evictCount int
	entries    map[string]string
	order      []string
}

// NewBounded creates a cache with the given cap and eviction batch size.
// Non-positive arguments fall back to the defaults.
func NewBounded(maxEntries, evictCount int) *Bounded {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if evictCount <= 0 || evictCount > maxEntries {
		evictCount = DefaultEvictCount
	}
	return &Bounded{
		maxEntries: maxEntries,
		evictCount: evictCount,
		entries:    make(map[string]string, maxEntries),
	}
}

// Get returns the cached value for key, if present.
func (c *Bounded) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

// Set inserts or updates an entry. Updating an existing key does not
// refresh its insertion position; age is measured from first insert.
func (c *Bounded) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = value
		return
	}

	c.entries[key] = value
	c.order = append(c.order, key)

	if len(c.entries) > c.maxEntries {
		c.evictOldestLocked()
	}
}

// Delete removes an entry, if present.
func (c *Bounded) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len returns the current entry count.
func (c *Bounded) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Bounded) evictOldestLocked() {
	n := c.evictCount
	if n > len(c.order) {
		n = len(c.order)
	}
	for _, key := range c.order[:n] {
		delete(c.entries, key)
	}
	c.order = append([]string(nil), c.order[n:]...)
}
