// Package cache memoizes registry read results between mutations.
package cache

import (
	"sync"

	"github.com/graziososalvare/rescuehub/internal/animal"
)

// QueryCache stores read results keyed by the normalized query and find
// options. Dashboard filters repeat constantly, so a hit avoids a full
// round-trip to MongoDB. Every mutation clears the whole cache; entries are
// never stale longer than the data they shadow.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string][]animal.Record
}

// New returns an empty query cache.
func New() *QueryCache {
	return &QueryCache{entries: make(map[string][]animal.Record)}
}

// Get returns the cached records for the key. The second return reports a
// hit; a cached empty result is still a hit.
func (c *QueryCache) Get(key string) ([]animal.Record, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	records, ok := c.entries[key]
	return records, ok
}

// Set stores records under the key, replacing any previous entry.
func (c *QueryCache) Set(key string, records []animal.Record) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = records
}

// Clear drops every entry. Called after each successful mutation.
func (c *QueryCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]animal.Record)
}

// Len reports the number of cached result sets.
func (c *QueryCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
