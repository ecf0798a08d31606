// Package cache memoizes compiled Silk output so the dev server can skip
// recompiling units whose source has not changed.
//
// Entries are keyed by unit name and validated by a content hash of the
// source: a lookup with a stale hash is a miss, and the entry is replaced
// on the next Put. Note that cached output pins the identifiers that were
// assigned when the unit was first compiled, which is exactly what a live
// page wants across unrelated recompiles.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/recera/silk/pkg/compiler"
)

// Cache stores compiled output per source unit.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	stats   Stats
}

type entry struct {
	hash   string
	output *compiler.Output
}

// Stats tracks cache performance counters.
type Stats struct {
	Hits       int64
	Misses     int64
	Evictions  int64
	EntryCount int
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// HashSource returns the content hash used to validate entries.
func HashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached output for the unit if the source is unchanged.
func (c *Cache) Get(key, source string) (*compiler.Output, bool) {
	hash := HashSource(source)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || e.hash != hash {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	return e.output, true
}

// Put stores the compiled output for the unit, replacing any prior entry.
func (c *Cache) Put(key, source string, out *compiler.Output) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &entry{hash: HashSource(source), output: out}
	c.stats.EntryCount = len(c.entries)
}

// Invalidate drops the entry for the unit. It reports whether an entry
// existed.
func (c *Cache) Invalidate(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	c.stats.Evictions++
	c.stats.EntryCount = len(c.entries)
	return true
}

// Reset drops every entry and zeroes the counters.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry)
	c.stats = Stats{}
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}
