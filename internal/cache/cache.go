// Package cache memoizes detection results keyed by content hash, so
// rescanning unchanged documents skips pattern evaluation entirely.
// Detection is a pure function of the text, which makes the memo safe.
package cache

import (
	"sync"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/phantomsec/phantom/internal/types"
)

// Cache is a bounded in-memory findings cache, safe for concurrent use.
// Eviction is FIFO by insertion order.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[uint64][]types.Finding
	order   []uint64
}

const defaultMax = 1024

func New(max int) *Cache {
	if max <= 0 {
		max = defaultMax
	}
	return &Cache{
		max:     max,
		entries: make(map[uint64][]types.Finding),
	}
}

// Get returns the cached findings for content. The returned slice is a
// copy; findings are owned by the caller.
func (c *Cache) Get(content string) ([]types.Finding, bool) {
	key := xxhash.Sum64String(content)

	c.mu.Lock()
	defer c.mu.Unlock()
	cached, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	out := make([]types.Finding, len(cached))
	copy(out, cached)
	return out, true
}

// Put stores findings for content, evicting the oldest entry when full.
func (c *Cache) Put(content string, findings []types.Finding) {
	key := xxhash.Sum64String(content)
	stored := make([]types.Finding, len(findings))
	copy(stored, findings)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = stored
}

// Len reports the number of cached documents.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
