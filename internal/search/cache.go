package search

import "github.com/dartlinks/dart/internal/domain"

// resultCache is a bounded query-result cache with insertion-order
// eviction (FIFO, not LRU). Keys are normalized query strings; a
// re-put of an existing key updates the value in place without
// changing its eviction position.
type resultCache struct {
	capacity int
	order    []string
	entries  map[string][]domain.Match
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: capacity,
		entries:  make(map[string][]domain.Match, capacity),
	}
}

func (c *resultCache) get(key string) ([]domain.Match, bool) {
	m, ok := c.entries[key]
	return m, ok
}

func (c *resultCache) put(key string, matches []domain.Match) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = matches
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.order = append(c.order, key)
	c.entries[key] = matches
}

func (c *resultCache) clear() {
	c.order = c.order[:0]
	c.entries = make(map[string][]domain.Match, c.capacity)
}

func (c *resultCache) len() int {
	return len(c.entries)
}
