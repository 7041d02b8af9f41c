package lattice

import "sync"

// DefaultCacheSize is the number of graphs a Cache keeps by default.
const DefaultCacheSize = 16

// Cache memoizes Generate results per Config. Entries are evicted oldest
// first once capacity is reached. Cached graphs are shared between callers
// and must be treated as read-only.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[Config]*Graph
	order    []Config
	hits     uint64
	misses   uint64
}

// NewCache returns a cache holding at most capacity graphs. A non-positive
// capacity means DefaultCacheSize.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[Config]*Graph, capacity),
	}
}

// Get returns the graph for cfg, generating it on a miss. The bool reports
// whether the graph came from the cache.
//
// Generation runs outside the lock, so two concurrent misses for the same
// Config may both generate; the first stored graph wins.
func (c *Cache) Get(cfg Config) (*Graph, bool, error) {
	key, err := cfg.normalized()
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	if g, ok := c.entries[key]; ok {
		c.hits++
		c.mu.Unlock()
		return g, true, nil
	}
	c.misses++
	c.mu.Unlock()

	g, err := Generate(key)
	if err != nil {
		return nil, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[key]; ok {
		return existing, false, nil
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = g
	c.order = append(c.order, key)
	return g, false, nil
}

// Len returns the number of cached graphs.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Counts returns the cumulative hit and miss counts.
func (c *Cache) Counts() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
