package transform

import (
	"sync"

	"cogentcore.org/core/ordmap"

	"github.com/OpenTraceLab/OpenTraceCurve/pkg/view"
)

// DefaultCacheCapacity bounds a Cache built with a non-positive capacity.
const DefaultCacheCapacity = 20

// CacheStats is a snapshot of cache occupancy and traffic.
type CacheStats struct {
	Size      int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns Hits / (Hits + Misses), or 0 before any lookup.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache maps ViewStates to Transforms. Lookups use exact ViewState equality.
// Entries are kept in access order; the least recently used one is evicted
// when an insert exceeds the capacity.
type Cache struct {
	mu       sync.Mutex
	entries  *ordmap.Map[view.ViewState, *Transform]
	capacity int

	hits      uint64
	misses    uint64
	evictions uint64
}

// NewCache creates an empty cache holding at most capacity transforms.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		entries:  ordmap.New[view.ViewState, *Transform](),
		capacity: capacity,
	}
}

// GetOrCreate returns the cached Transform for vs, building and inserting it
// on a miss. A hit returns the same *Transform as the insert did.
func (c *Cache) GetOrCreate(vs view.ViewState) *Transform {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.entries.ValueByKeyTry(vs); ok {
		c.hits++
		// Move to the most recently used end.
		if c.entries.IndexByKey(vs) != c.entries.Len()-1 {
			c.entries.DeleteKey(vs)
			c.entries.Add(vs, t)
		}
		return t
	}

	c.misses++
	t := New(vs)
	c.entries.Add(vs, t)
	for c.entries.Len() > c.capacity {
		c.entries.DeleteIndex(0, 1)
		c.evictions++
	}
	return t
}

// Contains reports whether vs is cached without touching access order or
// counters.
func (c *Cache) Contains(vs view.ViewState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries.IndexByKeyTry(vs)
	return ok
}

// Clear drops every entry. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Reset()
}

// Stats returns the current occupancy and counters.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Size:      c.entries.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}
