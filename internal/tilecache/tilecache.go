// Package tilecache provides a bounded, FIFO-evicting cache of decoded
// channel tiles, for callers that re-render overlapping regions and want
// to avoid re-fetching and re-decoding the same tile bytes.
package tilecache

import (
	"sync"

	"github.com/labsyspharm/minervarender/internal/compositor"
)

// Key identifies one decoded tile: which channel, which pyramid level, and
// which grid cell within that level.
type Key struct {
	Channel int
	Level   int
	GY      int64
	GX      int64
}

// Cache is a fixed-capacity, concurrency-safe map of Key to decoded tile.
// Eviction is FIFO by insertion order, not recency: it is simple and cheap,
// and sufficient for the access pattern of scanning a region's grid once
// per render rather than hammering a hot working set.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]compositor.Tile
	order   []Key
	maxSize int
}

// New creates a cache holding at most maxEntries tiles. maxEntries <= 0
// falls back to a default capacity.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 256
	}
	return &Cache{
		entries: make(map[Key]compositor.Tile, maxEntries),
		order:   make([]Key, 0, maxEntries),
		maxSize: maxEntries,
	}
}

// Get retrieves a tile from the cache.
func (c *Cache) Get(key Key) (compositor.Tile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a tile, evicting the oldest entry if the cache is full.
// Putting an already-present key is a no-op: the first decode wins since
// tile bytes for a given key never change within a render.
func (c *Cache) Put(key Key, tile compositor.Tile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = tile
	c.order = append(c.order, key)
}

// Len reports the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
