package texture

import (
	"sync"
)

// Resolver resolves a texture name to a decoded sampler.
type Resolver interface {
	Resolve(texName string) (*Image, bool)
}

// Cache is a concurrency-safe texture cache. Batch workers share one instance.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *Image
	err error
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Failed loads are cached too, so a broken
// file is decoded at most once.
func (c *Cache) Resolve(texName string) (*Image, bool) {
	path, ok := c.index.ResolvePath(texName)
	if !ok {
		return nil, false
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err == nil
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := Load(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err == nil
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err == nil
}
