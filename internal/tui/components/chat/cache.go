package chat

import (
	"fmt"
	"sync"
)

// RenderCache keeps rendered bubbles so a resize or spinner tick does not
// re-run markdown and image rendering for every message
type RenderCache struct {
	mu      sync.Mutex
	cache   map[string]string
	maxSize int
	// lru tracks access order for eviction, oldest first
	lru []string
}

// NewRenderCache creates a cache holding at most maxSize entries
func NewRenderCache(maxSize int) *RenderCache {
	if maxSize <= 0 {
		maxSize = 500
	}
	return &RenderCache{
		cache:   make(map[string]string),
		maxSize: maxSize,
		lru:     make([]string, 0, maxSize),
	}
}

// Key builds a cache key from a message ID and the parameters that affect
// its rendering
func (c *RenderCache) Key(id string, width int, theme string) string {
	return fmt.Sprintf("%s|%d|%s", id, width, theme)
}

// Get retrieves a cached rendering
func (c *RenderCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	content, ok := c.cache[key]
	if ok {
		c.touch(key)
	}
	return content, ok
}

// Set stores a rendering, evicting the least recently used entry when full
func (c *RenderCache) Set(key, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; !exists && len(c.cache) >= c.maxSize && len(c.lru) > 0 {
		delete(c.cache, c.lru[0])
		c.lru = c.lru[1:]
	}

	c.cache[key] = content
	c.touch(key)
}

// Clear removes all entries
func (c *RenderCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]string)
	c.lru = c.lru[:0]
}

// Size returns the current number of entries
func (c *RenderCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// touch moves key to the most recently used end. Must be called with the lock held.
func (c *RenderCache) touch(key string) {
	for i, k := range c.lru {
		if k == key {
			c.lru = append(c.lru[:i], c.lru[i+1:]...)
			break
		}
	}
	c.lru = append(c.lru, key)
}
