// Package cache provides an LRU cache of decoded response bodies, so that
// re-synthesis of a route never refetches or re-decodes an entry it has
// already seen.
package cache

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/wiretype-mcp/pkg/sample"
)

// BodyCache is a thread-safe LRU of decoded sample values keyed by entry ID.
type BodyCache struct {
	cache *lru.Cache[string, *sample.Value]
}

// NewBodyCache creates a cache holding at most maxItems decoded bodies.
func NewBodyCache(maxItems int) (*BodyCache, error) {
	c, err := lru.New[string, *sample.Value](maxItems)
	if err != nil {
		return nil, err
	}
	return &BodyCache{cache: c}, nil
}

// Get returns the decoded body for an entry ID, if cached.
func (c *BodyCache) Get(entryID string) (*sample.Value, bool) {
	return c.cache.Get(entryID)
}

// Put stores a decoded body.
func (c *BodyCache) Put(entryID string, v *sample.Value) {
	c.cache.Add(entryID, v)
}

// Len returns the current number of cached bodies.
func (c *BodyCache) Len() int {
	return c.cache.Len()
}
