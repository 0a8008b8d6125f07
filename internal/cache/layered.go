package cache

import (
	"time"

	"go.uber.org/multierr"
)

// LayeredCache reads from a fast layer first and falls back to a durable
// one, promoting hits back into the fast layer
type LayeredCache struct {
	fast    Cache
	durable Cache
}

// NewLayeredCache stacks fast over durable
func NewLayeredCache(fast, durable Cache) *LayeredCache {
	return &LayeredCache{fast: fast, durable: durable}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if v, ok := c.fast.Get(key); ok {
		return v, true
	}
	v, ok := c.durable.Get(key)
	if !ok {
		return nil, false
	}
	_ = c.fast.Set(key, v, 0)
	return v, true
}

// Set writes both layers; the fast layer uses its own default TTL
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	return multierr.Append(
		c.fast.Set(key, value, 0),
		c.durable.Set(key, value, ttl),
	)
}

func (c *LayeredCache) Delete(key string) error {
	return multierr.Append(c.fast.Delete(key), c.durable.Delete(key))
}

func (c *LayeredCache) Clear() error {
	return multierr.Append(c.fast.Clear(), c.durable.Clear())
}
