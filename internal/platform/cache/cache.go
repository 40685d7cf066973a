// Package cache is a typed TTL cache over ristretto
package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// Options sizes the cache; a zero TTL disables it
type Options struct {
	TTL         time.Duration
	NumCounters int64
	MaxCost     int64
}

// Cache holds values of one type keyed by string, every entry costs 1
// a nil or disabled Cache misses on every Get
type Cache[V any] struct {
	c   *ristretto.Cache
	ttl time.Duration
}

// New builds a cache; defaults are 10k counters and 1k entries
func New[V any](opt Options) (*Cache[V], error) {
	if opt.TTL <= 0 {
		return &Cache[V]{}, nil
	}
	if opt.NumCounters <= 0 {
		opt.NumCounters = 1e4
	}
	if opt.MaxCost <= 0 {
		opt.MaxCost = 1e3
	}
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: opt.NumCounters,
		MaxCost:     opt.MaxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache[V]{c: c, ttl: opt.TTL}, nil
}

// Enabled reports whether entries are kept at all
func (c *Cache[V]) Enabled() bool { return c != nil && c.c != nil }

// Get returns the cached value for key
func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	if !c.Enabled() {
		return zero, false
	}
	v, ok := c.c.Get(key)
	if !ok {
		return zero, false
	}
	out, ok := v.(V)
	return out, ok
}

// Set stores v under key; writes are buffered, Wait flushes them
func (c *Cache[V]) Set(key string, v V) bool {
	if !c.Enabled() {
		return false
	}
	return c.c.SetWithTTL(key, v, 1, c.ttl)
}

// Del drops key
func (c *Cache[V]) Del(key string) {
	if c.Enabled() {
		c.c.Del(key)
	}
}

// Wait blocks until buffered writes are applied
func (c *Cache[V]) Wait() {
	if c.Enabled() {
		c.c.Wait()
	}
}

// Close stops the cache goroutines
func (c *Cache[V]) Close() {
	if c.Enabled() {
		c.c.Close()
	}
}
