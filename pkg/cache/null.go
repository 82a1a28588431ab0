package cache

import (
	"context"
	"time"
)

// NullCache discards every write and misses every read. It stands in when
// caching is turned off, so callers run the same cache-aside flow whether a
// real backend is configured or not.
type NullCache struct{}

// NewNullCache returns the disabled-cache backend.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards the value.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete is a no-op.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close is a no-op.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
