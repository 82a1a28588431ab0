// Package cache memoizes expensive precomputations keyed by their inputs.
//
// The primary use is the Floyd-Warshall matrix pair: O(n^3) to compute,
// cheap to store, and valid for as long as the same record set and cost
// weights are queried. Keys are content-addressed (SHA-256 over the sorted
// records and the weights), so a changed input can never hit a stale entry.
//
// Three backends are provided:
//   - file: directory-based storage for CLI usage
//   - redis: shared storage when several processes analyze one corpus
//   - null: caching disabled
//
// Caching is strictly opt-in and flows through explicit parameters; nothing
// here persists state between runs unless a caller wires a backend in.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by helpers that require a hit.
var ErrCacheMiss = errors.New("cache miss")

// Cache is the storage backend interface.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Hash computes the SHA-256 hex digest of data.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// hashKey builds a content-addressed key: prefix:sha256(parts...).
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// MatrixKey generates the cache key for a Floyd-Warshall matrix pair.
// records must already be in the graph's sorted order so that equal record
// sets always produce equal keys; weights distinguish cost models.
func MatrixKey(records interface{}, weights interface{}) string {
	return hashKey("fw", records, weights)
}
