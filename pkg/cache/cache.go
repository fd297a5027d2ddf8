// Package cache provides artifact caching for rendered outputs.
//
// Rendering a plan to PNG or PDF shells out to rsvg-convert, which dominates
// command latency on large plans. The render command keys artifacts by a
// hash of the plan document plus the render options, so unchanged plans hit
// the cache.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts keyed by content hash.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
