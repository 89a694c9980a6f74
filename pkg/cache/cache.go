// Package cache stores rendered artifacts keyed by content hashes, so
// re-rendering an unchanged card description is a file read instead of
// a full rasterization pass.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented store with optional expiry.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
