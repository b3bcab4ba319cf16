// Package cache stores GitHub API responses between runs.
//
// Fetching the language breakdown of every repository is the slowest part of
// a run, and the numbers change slowly. The CLI therefore keeps the decoded
// responses in a [FileCache] under the XDG cache directory, fronted by a
// small LRU [Memory] tier. --no-cache switches to [NullCache] and --refresh
// skips reads but still writes.
//
// Keys are arbitrary strings. [Key] builds them from a namespace and a list
// of JSON-marshalable parts so callers never put secrets into file names.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}
