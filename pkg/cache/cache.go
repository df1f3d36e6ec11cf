// Package cache stores derived bracketview outputs: computed layouts and
// rendered artifacts.
//
// Entries are keyed by a content hash of their inputs, so a changed
// bracket file or option always produces a new key and stale data is never
// served. The CLI uses a [FileCache] under the user cache directory;
// library callers that do not want caching use [NullCache].
//
// # Keys
//
// A [Keyer] turns inputs into cache keys:
//
//	k := cache.NewDefaultKeyer()
//	key := k.LayoutKey(cache.Hash(docBytes), cache.LayoutKeyOpts{RowHeight: 120})
//
// Wrap a keyer with [NewScopedKeyer] to give a group of keys its own
// namespace.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
