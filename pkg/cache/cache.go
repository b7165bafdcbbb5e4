// Package cache stores computed layouts and rendered artifacts.
//
// Two levels are cached, both keyed by content hashes:
//
//   - layouts: a matrix hash plus the layout options that shape the geometry
//   - artifacts: a layout hash plus the style and output format
//
// [FileCache] backs the CLI, [RedisCache] lets several `chordviz serve`
// instances share one cache, and [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)

// Cache is a byte store with per-entry expiration.
type Cache interface {
	// Get returns the entry for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
