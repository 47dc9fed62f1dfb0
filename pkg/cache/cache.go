// Package cache stores converted artifacts (PNG and PDF bytes) keyed by the
// hash of the document they were produced from.
//
// Conversion shells out to rsvg-convert and dominates the cost of a render,
// while the SVG it consumes is deterministic. Keying on the SVG's content hash
// lets repeated renders of an unchanged report skip the conversion entirely.
//
//	c, _ := cache.NewFileCache(cache.DefaultDir())
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(svg), cache.ArtifactKeyOpts{Format: "png", Scale: 2})
//	if data, hit, _ := c.Get(ctx, key); hit {
//	    return data
//	}
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
	// Close releases any resources held by the cache.
	Close() error
}

// DefaultTTL bounds how long converted artifacts are kept.
const DefaultTTL = 30 * 24 * time.Hour

// DefaultDir returns the per-user cache directory, falling back to the
// system temp directory when the user cache dir is unknown.
func DefaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "okrdash")
}
