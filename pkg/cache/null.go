package cache

import (
	"context"
	"time"
)

// NullCache is used for --no-cache runs: every conversion misses, so PNG and
// PDF output is always produced fresh by rsvg-convert and nothing is written
// to the cache directory.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

var _ Cache = NullCache{}
