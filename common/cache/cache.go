// Package cache keeps fetched listing pages between ingestion runs so a rerun
// inside the TTL does not hit the job boards again. Redis backs it in
// deployment; the memory package serves single-process runs and tests.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("page not cached")
	ErrInvalidValue = errors.New("cached page must be []byte, string or a binary (un)marshaler")
	ErrClosed       = errors.New("page cache is closed")
	ErrInvalidKey   = errors.New("empty page cache key")
)

// KeyPrefix namespaces page entries in a shared Redis database.
const KeyPrefix = "page:"

// PageKey is the cache key of a listing page: the prefix plus the SHA-1 of its
// URL, so query strings such as ?p=2 get their own entry.
func PageKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// Cache stores page bodies by key. Get decodes into *[]byte, *string or an
// encoding.BinaryUnmarshaler and reports ErrNotFound for missing or expired
// entries. A zero ttl on Set means Options.PageTTL.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Options struct {
	// PageTTL is how long a fetched page stays fresh.
	PageTTL time.Duration
	// SweepInterval is how often the memory cache evicts expired pages; zero
	// leaves eviction to Get.
	SweepInterval time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// DefaultOptions keeps a page for six hours, roughly one scrape cycle.
func DefaultOptions() Options {
	return Options{
		PageTTL:       6 * time.Hour,
		SweepInterval: 10 * time.Minute,
	}
}
