// Package cache stores fetched page bodies so repeated runs over the same
// input do not hit the site again.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store keyed by CacheKey
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey derives the storage key for a page URL
func CacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "bmpscrape:v1:" + hex.EncodeToString(sum[:])
}

// New builds the page cache from its settings. Memory entries live for
// memoryTTL, disk entries under dir for diskTTL.
func New(dir string, memoryTTL, diskTTL time.Duration) *LayeredCache {
	return NewLayeredCache(
		NewMemoryCache(memoryTTL, 2*memoryTTL),
		NewDiskCache(dir, diskTTL),
	)
}
