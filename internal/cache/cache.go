// Package cache stores derived assessments keyed by the content they were derived from.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/newsanalyst/newsanalyst/internal/config"
)

// Namespace prefixes every key. Bump the version when cached payloads change shape.
const Namespace = "newsanalyst:v1:"

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a record kind and the bytes the cached value was computed from
func Key(kind string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(kind))
	h.Write([]byte{0})
	h.Write(payload)
	return Namespace + kind + ":" + hex.EncodeToString(h.Sum(nil))
}

const memoryCleanupInterval = 10 * time.Minute

// New builds the cache described by the settings: memory in front of disk
// under dir, or a no-op cache when caching is disabled
func New(settings config.CacheSettings, dir string) Cache {
	if !settings.Enabled {
		return Noop{}
	}
	return NewLayeredCache(
		NewMemoryCache(settings.MemoryTTL, memoryCleanupInterval),
		NewDiskCache(dir, settings.DiskTTL),
	)
}

// GetJSON decodes a cached JSON value into v. A missing or undecodable entry is a miss.
func GetJSON(c Cache, key string, v any) bool {
	data, ok := c.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// SetJSON stores v as JSON
func SetJSON(c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache value: %w", err)
	}
	return c.Set(key, data, ttl)
}

// Noop never stores anything
type Noop struct{}

func (Noop) Get(string) ([]byte, bool)               { return nil, false }
func (Noop) Set(string, []byte, time.Duration) error { return nil }
func (Noop) Delete(string) error                     { return nil }
func (Noop) Clear() error                            { return nil }
