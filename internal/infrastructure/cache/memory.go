// Package cache provides the cache repositories used for solved plans:
// a process-local in-memory store and a Redis-backed store.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/platewise/v1/internal/ports/outbound"
)

// MemoryRepository is a TTL-aware in-process cache. It is the default when
// Redis is not configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryRepository creates an empty in-memory cache
func NewMemoryRepository() outbound.CacheRepository {
	return &MemoryRepository{entries: make(map[string]memoryEntry)}
}

// Get returns the cached value or outbound.ErrCacheMiss
func (c *MemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, outbound.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, outbound.ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value with an optional TTL; ttl <= 0 means no expiry
func (c *MemoryRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

// Delete removes a key; absent keys are not an error
func (c *MemoryRepository) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
