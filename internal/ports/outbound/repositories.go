// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces the planner uses to reach storage and caches
package outbound

import (
	"context"
	"time"

	"github.com/platewise/v1/internal/domain/recipe"
)

// RecipePool provides the cleaned candidate records. The ingestion layer
// guarantees 10 < calories < 2500 and a defaulted rating, so the planner
// never re-validates those.
type RecipePool interface {
	// LoadAll returns every stored record. Records are shared, read-only
	// references for the process lifetime.
	LoadAll(ctx context.Context) ([]*recipe.Record, error)

	// Count reports the stored record count without loading.
	Count(ctx context.Context) (int64, error)

	// BulkInsert stores freshly ingested records.
	BulkInsert(ctx context.Context, records []*recipe.Record) error
}

// CacheRepository defines the cache abstraction used for generated menus
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// ErrCacheMiss is returned by CacheRepository.Get for absent keys
var ErrCacheMiss = cacheMissError{}

type cacheMissError struct{}

func (cacheMissError) Error() string { return "cache miss" }
