package domain

import (
	"context"
	"time"
)

// CatalogClient defines the interface for querying the storefront product
// catalog. Both operations may return an empty slice; both may fail, and the
// resolver treats a failed query as an empty result for that stage.
type CatalogClient interface {
	SearchByCode(ctx context.Context, code string) ([]CatalogCandidate, error)
	SearchByText(ctx context.Context, query string) ([]CatalogCandidate, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
