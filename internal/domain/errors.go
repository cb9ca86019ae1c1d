package domain

import "errors"

var (
	// ErrInvalidBatch is returned when the input sequence itself is malformed
	ErrInvalidBatch = errors.New("invalid reconciliation batch")

	// ErrMissingName is returned when a candidate item has no name
	ErrMissingName = errors.New("candidate item is missing a name")

	// ErrCatalogUnavailable is returned when a storefront catalog request fails
	ErrCatalogUnavailable = errors.New("catalog request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
