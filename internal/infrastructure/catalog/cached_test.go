package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listafacil/backend/internal/domain"
	"github.com/listafacil/backend/internal/infrastructure/cache"
)

// countingCatalog counts calls so tests can see cache hits.
type countingCatalog struct {
	codeCalls int
	textCalls int
	results   []domain.CatalogCandidate
	err       error
}

func (c *countingCatalog) SearchByCode(ctx context.Context, code string) ([]domain.CatalogCandidate, error) {
	c.codeCalls++
	return c.results, c.err
}

func (c *countingCatalog) SearchByText(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
	c.textCalls++
	return c.results, c.err
}

func TestCachingClient_TextSearchIsCached(t *testing.T) {
	backend := &countingCatalog{results: []domain.CatalogCandidate{{ID: 1, Name: "Cuaderno universitario"}}}
	client := NewCachingClient(backend, cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	first, err := client.SearchByText(ctx, "Cuaderno universitario")
	require.NoError(t, err)
	second, err := client.SearchByText(ctx, "cuaderno   universitario!") // same key after normalization
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, backend.textCalls, "second query should come from cache")
}

func TestCachingClient_CodeSearchPassesThrough(t *testing.T) {
	backend := &countingCatalog{results: []domain.CatalogCandidate{{ID: 2, SKU: "LAP-2"}}}
	client := NewCachingClient(backend, cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := client.SearchByCode(ctx, "LAP-2")
		require.NoError(t, err)
	}

	assert.Equal(t, 2, backend.codeCalls, "code lookups are never cached")
}

func TestCachingClient_ErrorsAreNotCached(t *testing.T) {
	backend := &countingCatalog{err: errors.New("storefront down")}
	client := NewCachingClient(backend, cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	_, err := client.SearchByText(ctx, "regla")
	assert.Error(t, err)

	backend.err = nil
	backend.results = []domain.CatalogCandidate{{ID: 3, Name: "Regla 30cm"}}

	candidates, err := client.SearchByText(ctx, "regla")
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
	assert.Equal(t, 2, backend.textCalls)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("Cuaderno Universitario"), cacheKey("  cuaderno   universitario!! "))
	assert.Equal(t, cacheKey("Cuadérno"), cacheKey("cuaderno"), "accented spellings share a key")
	assert.NotEqual(t, cacheKey("cuaderno"), cacheKey("regla"))
}

func TestCachingClient_AccentedQuerySharesCacheEntry(t *testing.T) {
	backend := &countingCatalog{results: []domain.CatalogCandidate{{ID: 4, Name: "Cuaderno universitario"}}}
	client := NewCachingClient(backend, cache.NewMemoryCache(), time.Minute)
	ctx := context.Background()

	_, err := client.SearchByText(ctx, "cuaderno universitario")
	require.NoError(t, err)
	_, err = client.SearchByText(ctx, "Cuadérno universitario")
	require.NoError(t, err)

	assert.Equal(t, 1, backend.textCalls, "accented repeat should come from cache")
}
