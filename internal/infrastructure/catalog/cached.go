package catalog

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/listafacil/backend/internal/domain"
)

// defaultCacheTTL covers one reconciliation season's worth of repeat
// queries; school lists share most of their items.
const defaultCacheTTL = time.Hour

var cacheKeyCleanRegex = regexp.MustCompile(`[^a-z0-9\s]`)

// CachingClient is a read-through cache in front of a catalog client. Text
// searches repeat heavily across materials lists from the same school, so
// those are cached; code lookups are already precise and pass through.
type CachingClient struct {
	next  domain.CatalogClient
	cache domain.CacheRepository
	ttl   time.Duration
}

// NewCachingClient wraps a catalog client with a query cache
func NewCachingClient(next domain.CatalogClient, cacheRepo domain.CacheRepository, ttl time.Duration) *CachingClient {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachingClient{next: next, cache: cacheRepo, ttl: ttl}
}

// SearchByCode passes through to the underlying client.
func (c *CachingClient) SearchByCode(ctx context.Context, code string) ([]domain.CatalogCandidate, error) {
	return c.next.SearchByCode(ctx, code)
}

// SearchByText serves repeated queries from cache; misses hit the catalog
// and populate the cache. Cache failures never fail the lookup.
func (c *CachingClient) SearchByText(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
	key := cacheKey(query)

	if value, err := c.cache.Get(ctx, key); err == nil {
		if candidates, ok := value.([]domain.CatalogCandidate); ok {
			return candidates, nil
		}
	}

	candidates, err := c.next.SearchByText(ctx, query)
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, candidates, c.ttl)
	return candidates, nil
}

// cacheKey normalizes a query into a stable cache key. Diacritics are folded
// first so accented and plain spellings of the same query share an entry.
func cacheKey(query string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(stripMarks, query); err == nil {
		query = folded
	}

	key := strings.ToLower(query)
	key = cacheKeyCleanRegex.ReplaceAllString(key, "")
	key = strings.Join(strings.Fields(key), " ")
	return "catalog:text:" + key
}
