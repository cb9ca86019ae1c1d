package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/listafacil/backend/internal/domain"
)

// Default acceptance thresholds per matching stage. Calibrated empirically;
// keep them configurable and change them only with test evidence.
const (
	defaultNameThreshold    = 0.70
	defaultKeywordThreshold = 0.60
)

// codeCleanRegex strips everything but letters and digits from an ISBN/SKU
// so "978-1234567890" and "9781234567890" compare equal.
var codeCleanRegex = regexp.MustCompile(`[^0-9A-Za-z]`)

// ResolverConfig holds configuration for the item resolver
type ResolverConfig struct {
	NameThreshold    float64
	KeywordThreshold float64
}

// ResolverService matches one candidate item against the storefront catalog
// using a multi-stage policy: exact code lookup, full-name search, then a
// single-keyword fallback search. Each stage short-circuits on acceptance.
type ResolverService struct {
	catalog          domain.CatalogClient
	matcher          *MatchingService
	keywords         *KeywordExtractor
	nameThreshold    float64
	keywordThreshold float64
	logger           zerolog.Logger
}

// NewResolverService creates a new resolver with its collaborators
func NewResolverService(
	catalog domain.CatalogClient,
	matcher *MatchingService,
	keywords *KeywordExtractor,
	config ResolverConfig,
	logger zerolog.Logger,
) *ResolverService {
	nameThreshold := config.NameThreshold
	if nameThreshold <= 0 || nameThreshold > 1 {
		nameThreshold = defaultNameThreshold
	}
	keywordThreshold := config.KeywordThreshold
	if keywordThreshold <= 0 || keywordThreshold > 1 {
		keywordThreshold = defaultKeywordThreshold
	}

	return &ResolverService{
		catalog:          catalog,
		matcher:          matcher,
		keywords:         keywords,
		nameThreshold:    nameThreshold,
		keywordThreshold: keywordThreshold,
		logger:           logger,
	}
}

// Resolve matches one item against the catalog. It never returns an error:
// failed catalog lookups degrade the stage to "no candidates" and resolution
// continues, so the worst outcome is a not_found result carrying the item's
// declared price.
func (s *ResolverService) Resolve(ctx context.Context, item domain.CandidateItem) domain.MatchResult {
	log := s.logger.With().Str("item", item.Name).Logger()

	if candidate, ok := s.resolveByCode(ctx, log, item); ok {
		log.Debug().Str("stage", "code").Str("sku", candidate.SKU).Msg("accepted")
		return s.matchedResult(item, candidate)
	}

	if ctx.Err() != nil {
		return notFoundResult(item)
	}

	if best, ok := s.resolveByName(ctx, log, item); ok {
		log.Debug().Str("stage", "name").Str("sku", best.Candidate.SKU).
			Float64("score", best.Score).Msg("accepted")
		return s.matchedResult(item, best.Candidate)
	}

	if ctx.Err() != nil {
		return notFoundResult(item)
	}

	if best, ok := s.resolveByKeyword(ctx, log, item); ok {
		log.Debug().Str("stage", "keyword").Str("sku", best.Candidate.SKU).
			Float64("score", best.Score).Msg("accepted")
		return s.matchedResult(item, best.Candidate)
	}

	log.Debug().Msg("no stage accepted, item not found in catalog")
	return notFoundResult(item)
}

// resolveByCode runs the code stage: an exact structural SKU comparison, no
// similarity score involved. Skipped when the item carries no code. The
// outbound query keeps the code's original case; only the comparison folds.
func (s *ResolverService) resolveByCode(ctx context.Context, log zerolog.Logger, item domain.CandidateItem) (domain.CatalogCandidate, bool) {
	queryCode := stripCode(item.Code)
	if queryCode == "" {
		return domain.CatalogCandidate{}, false
	}

	candidates, err := s.catalog.SearchByCode(ctx, queryCode)
	if err != nil {
		log.Warn().Err(err).Str("stage", "code").Msg("catalog lookup failed, skipping stage")
		return domain.CatalogCandidate{}, false
	}

	queryFold := strings.ToLower(queryCode)
	for _, c := range candidates {
		sku := strings.ToLower(stripCode(c.SKU))
		if sku == "" {
			continue
		}
		if sku == queryFold || strings.Contains(sku, queryFold) || strings.Contains(queryFold, sku) {
			return c, true
		}
	}
	return domain.CatalogCandidate{}, false
}

// resolveByName runs the full-text name stage against the item name.
func (s *ResolverService) resolveByName(ctx context.Context, log zerolog.Logger, item domain.CandidateItem) (ScoredCandidate, bool) {
	candidates, err := s.catalog.SearchByText(ctx, item.Name)
	if err != nil {
		log.Warn().Err(err).Str("stage", "name").Msg("catalog lookup failed, skipping stage")
		return ScoredCandidate{}, false
	}

	best, ok := s.matcher.BestCandidate(item.Name, candidates)
	if !ok || best.Score < s.nameThreshold {
		return ScoredCandidate{}, false
	}
	return best, true
}

// resolveByKeyword retries the text search with the longest keyword from the
// item name, at a lower acceptance threshold.
func (s *ResolverService) resolveByKeyword(ctx context.Context, log zerolog.Logger, item domain.CandidateItem) (ScoredCandidate, bool) {
	keyword := s.keywords.LongestKeyword(item.Name)
	if keyword == "" {
		return ScoredCandidate{}, false
	}

	candidates, err := s.catalog.SearchByText(ctx, keyword)
	if err != nil {
		log.Warn().Err(err).Str("stage", "keyword").Str("keyword", keyword).
			Msg("catalog lookup failed, skipping stage")
		return ScoredCandidate{}, false
	}

	best, ok := s.matcher.BestCandidate(item.Name, candidates)
	if !ok || best.Score < s.keywordThreshold {
		return ScoredCandidate{}, false
	}
	return best, true
}

// matchedResult builds the enriched result for an accepted candidate.
func (s *ResolverService) matchedResult(item domain.CandidateItem, candidate domain.CatalogCandidate) domain.MatchResult {
	resolvedPrice := candidate.Price
	if !resolvedPrice.IsPositive() {
		resolvedPrice = declaredOrZero(item)
	}

	availability := domain.AvailabilityUnavailable
	if candidate.Purchasable() {
		availability = domain.AvailabilityAvailable
	}

	catalogPrice := candidate.Price
	stockQuantity := candidate.StockQuantity

	return domain.MatchResult{
		CandidateItem: item,
		Matched:       true,
		CatalogID:     candidate.ID,
		CatalogSKU:    candidate.SKU,
		ResolvedPrice: resolvedPrice,
		CatalogPrice:  &catalogPrice,
		StockQuantity: &stockQuantity,
		Availability:  availability,
	}
}

// notFoundResult builds the terminal result for an item no stage accepted.
func notFoundResult(item domain.CandidateItem) domain.MatchResult {
	return domain.MatchResult{
		CandidateItem: item,
		Matched:       false,
		ResolvedPrice: declaredOrZero(item),
		Availability:  domain.AvailabilityNotFound,
	}
}

func declaredOrZero(item domain.CandidateItem) decimal.Decimal {
	if item.DeclaredPrice != nil {
		return *item.DeclaredPrice
	}
	return decimal.Zero
}

// stripCode removes punctuation and whitespace from a product code, keeping
// the original case.
func stripCode(code string) string {
	return codeCleanRegex.ReplaceAllString(code, "")
}
