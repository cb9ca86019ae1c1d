package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/listafacil/backend/internal/domain"
)

// defaultConcurrency bounds parallel catalog lookups so a large materials
// list does not trip the storefront's rate limits.
const defaultConcurrency = 5

// ReconcileConfig holds configuration for the batch reconciler
type ReconcileConfig struct {
	Concurrency int
}

// ReconcileService fans the resolver out over a whole extracted materials
// list. Items resolve independently: one item degrading to not_found never
// aborts the batch, and results come back in input order.
type ReconcileService struct {
	resolver    *ResolverService
	concurrency int
	logger      zerolog.Logger
}

// NewReconcileService creates a new batch reconciler
func NewReconcileService(resolver *ResolverService, config ReconcileConfig, logger zerolog.Logger) *ReconcileService {
	concurrency := config.Concurrency
	if concurrency < 1 {
		concurrency = defaultConcurrency
	}
	return &ReconcileService{
		resolver:    resolver,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Reconcile resolves every item against the catalog and aggregates a summary.
// The batch is validated before the first catalog call: a nil sequence or an
// item without a name rejects the whole batch, since that signals an upstream
// extraction-contract violation rather than a matching failure.
func (s *ReconcileService) Reconcile(ctx context.Context, items []domain.CandidateItem) ([]domain.MatchResult, domain.BatchSummary, error) {
	if err := validateBatch(items); err != nil {
		return nil, domain.BatchSummary{}, err
	}

	s.logger.Info().Int("items", len(items)).Msg("reconciliation batch started")

	results := make([]domain.MatchResult, len(items))

	// Results land in their input slot, so completion order never reorders
	// the output. Resolve never fails, hence the ignored group error.
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for i, item := range items {
		g.Go(func() error {
			results[i] = s.resolver.Resolve(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	summary := domain.Summarize(results)
	s.logger.Info().
		Int("total", summary.Total).
		Int("matched", summary.MatchedCount).
		Int("unmatched", summary.UnmatchedCount).
		Msg("reconciliation batch finished")

	return results, summary, nil
}

// validateBatch enforces the extraction collaborator's input contract.
func validateBatch(items []domain.CandidateItem) error {
	if items == nil {
		return fmt.Errorf("%w: items sequence is missing", domain.ErrInvalidBatch)
	}
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: item %d", domain.ErrMissingName, i)
		}
	}
	return nil
}
