package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/listafacil/backend/internal/domain"
)

func newTestReconciler(catalog domain.CatalogClient, concurrency int) *ReconcileService {
	return NewReconcileService(
		newTestResolver(catalog),
		ReconcileConfig{Concurrency: concurrency},
		zerolog.Nop(),
	)
}

// exactCatalog returns a single exact-name candidate for known queries.
func exactCatalog(known map[string]domain.CatalogCandidate) *mockCatalog {
	return &mockCatalog{
		searchByText: func(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
			if c, ok := known[query]; ok {
				return []domain.CatalogCandidate{c}, nil
			}
			return nil, nil
		},
	}
}

func TestReconcile_Validation(t *testing.T) {
	ctx := context.Background()
	var calls atomic.Int64
	catalog := &mockCatalog{
		searchByText: func(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
			calls.Add(1)
			return nil, nil
		},
	}
	svc := newTestReconciler(catalog, 2)

	t.Run("rejects a nil items sequence", func(t *testing.T) {
		_, _, err := svc.Reconcile(ctx, nil)
		if !errors.Is(err, domain.ErrInvalidBatch) {
			t.Errorf("error = %v, want ErrInvalidBatch", err)
		}
	})

	t.Run("rejects an item without a name before any lookup", func(t *testing.T) {
		items := []domain.CandidateItem{
			{Name: "Cuaderno universitario"},
			{Name: "   "},
		}
		_, _, err := svc.Reconcile(ctx, items)
		if !errors.Is(err, domain.ErrMissingName) {
			t.Errorf("error = %v, want ErrMissingName", err)
		}
		if calls.Load() != 0 {
			t.Errorf("catalog calls = %d, want 0 before validation passes", calls.Load())
		}
	})

	t.Run("accepts an empty batch", func(t *testing.T) {
		results, summary, err := svc.Reconcile(ctx, []domain.CandidateItem{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(results) != 0 || summary.Total != 0 {
			t.Errorf("results = %v, summary = %+v, want empty", results, summary)
		}
	})
}

func TestReconcile_PreservesInputOrder(t *testing.T) {
	ctx := context.Background()

	// Earlier items answer slower, so completion order is the reverse of
	// input order. Results must still come back in input order.
	names := []string{"cuaderno universitario", "lapiz grafito", "regla 30cm", "goma de borrar"}
	catalog := &mockCatalog{
		searchByText: func(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
			for i, name := range names {
				if name == query {
					time.Sleep(time.Duration(len(names)-i) * 10 * time.Millisecond)
					return []domain.CatalogCandidate{{ID: int64(i + 1), Name: name, StockStatus: domain.StockInStock, StockManaged: true}}, nil
				}
			}
			return nil, nil
		},
	}
	svc := newTestReconciler(catalog, len(names))

	items := make([]domain.CandidateItem, len(names))
	for i, name := range names {
		items[i] = domain.CandidateItem{Quantity: 1, Name: name}
	}

	results, summary, err := svc.Reconcile(ctx, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != len(items) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Name != names[i] {
			t.Errorf("results[%d].Name = %q, want %q", i, r.Name, names[i])
		}
		if r.CatalogID != int64(i+1) {
			t.Errorf("results[%d].CatalogID = %d, want %d", i, r.CatalogID, i+1)
		}
	}
	if summary.MatchedCount != len(items) {
		t.Errorf("MatchedCount = %d, want %d", summary.MatchedCount, len(items))
	}
}

func TestReconcile_IsolatesItemFailures(t *testing.T) {
	ctx := context.Background()

	// Both the name-stage query and the keyword fallback for item 2 fail, so
	// only that item degrades.
	catalog := &mockCatalog{
		searchByText: func(ctx context.Context, query string) ([]domain.CatalogCandidate, error) {
			if query == "segundo articulo" || query == "articulo" {
				return nil, errors.New("storefront down")
			}
			return []domain.CatalogCandidate{{ID: 1, Name: query, StockStatus: domain.StockInStock, StockManaged: true}}, nil
		},
	}
	svc := newTestReconciler(catalog, 3)

	items := []domain.CandidateItem{
		{Name: "primer cuaderno"},
		{Name: "segundo articulo"},
		{Name: "tercer lapiz"},
	}

	results, summary, err := svc.Reconcile(ctx, items)
	if err != nil {
		t.Fatalf("unexpected batch error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if !results[0].Matched || !results[2].Matched {
		t.Error("items 1 and 3 should resolve normally")
	}
	if results[1].Matched || results[1].Availability != domain.AvailabilityNotFound {
		t.Errorf("item 2 should be not_found, got matched=%v availability=%s",
			results[1].Matched, results[1].Availability)
	}
	if summary.MatchedCount != 2 || summary.UnmatchedCount != 1 {
		t.Errorf("summary = %+v, want 2 matched / 1 unmatched", summary)
	}
}

func TestReconcile_SummaryInvariant(t *testing.T) {
	ctx := context.Background()

	known := map[string]domain.CatalogCandidate{
		"cuaderno universitario": {ID: 1, Name: "cuaderno universitario", StockStatus: domain.StockInStock, StockManaged: true},
		"lapiz grafito":          {ID: 2, Name: "lapiz grafito", StockStatus: domain.StockInStock, StockManaged: true},
	}
	svc := newTestReconciler(exactCatalog(known), 2)

	items := []domain.CandidateItem{
		{Name: "cuaderno universitario"},
		{Name: "producto inexistente xyz"},
		{Name: "lapiz grafito"},
		{Name: "otro inexistente abc"},
	}

	results, summary, err := svc.Reconcile(ctx, items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.MatchedCount+summary.UnmatchedCount != summary.Total {
		t.Errorf("summary counts do not add up: %+v", summary)
	}
	if summary.Total != len(results) {
		t.Errorf("Total = %d, want %d", summary.Total, len(results))
	}
	if got := domain.Summarize(results); got != summary {
		t.Errorf("Summarize(results) = %+v, want %+v (summary must be derivable)", got, summary)
	}
	if summary.MatchedCount != 2 {
		t.Errorf("MatchedCount = %d, want 2", summary.MatchedCount)
	}
}

func TestNewReconcileService_DefaultConcurrency(t *testing.T) {
	svc := NewReconcileService(newTestResolver(&mockCatalog{}), ReconcileConfig{}, zerolog.Nop())
	if svc.concurrency != 5 {
		t.Errorf("concurrency = %d, want 5 (default)", svc.concurrency)
	}
}
