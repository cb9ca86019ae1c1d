package domain

import "github.com/shopspring/decimal"

// Availability is the terminal state of one reconciled item.
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilityNotFound    Availability = "not_found"
)

// MatchResult is the output record for one candidate item. Constructed once
// during reconciliation and immutable afterwards.
//
// Invariant: Availability == not_found exactly when Matched is false, and
// Availability == available implies Matched.
type MatchResult struct {
	CandidateItem

	Matched       bool             `json:"matched"`
	CatalogID     int64            `json:"catalogId,omitempty"`
	CatalogSKU    string           `json:"catalogSku,omitempty"`
	ResolvedPrice decimal.Decimal  `json:"resolvedPrice"`
	CatalogPrice  *decimal.Decimal `json:"catalogPrice,omitempty"`
	StockQuantity *int             `json:"stockQuantity,omitempty"`
	Availability  Availability     `json:"availability"`
}

// BatchSummary aggregates a reconciliation run. It is always derivable from
// the result slice; it is never persisted on its own.
type BatchSummary struct {
	Total          int `json:"total"`
	MatchedCount   int `json:"matchedCount"`
	UnmatchedCount int `json:"unmatchedCount"`
}

// Summarize recomputes the batch summary from a result slice.
func Summarize(results []MatchResult) BatchSummary {
	summary := BatchSummary{Total: len(results)}
	for _, r := range results {
		if r.Matched {
			summary.MatchedCount++
		}
	}
	summary.UnmatchedCount = summary.Total - summary.MatchedCount
	return summary
}
