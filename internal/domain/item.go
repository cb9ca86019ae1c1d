package domain

import "github.com/shopspring/decimal"

// Position locates an extracted line item on the source document so the
// console can highlight it later. Carried through reconciliation unmodified.
type Position struct {
	Page   int     `json:"page"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Region string  `json:"region,omitempty"`
}

// CandidateItem is one line extracted from a materials list by the upstream
// document-extraction service. It is read-only input to reconciliation.
type CandidateItem struct {
	Quantity      int              `json:"quantity"`
	Name          string           `json:"name"`
	Code          string           `json:"code,omitempty"` // ISBN/SKU if the source document carried one
	DeclaredPrice *decimal.Decimal `json:"declaredPrice,omitempty"`
	Subject       string           `json:"subject,omitempty"`
	Position      *Position        `json:"position,omitempty"`
}
