package domain

import "github.com/shopspring/decimal"

// StockStatus is the storefront's stock state for a product.
type StockStatus string

const (
	StockInStock     StockStatus = "in_stock"
	StockOutOfStock  StockStatus = "out_of_stock"
	StockOnBackorder StockStatus = "on_backorder"
)

// CatalogCandidate is a product record returned by the storefront catalog.
// The catalog owns these; reconciliation only reads them.
type CatalogCandidate struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	StockManaged  bool            `json:"stockManaged"`
	StockStatus   StockStatus     `json:"stockStatus"`
	Images        []string        `json:"images,omitempty"`
}

// Purchasable reports whether the candidate can currently be ordered:
// either stock is not managed for it, the storefront flags it as in stock
// or backorderable, or a managed stock count is positive.
func (c CatalogCandidate) Purchasable() bool {
	if !c.StockManaged {
		return true
	}
	if c.StockStatus == StockInStock || c.StockStatus == StockOnBackorder {
		return true
	}
	return c.StockQuantity > 0
}
