package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/listafacil/backend/internal/domain"
)

// The storefront and the content backend both emit product records, but not
// with one shape: some endpoints return the fields flat, others nest them
// under an "attributes" wrapper, prices arrive as strings or numbers, and
// images as plain URLs or {src: ...} objects. All of that variance is
// absorbed here so the rest of the service only ever sees a strict
// domain.CatalogCandidate.

// mapProducts decodes a products response body into catalog candidates.
func mapProducts(body []byte) ([]domain.CatalogCandidate, error) {
	var records []map[string]interface{}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("products payload is not an array: %w", err)
	}

	candidates := make([]domain.CatalogCandidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, mapProduct(record))
	}
	return candidates, nil
}

// mapProduct converts one loose product record to the strict domain model.
// Fields nested under an "attributes" wrapper take precedence over flat ones.
func mapProduct(record map[string]interface{}) domain.CatalogCandidate {
	fields := record
	if nested, ok := record["attributes"].(map[string]interface{}); ok {
		fields = merged(record, nested)
	}

	return domain.CatalogCandidate{
		ID:            int64Field(fields, "id"),
		SKU:           stringField(fields, "sku"),
		Name:          stringField(fields, "name"),
		Price:         decimalField(fields, "price"),
		StockQuantity: intField(fields, "stock_quantity"),
		StockManaged:  boolField(fields, "manage_stock"),
		StockStatus:   stockStatusField(fields, "stock_status"),
		Images:        imageURLs(fields["images"]),
	}
}

// merged overlays nested attribute fields on top of the flat record.
func merged(flat, nested map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(flat)+len(nested))
	for k, v := range flat {
		out[k] = v
	}
	for k, v := range nested {
		out[k] = v
	}
	return out
}

func stringField(fields map[string]interface{}, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

func int64Field(fields map[string]interface{}, key string) int64 {
	switch v := fields[key].(type) {
	case float64:
		return int64(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return 0
		}
		return d.IntPart()
	default:
		return 0
	}
}

func intField(fields map[string]interface{}, key string) int {
	return int(int64Field(fields, key))
}

func boolField(fields map[string]interface{}, key string) bool {
	v, _ := fields[key].(bool)
	return v
}

// decimalField parses a price that may arrive as a string, a number, or be
// absent. Anything unparseable becomes zero.
func decimalField(fields map[string]interface{}, key string) decimal.Decimal {
	switch v := fields[key].(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float64:
		return decimal.NewFromFloat(v)
	default:
		return decimal.Zero
	}
}

// stockStatusField maps the storefront stock status, defaulting anything
// unknown to out_of_stock so an odd payload never reads as purchasable.
func stockStatusField(fields map[string]interface{}, key string) domain.StockStatus {
	switch domain.StockStatus(stringField(fields, key)) {
	case domain.StockInStock:
		return domain.StockInStock
	case domain.StockOnBackorder:
		return domain.StockOnBackorder
	default:
		return domain.StockOutOfStock
	}
}

// imageURLs accepts both plain URL strings and {src: URL} objects.
func imageURLs(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok {
		return nil
	}

	var urls []string
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if v != "" {
				urls = append(urls, v)
			}
		case map[string]interface{}:
			if src, ok := v["src"].(string); ok && src != "" {
				urls = append(urls, src)
			}
		}
	}
	return urls
}
