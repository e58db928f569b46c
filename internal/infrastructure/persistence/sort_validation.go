package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC, defaulting
// to DESC for anything unrecognized.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks the requested sort field against a whitelist.
// Anything not whitelisted falls back to defaultField, which keeps
// user-supplied sort input out of the ORDER BY clause.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"external_id": true,
	"name":        true,
	"model":       true,
	"price":       true,
	"quantity":    true,
	"category_id": true,
	"supplier_id": true,
}

// CategorySortFields contains allowed sort fields for categories
var CategorySortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"status":       true,
	"confirmed_at": true,
}
