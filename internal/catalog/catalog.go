// Package catalog supplies the purchasable items a terminal can sell.
package catalog

import (
	"context"
	"strings"

	"github.com/dvanrensburg/kassa/internal/domain"
)

// Provider serves the catalog for a till session. The list is treated as
// immutable for the duration of a session; prices already in a cart are
// never affected by later catalog changes.
type Provider interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	Get(ctx context.Context, id string) (*domain.CatalogItem, error)
}

// FilterByCategory narrows items to one category. An empty or "all"
// category returns the input unchanged.
func FilterByCategory(items []domain.CatalogItem, category string) []domain.CatalogItem {
	if category == "" || strings.EqualFold(category, "all") {
		return items
	}
	var out []domain.CatalogItem
	for _, item := range items {
		if strings.EqualFold(item.Category, category) {
			out = append(out, item)
		}
	}
	return out
}
