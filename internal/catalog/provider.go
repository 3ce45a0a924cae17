package catalog

import (
	"context"

	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/store"
)

// StoreProvider serves the catalog from the sale store.
type StoreProvider struct {
	store store.SaleStore
}

var _ Provider = (*StoreProvider)(nil)

func NewStoreProvider(s store.SaleStore) *StoreProvider {
	return &StoreProvider{store: s}
}

func (p *StoreProvider) List(ctx context.Context) ([]domain.CatalogItem, error) {
	return p.store.ListCatalog(ctx)
}

func (p *StoreProvider) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	const op = "catalog.StoreProvider.Get"

	items, err := p.store.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, domain.NotFound(op, "catalog item", id)
}

// StaticProvider serves a fixed in-memory catalog, used when the till runs
// without a reachable store.
type StaticProvider struct {
	items []domain.CatalogItem
}

var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider copies items so later mutation of the input slice
// cannot leak into a session.
func NewStaticProvider(items []domain.CatalogItem) *StaticProvider {
	copied := make([]domain.CatalogItem, len(items))
	copy(copied, items)
	return &StaticProvider{items: copied}
}

// NewDemoProvider returns the built-in demo catalog.
func NewDemoProvider() *StaticProvider {
	return NewStaticProvider(demoItems)
}

func (p *StaticProvider) List(ctx context.Context) ([]domain.CatalogItem, error) {
	out := make([]domain.CatalogItem, len(p.items))
	copy(out, p.items)
	return out, nil
}

func (p *StaticProvider) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	const op = "catalog.StaticProvider.Get"

	for i := range p.items {
		if p.items[i].ID == id {
			item := p.items[i]
			return &item, nil
		}
	}
	return nil, domain.NotFound(op, "catalog item", id)
}

// demoItems mirrors the sample inventory the seed migration installs.
var demoItems = []domain.CatalogItem{
	{ID: "1", Name: "Laptop Pro", UnitPrice: 15000, Category: "Electronics", Kind: domain.KindProduct, Stock: 25},
	{ID: "2", Name: "Designer T-Shirt", UnitPrice: 250, Category: "Clothing", Kind: domain.KindProduct, Stock: 150},
	{ID: "3", Name: "Premium Coffee", UnitPrice: 45, Category: "Food & Beverage", Kind: domain.KindProduct, Stock: 200},
	{ID: "4", Name: "Consultation", UnitPrice: 500, Category: "Professional", Kind: domain.KindService},
	{ID: "5", Name: "Laptop + Setup", UnitPrice: 16000, Category: "Electronics", Kind: domain.KindCombo, Stock: 15},
	{ID: "6", Name: "Wireless Headphones", UnitPrice: 2000, Category: "Electronics", Kind: domain.KindProduct, Stock: 45},
	{ID: "7", Name: "Smartphone", UnitPrice: 8000, Category: "Electronics", Kind: domain.KindProduct, Stock: 30},
	{ID: "8", Name: "Jeans", UnitPrice: 800, Category: "Clothing", Kind: domain.KindProduct, Stock: 75},
	{ID: "9", Name: "Energy Drink", UnitPrice: 35, Category: "Food & Beverage", Kind: domain.KindProduct, Stock: 100},
	{ID: "10", Name: "Installation Service", UnitPrice: 300, Category: "Professional", Kind: domain.KindService},
}
