package store

import (
	"context"

	"github.com/dvanrensburg/kassa/internal/domain"
)

// Mock is a function-field store for tests. Unset fields panic so a test
// exercising an unexpected call fails loudly.
type Mock struct {
	CommitSaleFn      func(ctx context.Context, params CreateSaleParams) (*domain.Sale, error)
	ListRecentSalesFn func(ctx context.Context, limit int) ([]domain.Sale, error)
	DashboardStatsFn  func(ctx context.Context) (*domain.DashboardStats, error)
	ListCatalogFn     func(ctx context.Context) ([]domain.CatalogItem, error)
	CreateProductFn   func(ctx context.Context, params CreateProductParams) (*domain.CatalogItem, error)
	ListCategoriesFn  func(ctx context.Context) ([]domain.Category, error)
	CreateCategoryFn  func(ctx context.Context, name, description string) (*domain.Category, error)
	DeleteCategoryFn  func(ctx context.Context, id int64) error
	GetSettingFn      func(ctx context.Context, key, fallback string) (string, error)
	PutSettingFn      func(ctx context.Context, key, value string) error
	SalesByCategoryFn func(ctx context.Context) ([]domain.CategorySales, error)
	MonthlySalesFn    func(ctx context.Context, months int) ([]domain.MonthlySales, error)

	CommitSaleCalls int
}

var _ SaleStore = (*Mock)(nil)

func (m *Mock) CommitSale(ctx context.Context, params CreateSaleParams) (*domain.Sale, error) {
	m.CommitSaleCalls++
	return m.CommitSaleFn(ctx, params)
}

func (m *Mock) ListRecentSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	return m.ListRecentSalesFn(ctx, limit)
}

func (m *Mock) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	return m.DashboardStatsFn(ctx)
}

func (m *Mock) ListCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	return m.ListCatalogFn(ctx)
}

func (m *Mock) CreateProduct(ctx context.Context, params CreateProductParams) (*domain.CatalogItem, error) {
	return m.CreateProductFn(ctx, params)
}

func (m *Mock) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return m.ListCategoriesFn(ctx)
}

func (m *Mock) CreateCategory(ctx context.Context, name, description string) (*domain.Category, error) {
	return m.CreateCategoryFn(ctx, name, description)
}

func (m *Mock) DeleteCategory(ctx context.Context, id int64) error {
	return m.DeleteCategoryFn(ctx, id)
}

func (m *Mock) GetSetting(ctx context.Context, key, fallback string) (string, error) {
	return m.GetSettingFn(ctx, key, fallback)
}

func (m *Mock) PutSetting(ctx context.Context, key, value string) error {
	return m.PutSettingFn(ctx, key, value)
}

func (m *Mock) SalesByCategory(ctx context.Context) ([]domain.CategorySales, error) {
	return m.SalesByCategoryFn(ctx)
}

func (m *Mock) MonthlySales(ctx context.Context, months int) ([]domain.MonthlySales, error) {
	return m.MonthlySalesFn(ctx, months)
}
