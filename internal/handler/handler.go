// Package handler implements the sale service's JSON API: create and list
// sales, catalog and category management, settings, and the dashboard
// aggregates the desk frontends render.
package handler

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/dvanrensburg/kassa/internal"
	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/router"
	"github.com/dvanrensburg/kassa/internal/store"
)

// Store is everything the handlers need from persistence. PostgresStore
// implements it; tests use store.Mock.
type Store interface {
	store.SaleStore

	CreateProduct(ctx context.Context, params store.CreateProductParams) (*domain.CatalogItem, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	GetSetting(ctx context.Context, key, fallback string) (string, error)
	PutSetting(ctx context.Context, key, value string) error
	SalesByCategory(ctx context.Context) ([]domain.CategorySales, error)
	MonthlySales(ctx context.Context, months int) ([]domain.MonthlySales, error)
}

// Handler carries the shared dependencies of all endpoints.
type Handler struct {
	store    Store
	logger   *slog.Logger
	validate *validator.Validate
	defaults internal.CheckoutConfig
}

func New(s Store, logger *slog.Logger, defaults internal.CheckoutConfig) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:    s,
		logger:   logger,
		validate: newValidator(),
		defaults: defaults,
	}
}

// RegisterRoutes mounts every endpoint on the router.
func (h *Handler) RegisterRoutes(r *router.Router) {
	r.Post("/sales/", h.CreateSale)
	r.Get("/sales/", h.ListSales)

	r.Get("/products/", h.ListProducts)
	r.Post("/products/", h.CreateProduct)

	r.Get("/categories/", h.ListCategories)
	r.Post("/categories/", h.CreateCategory)
	r.Delete("/categories/{id}", h.DeleteCategory)

	r.Get("/settings/{key}", h.GetSetting)
	r.Post("/settings/{key}", h.PutSetting)

	r.Get("/analytics/dashboard", h.Dashboard)
	r.Get("/analytics/sales-by-category", h.SalesByCategory)
	r.Get("/analytics/monthly-sales", h.MonthlySales)
}
