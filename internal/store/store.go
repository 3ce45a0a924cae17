// Package store defines the sale store contract and its implementations.
// The contract is what the checkout flow depends on: commit a sale
// atomically, list recent sales, and read dashboard aggregates and the
// catalog. Implementations classify any reachability failure as
// ErrUnavailable so callers can trigger fallback behavior without
// inspecting transport details.
package store

import (
	"context"
	"time"

	"github.com/dvanrensburg/kassa/internal/domain"
)

// DefaultTimeout bounds every remote store call.
const DefaultTimeout = 5 * time.Second

// ErrUnavailable reports that the store could not be reached or refused to
// serve. Match with errors.Is; the HTTP and Postgres stores both wrap
// transport failures in it.
var ErrUnavailable = domain.Errorf(domain.EUNAVAILABLE, "", "sale store unavailable")

// CreateSaleItemParams describes one line of a sale to persist. ProductID is
// nil for custom items that exist only on this sale.
type CreateSaleItemParams struct {
	ProductID  *int64
	Name       string
	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// CreateSaleParams is the full write for one committed sale.
type CreateSaleParams struct {
	TotalAmount    float64
	DiscountAmount float64
	VATAmount      float64
	CustomerName   string
	PaymentMethod  domain.PaymentMethod
	Items          []CreateSaleItemParams
}

// SaleStore is the contract between the point of sale and whatever persists
// its transactions.
type SaleStore interface {
	// CommitSale persists the sale and all of its items atomically and
	// returns the stored record with its assigned id.
	CommitSale(ctx context.Context, params CreateSaleParams) (*domain.Sale, error)

	// ListRecentSales returns up to limit sales, newest first.
	ListRecentSales(ctx context.Context, limit int) ([]domain.Sale, error)

	// DashboardStats returns the running aggregates over all sales.
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)

	// ListCatalog returns the purchasable items.
	ListCatalog(ctx context.Context) ([]domain.CatalogItem, error)
}
