package domain

import "time"

// PaymentMethod is the closed set of tender types accepted at the till.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// Valid reports whether m is one of the accepted payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentMobile:
		return true
	}
	return false
}

// Sale is a committed transaction. A sale and its items are written
// together atomically and are immutable afterwards.
type Sale struct {
	ID             int64
	TotalAmount    float64
	DiscountAmount float64
	VATAmount      float64
	SaleDate       time.Time
	CustomerName   string // empty when the sale was anonymous
	PaymentMethod  PaymentMethod
	Items          []SaleItem
}

// SaleItem is one priced row of a committed sale.
type SaleItem struct {
	ID     int64
	SaleID int64

	// ProductID is nil for ad-hoc items that were never part of the
	// catalog. It is never written as zero.
	ProductID *int64

	Quantity   int
	UnitPrice  float64
	TotalPrice float64
}

// DashboardStats aggregates committed sales for the dashboard screen.
type DashboardStats struct {
	TotalSales    float64
	TotalOrders   int
	ProductsSold  int
	AvgOrderValue float64
}

// CategorySales is one slice of the sales-by-category report.
type CategorySales struct {
	Category string
	Total    float64
}

// MonthlySales is one month's bucket of the monthly sales report.
type MonthlySales struct {
	Month  string // e.g. "Jan"
	Sales  float64
	Orders int
}

// Setting is one key/value row of till configuration
// (vat_rate, currency, company_name, receipt_footer).
type Setting struct {
	Key   string
	Value string
}
