package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/pricing"
	"github.com/dvanrensburg/kassa/internal/store"
)

const (
	defaultSalesLimit = 50
	maxSalesLimit     = 200
)

type createSaleItemRequest struct {
	ProductID *int64  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

type createSaleRequest struct {
	Items          []createSaleItemRequest `json:"items" validate:"required,min=1,dive"`
	DiscountAmount float64                 `json:"discount_amount" validate:"gte=0"`
	CustomerName   string                  `json:"customer_name"`
	PaymentMethod  string                  `json:"payment_method" validate:"required,oneof=cash card mobile"`

	// Accepted for wire compatibility but ignored: totals are always
	// recomputed server side.
	TotalAmount float64 `json:"total_amount"`
	VATAmount   float64 `json:"vat_amount"`
}

type saleItemResponse struct {
	ID         int64   `json:"id"`
	SaleID     int64   `json:"sale_id"`
	ProductID  *int64  `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type saleResponse struct {
	ID             int64              `json:"id"`
	TotalAmount    float64            `json:"total_amount"`
	DiscountAmount float64            `json:"discount_amount"`
	VATAmount      float64            `json:"vat_amount"`
	SaleDate       time.Time          `json:"sale_date"`
	CustomerName   string             `json:"customer_name,omitempty"`
	PaymentMethod  string             `json:"payment_method"`
	Items          []saleItemResponse `json:"items"`
}

func toSaleResponse(sale *domain.Sale) saleResponse {
	resp := saleResponse{
		ID:             sale.ID,
		TotalAmount:    sale.TotalAmount,
		DiscountAmount: sale.DiscountAmount,
		VATAmount:      sale.VATAmount,
		SaleDate:       sale.SaleDate,
		CustomerName:   sale.CustomerName,
		PaymentMethod:  string(sale.PaymentMethod),
		Items:          make([]saleItemResponse, len(sale.Items)),
	}
	for i, item := range sale.Items {
		resp.Items[i] = saleItemResponse{
			ID:         item.ID,
			SaleID:     item.SaleID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}
	return resp
}

// CreateSale handles POST /sales/. The submitted totals are discarded: the
// service recomputes discount, VAT, and total from the items and the
// configured vat_rate, then commits atomically.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := h.decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	vatRate := h.vatRate(r)

	lines := make([]pricing.Line, len(req.Items))
	for i, item := range req.Items {
		lines[i] = pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}
	breakdown := pricing.Calculate(pricing.Params{
		Lines:          lines,
		Discount:       pricing.Discount{Type: pricing.DiscountAmount, Value: req.DiscountAmount},
		TaxRatePercent: vatRate,
	})

	params := store.CreateSaleParams{
		TotalAmount:    pricing.Round2(breakdown.Total),
		DiscountAmount: pricing.Round2(breakdown.DiscountAmount),
		VATAmount:      pricing.Round2(breakdown.TaxAmount),
		CustomerName:   req.CustomerName,
		PaymentMethod:  domain.PaymentMethod(req.PaymentMethod),
		Items:          make([]store.CreateSaleItemParams, len(req.Items)),
	}
	for i, item := range req.Items {
		params.Items[i] = store.CreateSaleItemParams{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: pricing.Round2(item.UnitPrice * float64(item.Quantity)),
		}
	}

	sale, err := h.store.CommitSale(r.Context(), params)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toSaleResponse(sale))
}

// ListSales handles GET /sales/?limit=N, newest first.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	limit := defaultSalesLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(w, r, domain.Invalid("handler.ListSales", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	if limit > maxSalesLimit {
		limit = maxSalesLimit
	}

	sales, err := h.store.ListRecentSales(r.Context(), limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]saleResponse, len(sales))
	for i := range sales {
		out[i] = toSaleResponse(&sales[i])
	}
	respondJSON(w, http.StatusOK, out)
}

// vatRate reads the VAT percentage from settings, falling back to the
// configured default when absent or malformed.
func (h *Handler) vatRate(r *http.Request) float64 {
	fallback := trimFloat(h.defaults.VATRatePercent)
	value, err := h.store.GetSetting(r.Context(), "vat_rate", fallback)
	if err != nil {
		return h.defaults.VATRatePercent
	}
	rate, err := strconv.ParseFloat(value, 64)
	if err != nil || rate < 0 {
		return h.defaults.VATRatePercent
	}
	return rate
}
