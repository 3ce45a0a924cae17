package handler

import (
	"net/http"
	"strconv"

	"github.com/dvanrensburg/kassa/internal/domain"
)

type dashboardResponse struct {
	TotalSales    float64 `json:"total_sales"`
	TotalOrders   int     `json:"total_orders"`
	ProductsSold  int     `json:"products_sold"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type categorySalesResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type monthlySalesResponse struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// Dashboard handles GET /analytics/dashboard.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.DashboardStats(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboardResponse{
		TotalSales:    stats.TotalSales,
		TotalOrders:   stats.TotalOrders,
		ProductsSold:  stats.ProductsSold,
		AvgOrderValue: stats.AvgOrderValue,
	})
}

// SalesByCategory handles GET /analytics/sales-by-category.
func (h *Handler) SalesByCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.SalesByCategory(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]categorySalesResponse, len(rows))
	for i, row := range rows {
		out[i] = categorySalesResponse{Category: row.Category, Total: row.Total}
	}
	respondJSON(w, http.StatusOK, out)
}

// MonthlySales handles GET /analytics/monthly-sales?months=N.
func (h *Handler) MonthlySales(w http.ResponseWriter, r *http.Request) {
	months := 6
	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 36 {
			respondError(w, r, domain.Invalid("handler.MonthlySales", "months must be between 1 and 36"))
			return
		}
		months = parsed
	}

	rows, err := h.store.MonthlySales(r.Context(), months)
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]monthlySalesResponse, len(rows))
	for i, row := range rows {
		out[i] = monthlySalesResponse{Month: row.Month, Sales: row.Sales, Orders: row.Orders}
	}
	respondJSON(w, http.StatusOK, out)
}
