package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dvanrensburg/kassa/internal/domain"
)

// HTTPStore talks to the sale service over its JSON API. Every method is
// bounded by the client timeout; any transport failure or non-2xx response
// is reported as ErrUnavailable so the caller can fall back.
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

var _ SaleStore = (*HTTPStore)(nil)

// NewHTTPStore returns a store client for the service at baseURL, which may
// carry a trailing slash or not.
func NewHTTPStore(baseURL string, opts ...HTTPOption) *HTTPStore {
	s := &HTTPStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HTTPOption customizes an HTTPStore.
type HTTPOption func(*HTTPStore)

// WithHTTPClient swaps the underlying client, mainly for tests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPStore) { s.client = c }
}

type saleItemPayload struct {
	ID         int64   `json:"id,omitempty"`
	SaleID     int64   `json:"sale_id,omitempty"`
	ProductID  *int64  `json:"product_id"`
	Name       string  `json:"name,omitempty"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

type salePayload struct {
	ID             int64             `json:"id,omitempty"`
	TotalAmount    float64           `json:"total_amount"`
	DiscountAmount float64           `json:"discount_amount"`
	VATAmount      float64           `json:"vat_amount"`
	SaleDate       time.Time         `json:"sale_date,omitempty"`
	CustomerName   string            `json:"customer_name,omitempty"`
	PaymentMethod  string            `json:"payment_method"`
	Items          []saleItemPayload `json:"items"`
}

func saleFromPayload(p salePayload) domain.Sale {
	sale := domain.Sale{
		ID:             p.ID,
		TotalAmount:    p.TotalAmount,
		DiscountAmount: p.DiscountAmount,
		VATAmount:      p.VATAmount,
		SaleDate:       p.SaleDate,
		CustomerName:   p.CustomerName,
		PaymentMethod:  domain.PaymentMethod(p.PaymentMethod),
	}
	for _, item := range p.Items {
		sale.Items = append(sale.Items, domain.SaleItem{
			ID:         item.ID,
			SaleID:     item.SaleID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}
	return sale
}

// CommitSale posts the sale to the service.
func (s *HTTPStore) CommitSale(ctx context.Context, params CreateSaleParams) (*domain.Sale, error) {
	const op = "store.http.CommitSale"

	payload := salePayload{
		TotalAmount:    params.TotalAmount,
		DiscountAmount: params.DiscountAmount,
		VATAmount:      params.VATAmount,
		CustomerName:   params.CustomerName,
		PaymentMethod:  string(params.PaymentMethod),
		Items:          make([]saleItemPayload, len(params.Items)),
	}
	for i, item := range params.Items {
		payload.Items[i] = saleItemPayload{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to encode sale")
	}

	var stored salePayload
	if err := s.do(ctx, http.MethodPost, "/sales/", bytes.NewReader(body), &stored); err != nil {
		return nil, err
	}
	sale := saleFromPayload(stored)
	return &sale, nil
}

// ListRecentSales fetches up to limit sales, newest first.
func (s *HTTPStore) ListRecentSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	path := "/sales/"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var payloads []salePayload
	if err := s.do(ctx, http.MethodGet, path, nil, &payloads); err != nil {
		return nil, err
	}
	sales := make([]domain.Sale, len(payloads))
	for i, p := range payloads {
		sales[i] = saleFromPayload(p)
	}
	return sales, nil
}

// DashboardStats fetches the sales aggregates.
func (s *HTTPStore) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var payload struct {
		TotalSales    float64 `json:"total_sales"`
		TotalOrders   int     `json:"total_orders"`
		ProductsSold  int     `json:"products_sold"`
		AvgOrderValue float64 `json:"avg_order_value"`
	}
	if err := s.do(ctx, http.MethodGet, "/analytics/dashboard", nil, &payload); err != nil {
		return nil, err
	}
	return &domain.DashboardStats{
		TotalSales:    payload.TotalSales,
		TotalOrders:   payload.TotalOrders,
		ProductsSold:  payload.ProductsSold,
		AvgOrderValue: payload.AvgOrderValue,
	}, nil
}

// ListCatalog fetches the product list.
func (s *HTTPStore) ListCatalog(ctx context.Context) ([]domain.CatalogItem, error) {
	var payloads []struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Category string  `json:"category"`
		Type     string  `json:"product_type"`
		Stock    int     `json:"stock"`
	}
	if err := s.do(ctx, http.MethodGet, "/products/", nil, &payloads); err != nil {
		return nil, err
	}

	items := make([]domain.CatalogItem, len(payloads))
	for i, p := range payloads {
		kind := domain.ItemKind(p.Type)
		if !kind.Valid() {
			kind = domain.KindProduct
		}
		items[i] = domain.CatalogItem{
			ID:        strconv.FormatInt(p.ID, 10),
			Name:      p.Name,
			UnitPrice: p.Price,
			Category:  p.Category,
			Kind:      kind,
			Stock:     p.Stock,
		}
	}
	return items, nil
}

// do issues one request and decodes a 2xx JSON body into out. Anything that
// prevents a decodable success response maps to ErrUnavailable.
func (s *HTTPStore) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	const op = "store.http.do"

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, body)
	if err != nil {
		return domain.Internal(err, op, "failed to build request")
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: unexpected status %d from %s %s", ErrUnavailable, resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: malformed response body: %v", ErrUnavailable, err)
	}
	return nil
}
