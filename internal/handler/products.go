package handler

import (
	"net/http"
	"strconv"

	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/store"
)

type productResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Kind     string  `json:"product_type"`
	Stock    int     `json:"stock"`
}

type createProductRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=200"`
	Price      float64 `json:"price" validate:"gte=0"`
	CategoryID *int64  `json:"category_id"`
	Kind       string  `json:"product_type" validate:"required,oneof=product service combo"`
	Stock      int     `json:"stock" validate:"gte=0"`
}

func toProductResponse(item domain.CatalogItem) productResponse {
	id, _ := strconv.ParseInt(item.ID, 10, 64)
	return productResponse{
		ID:       id,
		Name:     item.Name,
		Price:    item.UnitPrice,
		Category: item.Category,
		Kind:     string(item.Kind),
		Stock:    item.Stock,
	}
}

// ListProducts handles GET /products/.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListCatalog(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]productResponse, len(items))
	for i, item := range items {
		out[i] = toProductResponse(item)
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateProduct handles POST /products/.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := h.decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	item, err := h.store.CreateProduct(r.Context(), store.CreateProductParams{
		Name:       req.Name,
		Price:      req.Price,
		CategoryID: req.CategoryID,
		Kind:       domain.ItemKind(req.Kind),
		Stock:      req.Stock,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toProductResponse(*item))
}
