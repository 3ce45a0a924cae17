package handler

import (
	"net/http"
	"strconv"

	"github.com/dvanrensburg/kassa/internal/domain"
)

type categoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
}

func toCategoryResponse(c domain.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// ListCategories handles GET /categories/.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = toCategoryResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST /categories/. Names are unique; a duplicate
// is reported as a conflict.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := h.decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	category, err := h.store.CreateCategory(r.Context(), req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCategoryResponse(*category))
}

// DeleteCategory handles DELETE /categories/{id}. Products referencing the
// category keep existing with their category cleared.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, r, domain.Invalid("handler.DeleteCategory", "category id must be an integer"))
		return
	}

	if err := h.store.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
