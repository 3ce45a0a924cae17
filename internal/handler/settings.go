package handler

import (
	"net/http"
	"strconv"

	"github.com/dvanrensburg/kassa/internal/domain"
)

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type settingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type putSettingRequest struct {
	Value string `json:"value" validate:"required,max=500"`
}

// settingFallback returns the value to report when a key has never been
// stored. vat_rate defaults to the configured rate; every other key
// reads as "0".
func (h *Handler) settingFallback(key string) string {
	if key == "vat_rate" {
		return trimFloat(h.defaults.VATRatePercent)
	}
	return "0"
}

// GetSetting handles GET /settings/{key}.
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondError(w, r, domain.Invalid("handler.GetSetting", "setting key is required"))
		return
	}

	value, err := h.store.GetSetting(r.Context(), key, h.settingFallback(key))
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, settingResponse{Key: key, Value: value})
}

// PutSetting handles POST /settings/{key}, creating or replacing the value.
func (h *Handler) PutSetting(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		respondError(w, r, domain.Invalid("handler.PutSetting", "setting key is required"))
		return
	}

	var req putSettingRequest
	if err := h.decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.store.PutSetting(r.Context(), key, req.Value); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, settingResponse{Key: key, Value: req.Value})
}
