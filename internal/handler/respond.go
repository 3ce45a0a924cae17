package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dvanrensburg/kassa/internal/domain"
	"github.com/dvanrensburg/kassa/internal/middleware"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// respondError maps a domain error onto an HTTP status and a structured
// JSON body. Validation errors carry their per-field messages.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.GetLogger(r.Context())

	if fields := domain.GetValidationFields(err); fields != nil {
		logger.Info("request rejected", "error", err.Error(), "status", http.StatusBadRequest)
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]any{
				"code":    domain.EINVALID,
				"message": "validation failed",
				"fields":  fields,
			},
		})
		return
	}

	code := domain.ErrorCode(err)
	status := errorCodeToHTTPStatus(code)

	attrs := []any{"error", err.Error(), "code", code, "status", status}
	if status >= 500 {
		logger.Error("request failed", attrs...)
	} else {
		logger.Info("request rejected", attrs...)
	}

	respondJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": domain.ErrorMessage(err),
		},
	})
}

// errorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func errorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	case domain.EPRECONDITION:
		return http.StatusUnprocessableEntity
	case domain.ERATELIMIT:
		return http.StatusTooManyRequests
	case domain.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
