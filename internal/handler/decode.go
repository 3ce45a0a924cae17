package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dvanrensburg/kassa/internal/domain"
)

// newValidator builds a validator that reports json field names instead of
// Go struct field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// decodeJSON reads, decodes, and validates a request body into dest.
func (h *Handler) decodeJSON(r *http.Request, dest any) error {
	const op = "handler.decodeJSON"

	defer io.Copy(io.Discard, r.Body)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return domain.Invalid(op, "invalid request body")
	}
	if err := h.validate.Struct(dest); err != nil {
		return asValidationError(op, err)
	}
	return nil
}

func asValidationError(op string, err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.Invalid(op, "validation failed")
	}
	var out error
	for _, fieldErr := range errs {
		out = domain.AddFieldError(out, fieldErr.Field(), validationMessage(fieldErr))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return "is invalid"
}
