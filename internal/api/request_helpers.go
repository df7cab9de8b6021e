package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/palime/palime-api/internal/api/shared"
)

// validate is the shared request validator. Validator instances cache
// struct metadata, so one instance serves all handlers.
var validate = validator.New()

// decodeAndValidate decodes the request body into dst and runs struct
// validation. On failure it writes a 400 response and returns false; the
// handler should simply return.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, sanitizeValidationError(err))
		return false
	}
	return true
}

// getPathID extracts a positive integer ID from the URL path parameters.
// On failure it writes a 400 response and returns false.
func getPathID(w http.ResponseWriter, r *http.Request, paramName string) (int64, bool) {
	raw := chi.URLParam(r, paramName)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Invalid %s", paramName))
		return 0, false
	}
	return id, true
}

// getPathUUID extracts a UUID from the URL path parameters. On failure it
// writes a 400 response and returns false.
func getPathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, paramName)
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			fmt.Sprintf("Invalid %s", paramName))
		return uuid.Nil, false
	}
	return id, true
}

// respondError is a thin wrapper over shared.RespondWithErrorAndLog used by
// the error helpers in this package.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// sanitizeValidationError converts a validator error to a short,
// field-level message without echoing submitted values back.
func sanitizeValidationError(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", first.Field(), validationTagMessage(first.Tag()))
	}
	return "Validation error"
}

// validationTagMessage maps validation tags to user-friendly error messages.
func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte":
		return "value too small"
	default:
		return "validation failed"
	}
}
