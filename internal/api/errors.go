package api

import (
	"errors"
	"net/http"

	"github.com/palime/palime-api/internal/domain"
	"github.com/palime/palime-api/internal/service"
	"github.com/palime/palime-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error types
// or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound

	// Protected system deck
	case errors.Is(err, domain.ErrDefaultDeckImmutable):
		return http.StatusForbidden

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, service.ErrSessionNotActive):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidItemType),
		errors.Is(err, domain.ErrItemPaliEmpty),
		errors.Is(err, domain.ErrItemMeaningEmpty),
		errors.Is(err, domain.ErrInvalidDirection),
		errors.Is(err, domain.ErrDeckNameEmpty),
		errors.Is(err, domain.ErrDeckNameReserved),
		errors.Is(err, service.ErrSchemaVersionMismatch):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal
// details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, store.ErrItemNotFound):
		return "Item not found"

	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, store.ErrReviewStateNotFound):
		return "Review state not found"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Study session not found"

	// Protected system deck
	case errors.Is(err, domain.ErrDefaultDeckImmutable):
		return `The "All" deck cannot be modified`

	// Conflict errors
	case errors.Is(err, store.ErrDeckNameTaken):
		return "A deck with this name already exists"

	case errors.Is(err, service.ErrSessionNotActive):
		return "Study session is not active"

	// Bad request errors
	case errors.Is(err, domain.ErrInvalidItemType):
		return "Invalid item type"

	case errors.Is(err, domain.ErrItemPaliEmpty):
		return "Pali text is required"

	case errors.Is(err, domain.ErrItemMeaningEmpty):
		return "Meaning is required"

	case errors.Is(err, domain.ErrInvalidDirection):
		return "Invalid study direction"

	case errors.Is(err, domain.ErrDeckNameEmpty):
		return "Deck name cannot be empty"

	case errors.Is(err, domain.ErrDeckNameReserved):
		return `The deck name "All" is reserved`

	case errors.Is(err, service.ErrSchemaVersionMismatch):
		return "Export file was created by an incompatible version"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the standard error response for err: the status
// from MapErrorToStatusCode and the sanitized message, with full (redacted)
// detail in the logs. An empty overrideMessage uses the mapped safe
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, overrideMessage string) {
	status := MapErrorToStatusCode(err)
	message := overrideMessage
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	respondError(w, r, status, message, err)
}
