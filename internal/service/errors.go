package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them onto
// HTTP status codes.
var (
	// ErrSessionNotFound indicates that no study session exists with the
	// given ID. Sessions are in-memory and vanish on restart, so a stale
	// client can hold an ID for a session that no longer exists.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrSessionNotActive indicates an answer was submitted to a session
	// that has already completed or started in a degenerate state.
	ErrSessionNotActive = errors.New("study session is not active")

	// ErrSchemaVersionMismatch indicates an import payload was produced by
	// an incompatible schema version.
	ErrSchemaVersionMismatch = errors.New("export schema version mismatch")
)

// ServiceError wraps an unexpected error with the operation that produced
// it. Expected conditions use the sentinel errors above (or the domain and
// store sentinels) instead.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
