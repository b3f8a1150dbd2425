package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/kioku-api/internal/service"
	"github.com/phrazzld/kioku-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error types
// or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrCardNotFound),
		errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrSettingNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrInvalidGrade),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrInvalidLevel),
		errors.Is(err, service.ErrInvalidItemType),
		errors.Is(err, service.ErrInvalidSetting),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

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
	case errors.Is(err, service.ErrCardNotFound):
		return "Card not found"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Study session not found"

	case errors.Is(err, service.ErrSettingNotFound):
		return "Setting not found"

	case errors.Is(err, service.ErrInvalidGrade):
		return "Grade must be between 0 and 5"

	case errors.Is(err, service.ErrInvalidLimit):
		return "Limit must be a positive integer"

	case errors.Is(err, service.ErrInvalidLevel):
		return "Unknown JLPT level"

	case errors.Is(err, service.ErrInvalidItemType):
		return "Unknown item type"

	case errors.Is(err, service.ErrInvalidSetting):
		return "Invalid setting value"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}
