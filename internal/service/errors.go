package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check these with errors.Is(); the API layer maps them to HTTP
// status codes.
var (
	// ErrCardNotFound indicates the requested card does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrCardNotFound = errors.New("card not found")

	// ErrSessionNotFound indicates the requested study session does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrSessionNotFound = errors.New("study session not found")

	// ErrInvalidGrade indicates a review grade outside the 0-5 scale.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidGrade = errors.New("grade must be between 0 and 5")

	// ErrInvalidLimit indicates a non-positive result limit.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidLimit = errors.New("limit must be positive")

	// ErrInvalidLevel indicates an unknown JLPT level.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidLevel = errors.New("invalid JLPT level")

	// ErrInvalidItemType indicates an unknown catalog item kind.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrInvalidSetting indicates a settings value that does not parse as
	// the expected type. API layer should map this to HTTP 400 Bad Request.
	ErrInvalidSetting = errors.New("invalid setting value")

	// ErrSettingNotFound indicates the requested settings key does not
	// exist. API layer should map this to HTTP 404 Not Found.
	ErrSettingNotFound = errors.New("setting not found")
)
