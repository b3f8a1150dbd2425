package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidGrade is returned when a review grade is outside the 0-5 scale.
	ErrInvalidGrade = errors.New("grade must be between 0 and 5")

	// ErrInvalidItemType is returned when an item type is not vocab or kanji.
	ErrInvalidItemType = errors.New("invalid item type")

	// ErrInvalidLevel is returned when a JLPT level is not one of N5-N1.
	ErrInvalidLevel = errors.New("invalid JLPT level")
)
