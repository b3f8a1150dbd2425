package srs

import (
	"errors"
	"time"

	"github.com/phrazzld/kioku-api/internal/domain"
)

// Common errors
var (
	ErrNilCard      = errors.New("card cannot be nil")
	ErrInvalidGrade = errors.New("grade must be between 0 and 5")
)

// Service defines the interface for SM-2 scheduling operations.
type Service interface {
	// Review computes the card state that results from one graded review.
	// The returned card is a new value; the input is not modified. The
	// caller is responsible for persisting the result and appending the
	// matching review log entry in the same transaction.
	Review(card *domain.Card, grade int, now time.Time) (*domain.Card, error)

	// MatureThresholdDays returns the interval length at or above which a
	// card counts as mature in learner-facing statistics.
	MatureThresholdDays() int
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new SRS service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// Review implements the Service interface. A grade outside the 0-5 scale is
// a contract violation and is rejected before any state is computed.
func (s *defaultService) Review(
	card *domain.Card,
	grade int,
	now time.Time,
) (*domain.Card, error) {
	if card == nil {
		return nil, ErrNilCard
	}

	if !domain.IsValidGrade(grade) {
		return nil, ErrInvalidGrade
	}

	return calculateNextCard(card, grade, now, s.params), nil
}

// MatureThresholdDays implements the Service interface.
func (s *defaultService) MatureThresholdDays() int {
	return s.params.MatureThresholdDays
}
