package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ReviewLog-specific validation errors.
var (
	ErrReviewLogIDEmpty     = errors.New("review log ID cannot be empty")
	ErrReviewLogCardIDEmpty = errors.New("review log card ID cannot be empty")
)

// ReviewLog is the append-only audit record of one graded review. A row is
// written alongside every card update and is never modified or deleted
// afterwards; all history-derived statistics (streaks, accuracy) are computed
// from these rows rather than from mutable counters.
type ReviewLog struct {
	ID         uuid.UUID     `json:"id"`
	CardID     uuid.UUID     `json:"card_id"`
	SessionID  uuid.NullUUID `json:"session_id"` // Optional link to the active study session
	Grade      int           `json:"grade"`      // 0-5 SM-2 scale
	ReviewedAt time.Time     `json:"reviewed_at"`
}

// NewReviewLog creates the audit record for a single graded review.
// sessionID may be unset; session tracking is best-effort.
func NewReviewLog(cardID uuid.UUID, grade int, sessionID uuid.NullUUID, now time.Time) (*ReviewLog, error) {
	log := &ReviewLog{
		ID:         uuid.New(),
		CardID:     cardID,
		SessionID:  sessionID,
		Grade:      grade,
		ReviewedAt: now.UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the ReviewLog has valid data.
// Returns an error if any field fails validation.
func (l *ReviewLog) Validate() error {
	if l.ID == uuid.Nil {
		return ErrReviewLogIDEmpty
	}

	if l.CardID == uuid.Nil {
		return ErrReviewLogCardIDEmpty
	}

	if !IsValidGrade(l.Grade) {
		return ErrInvalidGrade
	}

	return nil
}

// Correct reports whether the logged grade counts as a successful recall.
func (l *ReviewLog) Correct() bool {
	return l.Grade >= PassingGrade
}
