package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudySession-specific validation errors.
var (
	ErrSessionIDEmpty        = errors.New("study session ID cannot be empty")
	ErrSessionCountsNegative = errors.New("study session counters cannot be negative")
	ErrSessionCountsMismatch = errors.New("correct + incorrect cannot exceed cards reviewed")
)

// StudySession is a contiguous window of review activity. Counters are
// best-effort bookkeeping for the learner's current sitting; the
// authoritative review history lives in ReviewLog.
//
// Nothing prevents two sessions from being open at the same time. The client
// is expected to hold one session ID per sitting, but concurrent sessions
// are supported rather than structurally excluded.
type StudySession struct {
	ID            uuid.UUID `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"` // Zero while the session is open
	CardsReviewed int       `json:"cards_reviewed"`
	Correct       int       `json:"correct"`   // Reviews with grade >= 3
	Incorrect     int       `json:"incorrect"` // Reviews with grade < 3
}

// NewStudySession opens a new session with zeroed counters.
func NewStudySession(now time.Time) *StudySession {
	return &StudySession{
		ID:        uuid.New(),
		StartedAt: now.UTC(),
	}
}

// Validate checks if the StudySession has valid data.
// Returns an error if any field fails validation.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.CardsReviewed < 0 || s.Correct < 0 || s.Incorrect < 0 {
		return ErrSessionCountsNegative
	}

	if s.Correct+s.Incorrect > s.CardsReviewed {
		return ErrSessionCountsMismatch
	}

	return nil
}

// IsOpen reports whether the session has not been closed yet.
func (s *StudySession) IsOpen() bool {
	return s.EndedAt.IsZero()
}

// RecordOutcome applies one graded review to the session counters.
func (s *StudySession) RecordOutcome(grade int) {
	s.CardsReviewed++
	if grade >= PassingGrade {
		s.Correct++
	} else {
		s.Incorrect++
	}
}

// Close marks the session ended. Closing an already-closed session is a
// no-op so client retries stay idempotent.
func (s *StudySession) Close(now time.Time) {
	if s.IsOpen() {
		s.EndedAt = now.UTC()
	}
}
