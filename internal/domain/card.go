package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Grade bounds for the SM-2 scale. 0 is a complete failure to recall,
// 5 is instant recall. Grades of 3 and above count as correct.
const (
	MinGrade = 0
	MaxGrade = 5

	// PassingGrade is the lowest grade that counts as a successful recall.
	PassingGrade = 3
)

// IsValidGrade reports whether grade is on the 0-5 SM-2 scale.
func IsValidGrade(grade int) bool {
	return grade >= MinGrade && grade <= MaxGrade
}

// Default scheduling state for a freshly introduced card.
const (
	DefaultEaseFactor   = 2.5
	DefaultIntervalDays = 1
)

// Card-specific validation errors.
var (
	ErrCardIDEmpty         = errors.New("card ID cannot be empty")
	ErrCardItemIDInvalid   = errors.New("card item ID must be positive")
	ErrCardInvalidInterval = errors.New("interval must be at least 1 day")
	ErrCardInvalidEase     = errors.New("ease factor must be at least 1.3")
	ErrCardInvalidReps     = errors.New("reps cannot be negative")
)

// MinEaseFactor is the absolute floor for a card's ease factor. The SM-2
// update never lets ease drop below this value.
const MinEaseFactor = 1.3

// Card is the per-item memory record: one row per (item type, item ID) pair,
// created the first time the learner is introduced to that item. It carries
// everything the scheduler needs to decide when the item should next appear.
type Card struct {
	ID       uuid.UUID `json:"id"`
	ItemType ItemType  `json:"item_type"`
	ItemID   int64     `json:"item_id"`

	EaseFactor   float64   `json:"ease_factor"`   // Growth rate of the interval, floor 1.3
	IntervalDays int       `json:"interval_days"` // Days until next exposure
	Reps         int       `json:"reps"`          // Consecutive successful reviews; 0 = new or lapsed
	DueDate      time.Time `json:"due_date"`      // UTC midnight; due when DueDate <= today

	LastReviewedAt time.Time `json:"last_reviewed_at"` // Zero until first review
	CreatedAt      time.Time `json:"created_at"`       // Immutable; enforces the daily new-card cap
}

// NewCard creates the memory record for an item the learner has not seen
// before. The card is due immediately so it can be studied the same day it
// is introduced.
func NewCard(itemType ItemType, itemID int64, now time.Time) (*Card, error) {
	card := &Card{
		ID:           uuid.New(),
		ItemType:     itemType,
		ItemID:       itemID,
		EaseFactor:   DefaultEaseFactor,
		IntervalDays: DefaultIntervalDays,
		Reps:         0,
		DueDate:      StartOfDay(now),
		CreatedAt:    now.UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
// Returns an error if any field fails validation.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if !c.ItemType.IsValid() {
		return ErrInvalidItemType
	}

	if c.ItemID <= 0 {
		return ErrCardItemIDInvalid
	}

	if c.IntervalDays < 1 {
		return ErrCardInvalidInterval
	}

	if c.EaseFactor < MinEaseFactor {
		return ErrCardInvalidEase
	}

	if c.Reps < 0 {
		return ErrCardInvalidReps
	}

	return nil
}

// IsDue reports whether the card is eligible for review at the given time.
func (c *Card) IsDue(now time.Time) bool {
	return !c.DueDate.After(StartOfDay(now))
}

// StartOfDay truncates t to UTC midnight. Due dates and daily-cap windows
// are all computed at day granularity in UTC.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
