package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewCard(t *testing.T) {
	now := time.Date(2026, 5, 2, 15, 4, 5, 0, time.UTC)

	card, err := NewCard(ItemTypeVocab, 123, now)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected a generated card ID")
	}

	if card.ItemType != ItemTypeVocab {
		t.Errorf("Expected item type vocab, got %s", card.ItemType)
	}

	if card.ItemID != 123 {
		t.Errorf("Expected item ID 123, got %d", card.ItemID)
	}

	if card.EaseFactor != 2.5 {
		t.Errorf("Expected ease factor 2.5, got %f", card.EaseFactor)
	}

	if card.IntervalDays != 1 {
		t.Errorf("Expected interval 1, got %d", card.IntervalDays)
	}

	if card.Reps != 0 {
		t.Errorf("Expected reps 0, got %d", card.Reps)
	}

	// New cards are due the day they are introduced.
	wantDue := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	if !card.DueDate.Equal(wantDue) {
		t.Errorf("Expected due date %v, got %v", wantDue, card.DueDate)
	}

	if !card.LastReviewedAt.IsZero() {
		t.Errorf("Expected zero LastReviewedAt, got %v", card.LastReviewedAt)
	}

	if !card.CreatedAt.Equal(now) {
		t.Errorf("Expected CreatedAt %v, got %v", now, card.CreatedAt)
	}
}

func TestNewCardInvalidInput(t *testing.T) {
	now := time.Now().UTC()

	if _, err := NewCard("sentence", 1, now); !errors.Is(err, ErrInvalidItemType) {
		t.Errorf("Expected ErrInvalidItemType, got %v", err)
	}

	if _, err := NewCard(ItemTypeKanji, 0, now); !errors.Is(err, ErrCardItemIDInvalid) {
		t.Errorf("Expected ErrCardItemIDInvalid, got %v", err)
	}
}

func TestCardValidate(t *testing.T) {
	valid := func() *Card {
		return &Card{
			ID:           uuid.New(),
			ItemType:     ItemTypeKanji,
			ItemID:       5,
			EaseFactor:   2.5,
			IntervalDays: 6,
			Reps:         2,
			DueDate:      StartOfDay(time.Now()),
			CreatedAt:    time.Now().UTC(),
		}
	}

	testCases := []struct {
		name    string
		mutate  func(c *Card)
		wantErr error
	}{
		{"valid card", func(c *Card) {}, nil},
		{"nil ID", func(c *Card) { c.ID = uuid.Nil }, ErrCardIDEmpty},
		{"bad item type", func(c *Card) { c.ItemType = "" }, ErrInvalidItemType},
		{"zero item ID", func(c *Card) { c.ItemID = 0 }, ErrCardItemIDInvalid},
		{"interval below one", func(c *Card) { c.IntervalDays = 0 }, ErrCardInvalidInterval},
		{"ease below floor", func(c *Card) { c.EaseFactor = 1.2 }, ErrCardInvalidEase},
		{"negative reps", func(c *Card) { c.Reps = -1 }, ErrCardInvalidReps},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			card := valid()
			tc.mutate(card)
			err := card.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCardIsDue(t *testing.T) {
	now := time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)
	card := &Card{DueDate: StartOfDay(now)}

	if !card.IsDue(now) {
		t.Error("Card due today should be due")
	}

	card.DueDate = StartOfDay(now).AddDate(0, 0, -3)
	if !card.IsDue(now) {
		t.Error("Overdue card should be due")
	}

	card.DueDate = StartOfDay(now).AddDate(0, 0, 1)
	if card.IsDue(now) {
		t.Error("Card due tomorrow should not be due")
	}
}

func TestStartOfDay(t *testing.T) {
	// Non-UTC times normalize to the UTC calendar day.
	loc := time.FixedZone("JST", 9*60*60)
	in := time.Date(2026, 5, 3, 1, 30, 0, 0, loc) // 2026-05-02T16:30Z

	got := StartOfDay(in)
	want := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestIsValidGrade(t *testing.T) {
	for grade := 0; grade <= 5; grade++ {
		if !IsValidGrade(grade) {
			t.Errorf("Grade %d should be valid", grade)
		}
	}
	for _, grade := range []int{-1, 6, 42} {
		if IsValidGrade(grade) {
			t.Errorf("Grade %d should be invalid", grade)
		}
	}
}
