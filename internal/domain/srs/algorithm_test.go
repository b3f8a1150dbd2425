package srs

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/kioku-api/internal/domain"
)

func TestCalculateNewEaseFactor(t *testing.T) {
	t.Parallel() // Enable parallel execution
	params := NewDefaultParams()

	testCases := []struct {
		name     string
		current  float64
		grade    int
		expected float64
	}{
		{
			name:     "Grade 5 should increase ease factor",
			current:  2.5,
			grade:    5,
			expected: 2.6, // 2.5 + 0.1
		},
		{
			name:     "Grade 4 should keep ease factor unchanged",
			current:  2.5,
			grade:    4,
			expected: 2.5, // delta = 0.1 - 1*(0.08+0.02) = 0
		},
		{
			name:     "Grade 3 should slightly decrease ease factor",
			current:  2.5,
			grade:    3,
			expected: 2.36, // delta = 0.1 - 2*(0.08+0.04) = -0.14
		},
		{
			name:     "Grade 0 should sharply decrease ease factor",
			current:  2.5,
			grade:    0,
			expected: 1.7, // delta = 0.1 - 5*(0.08+0.10) = -0.8
		},
		{
			name:     "Ease floor should be enforced",
			current:  1.4,
			grade:    0,
			expected: 1.3, // 1.4 - 0.8 = 0.6, clamped to 1.3
		},
		{
			name:     "No upper cap on ease factor",
			current:  3.0,
			grade:    5,
			expected: 3.1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			newEase := calculateNewEaseFactor(tc.current, tc.grade, params)

			if math.Abs(newEase-tc.expected) > 1e-9 {
				t.Errorf("Expected ease factor %v, got %v", tc.expected, newEase)
			}
		})
	}
}

func TestEaseFactorNeverBelowFloor(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	// Repeated total failures from any starting ease must never end up below
	// the floor, no matter how many times the penalty is applied.
	for _, start := range []float64{1.3, 1.5, 2.5, 3.5} {
		ease := start
		for i := 0; i < 20; i++ {
			ease = calculateNewEaseFactor(ease, 0, params)
			if ease < params.EaseFloor {
				t.Fatalf("ease dropped below floor: start %v, iteration %d, got %v", start, i, ease)
			}
		}
	}

	// Same guarantee across every valid grade.
	for grade := domain.MinGrade; grade <= domain.MaxGrade; grade++ {
		if got := calculateNewEaseFactor(1.3, grade, params); got < params.EaseFloor {
			t.Errorf("grade %d drove ease below floor: %v", grade, got)
		}
	}
}

func TestCalculateNextSchedule(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()

	testCases := []struct {
		name         string
		interval     int
		reps         int
		grade        int
		newEase      float64
		wantInterval int
		wantReps     int
	}{
		{
			name:         "Failure resets to one day regardless of prior state",
			interval:     10,
			reps:         5,
			grade:        0,
			newEase:      1.7,
			wantInterval: 1,
			wantReps:     0,
		},
		{
			name:         "Grade 2 is still a failure",
			interval:     30,
			reps:         8,
			grade:        2,
			newEase:      2.0,
			wantInterval: 1,
			wantReps:     0,
		},
		{
			name:         "First successful review schedules one day",
			interval:     1,
			reps:         0,
			grade:        3,
			newEase:      2.36,
			wantInterval: 1,
			wantReps:     1,
		},
		{
			name:         "Second successful review schedules six days",
			interval:     1,
			reps:         1,
			grade:        4,
			newEase:      2.5,
			wantInterval: 6,
			wantReps:     2,
		},
		{
			name:         "Later reviews multiply interval by ease",
			interval:     6,
			reps:         2,
			grade:        4,
			newEase:      2.5,
			wantInterval: 15, // ceil(6 * 2.5)
			wantReps:     3,
		},
		{
			name:         "Interval rounds up",
			interval:     7,
			reps:         3,
			grade:        3,
			newEase:      2.22,
			wantInterval: 16, // ceil(7 * 2.22) = ceil(15.54)
			wantReps:     4,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gotInterval, gotReps := calculateNextSchedule(
				tc.interval, tc.reps, tc.grade, tc.newEase, params)

			if gotInterval != tc.wantInterval {
				t.Errorf("Expected interval %d, got %d", tc.wantInterval, gotInterval)
			}
			if gotReps != tc.wantReps {
				t.Errorf("Expected reps %d, got %d", tc.wantReps, gotReps)
			}
		})
	}
}

func TestCalculateNextCard(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	card := &domain.Card{
		ID:           uuid.New(),
		ItemType:     domain.ItemTypeVocab,
		ItemID:       42,
		EaseFactor:   2.5,
		IntervalDays: 6,
		Reps:         2,
		DueDate:      domain.StartOfDay(now),
		CreatedAt:    now.AddDate(0, 0, -8),
	}

	next := calculateNextCard(card, 5, now, params)

	// Grade 5 from steady state: ease grows past 2.5 and the interval is the
	// old interval scaled by the new ease.
	if next.EaseFactor <= 2.5 {
		t.Errorf("expected ease factor above 2.5, got %v", next.EaseFactor)
	}
	wantInterval := int(math.Ceil(6 * next.EaseFactor))
	if next.IntervalDays != wantInterval {
		t.Errorf("expected interval %d, got %d", wantInterval, next.IntervalDays)
	}
	if next.Reps != 3 {
		t.Errorf("expected reps 3, got %d", next.Reps)
	}

	wantDue := domain.StartOfDay(now).AddDate(0, 0, next.IntervalDays)
	if !next.DueDate.Equal(wantDue) {
		t.Errorf("expected due date %v, got %v", wantDue, next.DueDate)
	}
	if !next.LastReviewedAt.Equal(now) {
		t.Errorf("expected last reviewed %v, got %v", now, next.LastReviewedAt)
	}

	// Identity and bookkeeping fields are untouched.
	if next.ID != card.ID || next.ItemType != card.ItemType || next.ItemID != card.ItemID {
		t.Error("identity fields must not change")
	}
	if !next.CreatedAt.Equal(card.CreatedAt) {
		t.Error("created_at must not change")
	}

	// The input card is not mutated.
	if card.EaseFactor != 2.5 || card.IntervalDays != 6 || card.Reps != 2 {
		t.Error("input card was mutated")
	}
}

func TestCalculateNextCardFailureResetsDueTomorrow(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)

	card := &domain.Card{
		ID:           uuid.New(),
		ItemType:     domain.ItemTypeKanji,
		ItemID:       7,
		EaseFactor:   2.2,
		IntervalDays: 10,
		Reps:         5,
		DueDate:      domain.StartOfDay(now),
		CreatedAt:    now.AddDate(0, 0, -30),
	}

	next := calculateNextCard(card, 0, now, params)

	if next.IntervalDays != 1 {
		t.Errorf("expected interval 1, got %d", next.IntervalDays)
	}
	if next.Reps != 0 {
		t.Errorf("expected reps 0, got %d", next.Reps)
	}
	wantDue := domain.StartOfDay(now).AddDate(0, 0, 1)
	if !next.DueDate.Equal(wantDue) {
		t.Errorf("expected due date tomorrow (%v), got %v", wantDue, next.DueDate)
	}
}

func TestReviewProgressionFromNewCard(t *testing.T) {
	t.Parallel()
	params := NewDefaultParams()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	card, err := domain.NewCard(domain.ItemTypeVocab, 1, now)
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}

	// First success: interval 1, reps 1.
	card = calculateNextCard(card, 3, now, params)
	if card.IntervalDays != 1 || card.Reps != 1 {
		t.Fatalf("after first review: interval %d reps %d", card.IntervalDays, card.Reps)
	}

	// Second success the next day: interval 6, reps 2.
	now = now.AddDate(0, 0, 1)
	card = calculateNextCard(card, 3, now, params)
	if card.IntervalDays != 6 || card.Reps != 2 {
		t.Fatalf("after second review: interval %d reps %d", card.IntervalDays, card.Reps)
	}

	// Third success: interval = ceil(6 * ease-after-third-review), reps 3.
	now = now.AddDate(0, 0, 6)
	card = calculateNextCard(card, 3, now, params)
	wantInterval := int(math.Ceil(6 * card.EaseFactor))
	if card.IntervalDays != wantInterval || card.Reps != 3 {
		t.Fatalf("after third review: interval %d (want %d) reps %d",
			card.IntervalDays, wantInterval, card.Reps)
	}
}
