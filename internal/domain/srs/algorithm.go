package srs

import (
	"math"
	"time"

	"github.com/phrazzld/kioku-api/internal/domain"
)

// calculateNewEaseFactor determines the new ease factor after a review.
//
// The ease factor governs how fast the interval grows once a card leaves the
// learning steps. SM-2 adjusts it from the grade with a fixed quadratic
// penalty: grades of 4 and 5 raise it, a grade of 3 lowers it slightly, and
// failing grades lower it sharply.
//
//	delta = 0.1 - (5 - grade) * (0.08 + (5 - grade) * 0.02)
//
// The result is clamped to params.EaseFloor. There is deliberately no upper
// cap: a consistently easy card may keep growing its ease. The returned value
// is rounded to four decimal places so repeated storage round-trips cannot
// drift the float.
func calculateNewEaseFactor(currentEase float64, grade int, params *Params) float64 {
	q := float64(domain.MaxGrade - grade)
	delta := 0.1 - q*(0.08+q*0.02)

	newEase := currentEase + delta
	if newEase < params.EaseFloor {
		newEase = params.EaseFloor
	}

	// Keep the stored float stable across round-trips.
	return math.Round(newEase*10000) / 10000
}

// calculateNextSchedule determines the new interval and repetition count.
//
// The decision follows SM-2's priority order:
//   - Any failing grade (< 3) resets the card: interval back to
//     params.FirstInterval, reps to 0.
//   - The first successful review schedules params.FirstInterval and sets
//     reps to 1.
//   - The second consecutive success schedules params.SecondInterval and
//     sets reps to 2.
//   - Every later success multiplies the previous interval by the new ease
//     factor, rounding up and flooring at one day.
//
// Returns the new interval in days and the new consecutive-success count.
func calculateNextSchedule(
	intervalDays int,
	reps int,
	grade int,
	newEase float64,
	params *Params,
) (int, int) {
	if grade < domain.PassingGrade {
		return params.FirstInterval, 0
	}

	switch reps {
	case 0:
		return params.FirstInterval, 1
	case 1:
		return params.SecondInterval, 2
	}

	next := int(math.Ceil(float64(intervalDays) * newEase))
	if next < 1 {
		next = 1
	}
	return next, reps + 1
}

// calculateNextCard applies one graded review and returns the card's next
// state. The input card is never modified; a copy is updated and returned,
// following the immutable-update pattern so callers can diff old and new
// state and a failed persist leaves nothing half-mutated.
//
// Exactly five fields change: EaseFactor, IntervalDays, Reps, DueDate
// (today + new interval, at UTC day granularity), and LastReviewedAt.
func calculateNextCard(card *domain.Card, grade int, now time.Time, params *Params) *domain.Card {
	next := *card

	next.EaseFactor = calculateNewEaseFactor(card.EaseFactor, grade, params)
	next.IntervalDays, next.Reps = calculateNextSchedule(
		card.IntervalDays,
		card.Reps,
		grade,
		next.EaseFactor,
		params,
	)
	next.DueDate = domain.StartOfDay(now).AddDate(0, 0, next.IntervalDays)
	next.LastReviewedAt = now.UTC()

	return &next
}
