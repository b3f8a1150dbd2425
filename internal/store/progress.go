package store

import (
	"context"
	"time"

	"github.com/phrazzld/kioku-api/internal/domain"
)

// LevelCardCounts summarizes the card rows for one JLPT level. "Seen" means
// a card row exists for the catalog item; young vs. mature splits on the
// interval threshold passed to the query.
type LevelCardCounts struct {
	Seen     int
	Young    int // interval_days below the maturity threshold
	DueToday int
}

// ProgressStore defines the read-only queries the statistics engine needs.
// Everything here is recomputed from persisted rows on each call; there are
// no cached counters to drift out of sync with the review log.
type ProgressStore interface {
	// LevelCardCounts returns seen/young/due counts for cards whose catalog
	// item is at the given level, splitting young from mature at
	// matureThreshold days and counting due as due_date <= today.
	LevelCardCounts(
		ctx context.Context,
		level domain.JLPTLevel,
		matureThreshold int,
		today time.Time,
	) (*LevelCardCounts, error)

	// ReviewDays returns the distinct UTC calendar days on which at least
	// one review was logged, in descending order.
	ReviewDays(ctx context.Context) ([]time.Time, error)

	// ReviewTotals returns the all-time count of logged reviews and how many
	// of them were correct (grade >= 3).
	ReviewTotals(ctx context.Context) (total int, correct int, err error)

	// DueCountOn counts cards whose due date equals the given day exactly
	// (not cumulative). Used for the weekly forecast.
	DueCountOn(ctx context.Context, day time.Time) (int, error)
}
