package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/domain/srs"
	"github.com/phrazzld/kioku-api/internal/store"
)

// LevelStats summarizes the learner's standing at one JLPT level. New,
// young, and mature partition the level's catalog: an item is new until a
// card exists for it, young while the card's interval is below the maturity
// threshold, and mature from the threshold on.
type LevelStats struct {
	Level    domain.JLPTLevel
	Total    int // catalog items at this level
	New      int
	Young    int
	Mature   int
	DueToday int
}

// ForecastDay is one entry of the weekly forecast: how many cards fall due
// on exactly that UTC day.
type ForecastDay struct {
	Date  time.Time
	Count int
}

// Progress is the full learner-facing statistics snapshot.
type Progress struct {
	StreakDays      int
	TotalReviews    int
	AllTimeAccuracy float64
	Levels          []LevelStats
	WeeklyForecast  []ForecastDay
}

// ProgressService computes learner statistics. Every figure is recomputed
// from the persisted card and review log rows on each call; nothing here is
// cached, so the numbers can never drift from the data.
type ProgressService interface {
	// LevelStats computes the new/young/mature/due breakdown for one level.
	// Returns ErrInvalidLevel for an unknown level.
	LevelStats(ctx context.Context, level domain.JLPTLevel) (*LevelStats, error)

	// StreakDays counts consecutive UTC days with at least one review,
	// walking backwards from today. A day with no review yet means zero,
	// regardless of history.
	StreakDays(ctx context.Context) (int, error)

	// WeeklyForecast returns exactly seven entries, today first, each with
	// the count of cards due on that day alone.
	WeeklyForecast(ctx context.Context) ([]ForecastDay, error)

	// Accuracy returns the all-time fraction of reviews graded 3 or above,
	// together with the total review count. No reviews means 0.0, not an
	// error.
	Accuracy(ctx context.Context) (accuracy float64, total int, err error)

	// Overview assembles the complete snapshot: streak, accuracy, per-level
	// breakdowns for every JLPT level, and the weekly forecast.
	Overview(ctx context.Context) (*Progress, error)
}

// progressServiceImpl implements the ProgressService interface.
type progressServiceImpl struct {
	progress  store.ProgressStore
	catalog   store.CatalogStore
	scheduler srs.Service
	logger    *slog.Logger
	now       func() time.Time
}

// NewProgressService creates a new ProgressService. Panics if any required
// dependency is nil, as this indicates a programming error in application
// wiring.
func NewProgressService(
	progress store.ProgressStore,
	catalog store.CatalogStore,
	scheduler srs.Service,
	log *slog.Logger,
) ProgressService {
	if progress == nil {
		panic("progress cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &progressServiceImpl{
		progress:  progress,
		catalog:   catalog,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "progress_service")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// LevelStats implements the ProgressService interface.
func (s *progressServiceImpl) LevelStats(
	ctx context.Context,
	level domain.JLPTLevel,
) (*LevelStats, error) {
	if !level.IsValid() {
		return nil, ErrInvalidLevel
	}

	today := domain.StartOfDay(s.now())
	counts, err := s.progress.LevelCardCounts(ctx, level, s.scheduler.MatureThresholdDays(), today)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards for level %s: %w", level, err)
	}
	total, err := s.catalog.CountByLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("failed to count catalog items for level %s: %w", level, err)
	}

	newCount := total - counts.Seen
	if newCount < 0 {
		// Catalog rows can be removed after cards were created for them.
		newCount = 0
	}
	return &LevelStats{
		Level:    level,
		Total:    total,
		New:      newCount,
		Young:    counts.Young,
		Mature:   counts.Seen - counts.Young,
		DueToday: counts.DueToday,
	}, nil
}

// StreakDays implements the ProgressService interface.
func (s *progressServiceImpl) StreakDays(ctx context.Context) (int, error) {
	days, err := s.progress.ReviewDays(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list review days: %w", err)
	}
	return streakFrom(days, domain.StartOfDay(s.now())), nil
}

// WeeklyForecast implements the ProgressService interface.
func (s *progressServiceImpl) WeeklyForecast(ctx context.Context) ([]ForecastDay, error) {
	today := domain.StartOfDay(s.now())

	forecast := make([]ForecastDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i)
		count, err := s.progress.DueCountOn(ctx, day)
		if err != nil {
			return nil, fmt.Errorf("failed to count cards due on %s: %w",
				day.Format("2006-01-02"), err)
		}
		forecast = append(forecast, ForecastDay{Date: day, Count: count})
	}
	return forecast, nil
}

// Accuracy implements the ProgressService interface.
func (s *progressServiceImpl) Accuracy(ctx context.Context) (float64, int, error) {
	total, correct, err := s.progress.ReviewTotals(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read review totals: %w", err)
	}
	if total == 0 {
		return 0.0, 0, nil
	}
	accuracy := math.Round(float64(correct)/float64(total)*10000) / 10000
	return accuracy, total, nil
}

// Overview implements the ProgressService interface.
func (s *progressServiceImpl) Overview(ctx context.Context) (*Progress, error) {
	streak, err := s.StreakDays(ctx)
	if err != nil {
		return nil, err
	}

	accuracy, total, err := s.Accuracy(ctx)
	if err != nil {
		return nil, err
	}

	levels := make([]LevelStats, 0, len(domain.AllJLPTLevels))
	for _, level := range domain.AllJLPTLevels {
		stats, err := s.LevelStats(ctx, level)
		if err != nil {
			return nil, err
		}
		levels = append(levels, *stats)
	}

	forecast, err := s.WeeklyForecast(ctx)
	if err != nil {
		return nil, err
	}

	return &Progress{
		StreakDays:      streak,
		TotalReviews:    total,
		AllTimeAccuracy: accuracy,
		Levels:          levels,
		WeeklyForecast:  forecast,
	}, nil
}

// streakFrom counts consecutive days in days (normalized UTC midnights,
// most recent first) starting at today. The chain breaks on the first gap,
// and a missing today means no streak at all.
func streakFrom(days []time.Time, today time.Time) int {
	streak := 0
	expected := today
	for _, day := range days {
		if !day.Equal(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}
