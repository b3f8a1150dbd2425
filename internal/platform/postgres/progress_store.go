package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface. All
// statistics are recomputed from the srs_cards and review_log tables on
// demand; nothing here mutates state.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, the default logger is used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// LevelCardCounts implements store.ProgressStore.LevelCardCounts. One pass
// over the cards at the level yields all three counts.
func (s *PostgresProgressStore) LevelCardCounts(
	ctx context.Context,
	level domain.JLPTLevel,
	matureThreshold int,
	today time.Time,
) (*store.LevelCardCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE c.interval_days < $2),
		       COUNT(*) FILTER (WHERE c.due_date <= $3)
		FROM srs_cards c
		LEFT JOIN vocab v ON c.item_type = 'vocab' AND c.item_id = v.id
		LEFT JOIN kanji k ON c.item_type = 'kanji' AND c.item_id = k.id
		WHERE v.jlpt_level = $1 OR k.jlpt_level = $1
	`

	var counts store.LevelCardCounts
	err := s.db.QueryRowContext(ctx, query, level, matureThreshold, domain.StartOfDay(today)).
		Scan(&counts.Seen, &counts.Young, &counts.DueToday)
	if err != nil {
		log.Error("failed to count cards for level",
			slog.String("error", err.Error()),
			slog.String("level", string(level)))
		return nil, MapError(err)
	}

	return &counts, nil
}

// ReviewDays implements store.ProgressStore.ReviewDays. Days are grouped in
// UTC to match the rest of the day arithmetic.
func (s *PostgresProgressStore) ReviewDays(ctx context.Context) ([]time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DATE(reviewed_at AT TIME ZONE 'UTC') AS day
		FROM review_log
		GROUP BY day
		ORDER BY day DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query review days",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, MapError(err)
		}
		days = append(days, domain.StartOfDay(day))
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return days, nil
}

// ReviewTotals implements store.ProgressStore.ReviewTotals.
func (s *PostgresProgressStore) ReviewTotals(ctx context.Context) (int, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE grade >= $1)
		FROM review_log
	`

	var total, correct int
	if err := s.db.QueryRowContext(ctx, query, domain.PassingGrade).Scan(&total, &correct); err != nil {
		log.Error("failed to query review totals",
			slog.String("error", err.Error()))
		return 0, 0, MapError(err)
	}

	return total, correct, nil
}

// DueCountOn implements store.ProgressStore.DueCountOn.
func (s *PostgresProgressStore) DueCountOn(ctx context.Context, day time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	query := `SELECT COUNT(*) FROM srs_cards WHERE due_date = $1`
	if err := s.db.QueryRowContext(ctx, query, domain.StartOfDay(day)).Scan(&count); err != nil {
		log.Error("failed to count due cards for day",
			slog.String("error", err.Error()),
			slog.Time("day", day))
		return 0, MapError(err)
	}

	return count, nil
}
