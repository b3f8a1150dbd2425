package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// PostgresReviewLogStore implements the store.ReviewLogStore interface.
// The review_log table is append-only; this store exposes no update or
// delete operations.
type PostgresReviewLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewLogStore creates a new PostgreSQL implementation of the
// ReviewLogStore interface. If logger is nil, the default logger is used.
func NewPostgresReviewLogStore(db store.DBTX, logger *slog.Logger) *PostgresReviewLogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_log_store")),
	}
}

// Ensure PostgresReviewLogStore implements store.ReviewLogStore interface
var _ store.ReviewLogStore = (*PostgresReviewLogStore)(nil)

// Create implements store.ReviewLogStore.Create.
// Returns store.ErrInvalidEntity if the referenced card or session does not
// exist (foreign key violation).
func (s *PostgresReviewLogStore) Create(ctx context.Context, reviewLog *domain.ReviewLog) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := reviewLog.Validate(); err != nil {
		log.Warn("review log validation failed during create",
			slog.String("error", err.Error()),
			slog.String("log_id", reviewLog.ID.String()))
		return err
	}

	query := `
		INSERT INTO review_log (id, card_id, session_id, grade, reviewed_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		reviewLog.ID,
		reviewLog.CardID,
		reviewLog.SessionID,
		reviewLog.Grade,
		reviewLog.ReviewedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during review log creation",
				slog.String("error", err.Error()),
				slog.String("card_id", reviewLog.CardID.String()))
			return fmt.Errorf("%w: referenced card or session not found",
				store.ErrInvalidEntity)
		}

		log.Error("failed to create review log",
			slog.String("error", err.Error()),
			slog.String("log_id", reviewLog.ID.String()))
		return MapError(err)
	}

	log.Debug("review log appended",
		slog.String("log_id", reviewLog.ID.String()),
		slog.String("card_id", reviewLog.CardID.String()),
		slog.Int("grade", reviewLog.Grade))
	return nil
}

// WithTx implements store.ReviewLogStore.WithTx.
func (s *PostgresReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	return &PostgresReviewLogStore{
		db:     tx,
		logger: s.logger,
	}
}
