package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface using a
// PostgreSQL database as the storage backend.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the
// CardStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, the
// default logger is used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

const cardColumns = `id, item_type, item_id, ease_factor, interval_days, reps, due_date, last_reviewed, created_at`

// scanCard reads one card row. last_reviewed is nullable; a NULL scans to
// the zero time.
func scanCard(row interface{ Scan(dest ...any) error }) (*domain.Card, error) {
	var card domain.Card
	var lastReviewed sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.ItemType,
		&card.ItemID,
		&card.EaseFactor,
		&card.IntervalDays,
		&card.Reps,
		&card.DueDate,
		&lastReviewed,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		card.LastReviewedAt = lastReviewed.Time.UTC()
	}
	card.DueDate = domain.StartOfDay(card.DueDate)
	card.CreatedAt = card.CreatedAt.UTC()

	return &card, nil
}

// nullableTime converts a zero time to a SQL NULL.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// Create implements store.CardStore.Create.
// Returns store.ErrCardExists if a card already tracks the same item.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO srs_cards (` + cardColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.ItemType,
		card.ItemID,
		card.EaseFactor,
		card.IntervalDays,
		card.Reps,
		card.DueDate,
		nullableTime(card.LastReviewedAt),
		card.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate card for catalog item",
				slog.String("item_type", string(card.ItemType)),
				slog.Int64("item_id", card.ItemID))
			return fmt.Errorf("%w: %s/%d", store.ErrCardExists, card.ItemType, card.ItemID)
		}

		log.Error("failed to create card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("item_type", string(card.ItemType)),
		slog.Int64("item_id", card.ItemID))
	return nil
}

// GetByID implements store.CardStore.GetByID.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM srs_cards WHERE id = $1`
	return s.getOne(ctx, query, id)
}

// GetForUpdate implements store.CardStore.GetForUpdate. It takes a row-level
// lock so concurrent reviews of the same card serialize; call it inside a
// transaction.
func (s *PostgresCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	query := `SELECT ` + cardColumns + ` FROM srs_cards WHERE id = $1 FOR UPDATE`
	return s.getOne(ctx, query, id)
}

func (s *PostgresCardStore) getOne(ctx context.Context, query string, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := scanCard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", store.ErrCardNotFound, id)
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, MapError(err)
	}

	return card, nil
}

// Update implements store.CardStore.Update. Only the scheduling fields are
// written; id, item reference, and created_at are immutable.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		UPDATE srs_cards
		SET ease_factor = $2, interval_days = $3, reps = $4, due_date = $5, last_reviewed = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.EaseFactor,
		card.IntervalDays,
		card.Reps,
		card.DueDate,
		nullableTime(card.LastReviewedAt),
	)
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "card"); err != nil {
		return err
	}

	log.Debug("card updated",
		slog.String("card_id", card.ID.String()),
		slog.Int("interval_days", card.IntervalDays),
		slog.Int("reps", card.Reps))
	return nil
}

// CountCreatedSince implements store.CardStore.CountCreatedSince.
func (s *PostgresCardStore) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	query := `SELECT COUNT(*) FROM srs_cards WHERE created_at >= $1`
	if err := s.db.QueryRowContext(ctx, query, since).Scan(&count); err != nil {
		log.Error("failed to count cards created since",
			slog.String("error", err.Error()),
			slog.Time("since", since))
		return 0, MapError(err)
	}

	return count, nil
}

// ListDue implements store.CardStore.ListDue. Cards are joined against the
// catalog table for the requested kind so the level filter applies, ordered
// most overdue first.
func (s *PostgresCardStore) ListDue(
	ctx context.Context,
	level domain.JLPTLevel,
	itemType domain.ItemType,
	dueBy time.Time,
	limit int,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	catalogTable, err := catalogTableFor(itemType)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.item_type, c.item_id, c.ease_factor, c.interval_days,
		       c.reps, c.due_date, c.last_reviewed, c.created_at
		FROM srs_cards c
		JOIN %s i ON c.item_id = i.id
		WHERE c.item_type = $1
		  AND i.jlpt_level = $2
		  AND c.due_date <= $3
		ORDER BY c.due_date ASC
		LIMIT $4
	`, catalogTable)

	rows, err := s.db.QueryContext(ctx, query, itemType, level, domain.StartOfDay(dueBy), limit)
	if err != nil {
		log.Error("failed to list due cards",
			slog.String("error", err.Error()),
			slog.String("level", string(level)),
			slog.String("item_type", string(itemType)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}

// WithTx implements store.CardStore.WithTx.
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// catalogTableFor maps an item type to its catalog table name. The table
// name is interpolated into SQL, so it must come from this fixed mapping and
// never from user input.
func catalogTableFor(itemType domain.ItemType) (string, error) {
	switch itemType {
	case domain.ItemTypeVocab:
		return "vocab", nil
	case domain.ItemTypeKanji:
		return "kanji", nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidItemType, itemType)
	}
}
