package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/kioku-api/internal/domain"
)

// CardStore defines the interface for card (memory record) persistence.
type CardStore interface {
	// Create saves a new card. It handles domain validation internally.
	// Returns ErrCardExists if a card already tracks the same
	// (item_type, item_id) pair.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID.
	// Returns ErrCardNotFound if the card does not exist.
	// NOTE: This method takes no row lock; do not use it when you plan to
	// update the row under concurrency.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// GetForUpdate retrieves a card with a row-level lock using
	// SELECT ... FOR UPDATE. Use inside a transaction when the row will be
	// updated, so concurrent reviews of the same card serialize.
	// Returns ErrCardNotFound if the card does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// Update modifies an existing card's scheduling state.
	// Returns ErrCardNotFound if the card does not exist.
	// Returns validation errors from the domain Card if data is invalid.
	Update(ctx context.Context, card *domain.Card) error

	// CountCreatedSince counts cards created at or after the given instant,
	// across all item types. Used to enforce the daily introduction cap.
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)

	// ListDue returns cards joined against catalog items at the given level
	// and item type whose due date is on or before dueBy, ordered most
	// overdue first, capped at limit.
	ListDue(
		ctx context.Context,
		level domain.JLPTLevel,
		itemType domain.ItemType,
		dueBy time.Time,
		limit int,
	) ([]*domain.Card, error)

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service via RunInTransaction).
	WithTx(tx *sql.Tx) CardStore
}
