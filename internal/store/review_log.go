package store

import (
	"context"
	"database/sql"

	"github.com/phrazzld/kioku-api/internal/domain"
)

// ReviewLogStore defines the interface for the append-only review history.
// Rows are only ever inserted; there are no update or delete operations by
// design.
type ReviewLogStore interface {
	// Create appends one review log entry. It handles domain validation
	// internally. Returns ErrInvalidEntity if the referenced card or session
	// does not exist (foreign key violation).
	Create(ctx context.Context, log *domain.ReviewLog) error

	// WithTx returns a new ReviewLogStore instance that uses the provided
	// transaction, so the append can share the card-update transaction.
	WithTx(tx *sql.Tx) ReviewLogStore
}
