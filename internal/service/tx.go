package service

import (
	"context"
	"database/sql"

	"github.com/phrazzld/kioku-api/internal/store"
)

// TxRunner abstracts transaction execution so services can be tested
// without a live database. The production implementation delegates to
// store.RunInTransaction.
type TxRunner interface {
	// RunInTransaction executes fn within a transaction, committing on nil
	// and rolling back on error or panic.
	RunInTransaction(ctx context.Context, fn store.TxFn) error
}

// dbTxRunner is the production TxRunner backed by a *sql.DB.
type dbTxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner that opens transactions on the given
// database handle. Panics if db is nil, as this indicates a programming
// error in application wiring.
func NewTxRunner(db *sql.DB) TxRunner {
	if db == nil {
		panic("db cannot be nil")
	}
	return &dbTxRunner{db: db}
}

// RunInTransaction implements the TxRunner interface.
func (r *dbTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	return store.RunInTransaction(ctx, r.db, fn)
}
