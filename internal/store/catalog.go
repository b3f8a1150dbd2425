package store

import (
	"context"

	"github.com/phrazzld/kioku-api/internal/domain"
)

// CatalogStore defines the read-only interface to the vocabulary and kanji
// catalog. The catalog is seeded externally; the scheduling core only reads
// it, which keeps the dependency direction one-way (scheduling depends on
// the catalog, never the reverse).
type CatalogStore interface {
	// GetItem retrieves one catalog item by kind and ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetItem(ctx context.Context, itemType domain.ItemType, id int64) (domain.CatalogItem, error)

	// ListUnseen returns catalog items at the given level and kind that have
	// no card row yet, ordered by item ID ascending (stable and
	// deterministic), capped at limit.
	ListUnseen(
		ctx context.Context,
		itemType domain.ItemType,
		level domain.JLPTLevel,
		limit int,
	) ([]domain.CatalogItem, error)

	// CountByLevel counts catalog items (both kinds) at the given level.
	CountByLevel(ctx context.Context, level domain.JLPTLevel) (int, error)
}
