package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// PostgresCatalogStore implements the store.CatalogStore interface. The
// vocab and kanji tables are seeded externally and read-only here.
type PostgresCatalogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCatalogStore creates a new PostgreSQL implementation of the
// CatalogStore interface. If logger is nil, the default logger is used.
func NewPostgresCatalogStore(db store.DBTX, logger *slog.Logger) *PostgresCatalogStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCatalogStore{
		db:     db,
		logger: logger.With(slog.String("component", "catalog_store")),
	}
}

// Ensure PostgresCatalogStore implements store.CatalogStore interface
var _ store.CatalogStore = (*PostgresCatalogStore)(nil)

const vocabColumns = `id, word, reading, meaning, part_of_speech, jlpt_level, COALESCE(example_jp, ''), COALESCE(example_en, '')`

// "character" must stay quoted: it collides with the SQL type name.
const kanjiColumns = `id, "character", on_yomi, kun_yomi, meanings, stroke_count, jlpt_level, COALESCE(freq_rank, 0), COALESCE(example_word, ''), COALESCE(example_sentence, '')`

func scanVocab(row interface{ Scan(dest ...any) error }) (*domain.Vocab, error) {
	var v domain.Vocab
	err := row.Scan(
		&v.ID,
		&v.Word,
		&v.Reading,
		&v.Meaning,
		&v.PartOfSpeech,
		&v.JLPTLevel,
		&v.ExampleJP,
		&v.ExampleEN,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanKanji(row interface{ Scan(dest ...any) error }) (*domain.Kanji, error) {
	var k domain.Kanji
	var onYomi, kunYomi, meanings []byte

	err := row.Scan(
		&k.ID,
		&k.Character,
		&onYomi,
		&kunYomi,
		&meanings,
		&k.StrokeCount,
		&k.JLPTLevel,
		&k.FreqRank,
		&k.ExampleWord,
		&k.ExampleSentence,
	)
	if err != nil {
		return nil, err
	}

	// Readings and meanings live in JSONB array columns.
	if err := json.Unmarshal(onYomi, &k.OnYomi); err != nil {
		return nil, fmt.Errorf("failed to decode on_yomi: %w", err)
	}
	if err := json.Unmarshal(kunYomi, &k.KunYomi); err != nil {
		return nil, fmt.Errorf("failed to decode kun_yomi: %w", err)
	}
	if err := json.Unmarshal(meanings, &k.Meanings); err != nil {
		return nil, fmt.Errorf("failed to decode meanings: %w", err)
	}

	return &k, nil
}

// GetItem implements store.CatalogStore.GetItem.
// Returns store.ErrItemNotFound if the item does not exist.
func (s *PostgresCatalogStore) GetItem(
	ctx context.Context,
	itemType domain.ItemType,
	id int64,
) (domain.CatalogItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var item domain.CatalogItem
	var err error

	switch itemType {
	case domain.ItemTypeVocab:
		query := `SELECT ` + vocabColumns + ` FROM vocab WHERE id = $1`
		item, err = scanVocab(s.db.QueryRowContext(ctx, query, id))
	case domain.ItemTypeKanji:
		query := `SELECT ` + kanjiColumns + ` FROM kanji WHERE id = $1`
		item, err = scanKanji(s.db.QueryRowContext(ctx, query, id))
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemType, itemType)
	}

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s/%d", store.ErrItemNotFound, itemType, id)
		}
		log.Error("failed to get catalog item",
			slog.String("error", err.Error()),
			slog.String("item_type", string(itemType)),
			slog.Int64("item_id", id))
		return nil, MapError(err)
	}

	return item, nil
}

// ListUnseen implements store.CatalogStore.ListUnseen. Items with no card
// row yet are returned in item-ID order so repeated queries are
// deterministic.
func (s *PostgresCatalogStore) ListUnseen(
	ctx context.Context,
	itemType domain.ItemType,
	level domain.JLPTLevel,
	limit int,
) ([]domain.CatalogItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var query string
	switch itemType {
	case domain.ItemTypeVocab:
		query = `
			SELECT ` + vocabColumns + `
			FROM vocab v
			WHERE v.jlpt_level = $1
			  AND NOT EXISTS (
			      SELECT 1 FROM srs_cards c
			      WHERE c.item_id = v.id AND c.item_type = 'vocab'
			  )
			ORDER BY v.id ASC
			LIMIT $2
		`
	case domain.ItemTypeKanji:
		query = `
			SELECT ` + kanjiColumns + `
			FROM kanji k
			WHERE k.jlpt_level = $1
			  AND NOT EXISTS (
			      SELECT 1 FROM srs_cards c
			      WHERE c.item_id = k.id AND c.item_type = 'kanji'
			  )
			ORDER BY k.id ASC
			LIMIT $2
		`
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidItemType, itemType)
	}

	rows, err := s.db.QueryContext(ctx, query, level, limit)
	if err != nil {
		log.Error("failed to list unseen catalog items",
			slog.String("error", err.Error()),
			slog.String("item_type", string(itemType)),
			slog.String("level", string(level)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []domain.CatalogItem
	for rows.Next() {
		var item domain.CatalogItem
		if itemType == domain.ItemTypeVocab {
			item, err = scanVocab(rows)
		} else {
			item, err = scanKanji(rows)
		}
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// CountByLevel implements store.CatalogStore.CountByLevel. Counts both
// vocab and kanji items at the level.
func (s *PostgresCatalogStore) CountByLevel(ctx context.Context, level domain.JLPTLevel) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT (SELECT COUNT(*) FROM vocab WHERE jlpt_level = $1)
		     + (SELECT COUNT(*) FROM kanji WHERE jlpt_level = $1)
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, level).Scan(&count); err != nil {
		log.Error("failed to count catalog items by level",
			slog.String("error", err.Error()),
			slog.String("level", string(level)))
		return 0, MapError(err)
	}

	return count, nil
}
