package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// CardWithItem pairs a scheduling card with the catalog item it tracks, so
// callers get the study material together with the schedule in one shape.
type CardWithItem struct {
	Card *domain.Card
	Item domain.CatalogItem
}

// SelectionService decides which cards a learner studies next: due cards
// ordered most overdue first, and brand-new cards subject to the daily
// introduction cap.
type SelectionService interface {
	// DueCards returns up to limit cards at the given level and kind whose
	// due date has arrived, most overdue first. Reading due cards never
	// mutates scheduling state.
	DueCards(
		ctx context.Context,
		level domain.JLPTLevel,
		itemType domain.ItemType,
		limit int,
	) ([]CardWithItem, error)

	// NewCards introduces up to limit previously unseen catalog items at
	// the given level and kind, creating a card row for each. The number
	// introduced is additionally bounded by the daily cap minus the cards
	// already created since UTC midnight; an exhausted cap yields an empty
	// result, not an error. All card rows for one call commit in a single
	// transaction.
	NewCards(
		ctx context.Context,
		level domain.JLPTLevel,
		itemType domain.ItemType,
		limit int,
	) ([]CardWithItem, error)
}

// selectionServiceImpl implements the SelectionService interface.
type selectionServiceImpl struct {
	txRunner   TxRunner
	cardStore  store.CardStore
	catalog    store.CatalogStore
	settings   store.SettingsStore
	defaultCap int
	logger     *slog.Logger
	now        func() time.Time
}

// NewSelectionService creates a new SelectionService. defaultCap is the
// daily introduction cap used when the settings store has no value for
// new_cards_per_day. Panics if any required dependency is nil, as this
// indicates a programming error in application wiring.
func NewSelectionService(
	txRunner TxRunner,
	cardStore store.CardStore,
	catalog store.CatalogStore,
	settings store.SettingsStore,
	defaultCap int,
	log *slog.Logger,
) SelectionService {
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if catalog == nil {
		panic("catalog cannot be nil")
	}
	if settings == nil {
		panic("settings cannot be nil")
	}
	if defaultCap < 0 {
		panic("defaultCap cannot be negative")
	}
	if log == nil {
		log = slog.Default()
	}
	return &selectionServiceImpl{
		txRunner:   txRunner,
		cardStore:  cardStore,
		catalog:    catalog,
		settings:   settings,
		defaultCap: defaultCap,
		logger:     log.With(slog.String("component", "selection_service")),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// DueCards implements the SelectionService interface.
func (s *selectionServiceImpl) DueCards(
	ctx context.Context,
	level domain.JLPTLevel,
	itemType domain.ItemType,
	limit int,
) ([]CardWithItem, error) {
	if err := validateSelection(level, itemType, limit); err != nil {
		return nil, err
	}

	now := s.now()
	cards, err := s.cardStore.ListDue(ctx, level, itemType, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due cards: %w", err)
	}

	return s.attachItems(ctx, cards)
}

// NewCards implements the SelectionService interface.
func (s *selectionServiceImpl) NewCards(
	ctx context.Context,
	level domain.JLPTLevel,
	itemType domain.ItemType,
	limit int,
) ([]CardWithItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateSelection(level, itemType, limit); err != nil {
		return nil, err
	}

	now := s.now()

	// The cap counts every card created since UTC midnight, across both
	// item kinds, so split requests cannot exceed it.
	dayCap := s.dailyCap(ctx)
	createdToday, err := s.cardStore.CountCreatedSince(ctx, domain.StartOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("failed to count cards created today: %w", err)
	}

	remaining := dayCap - createdToday
	if remaining < 0 {
		remaining = 0
	}
	effective := limit
	if remaining < effective {
		effective = remaining
	}
	if effective == 0 {
		log.Debug("daily introduction cap exhausted",
			slog.Int("cap", dayCap),
			slog.Int("created_today", createdToday))
		return []CardWithItem{}, nil
	}

	items, err := s.catalog.ListUnseen(ctx, itemType, level, effective)
	if err != nil {
		return nil, fmt.Errorf("failed to list unseen catalog items: %w", err)
	}
	if len(items) == 0 {
		return []CardWithItem{}, nil
	}

	result := make([]CardWithItem, 0, len(items))
	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)
		for _, item := range items {
			card, err := domain.NewCard(item.Type(), item.CatalogID(), now)
			if err != nil {
				return fmt.Errorf("failed to build card for item %d: %w",
					item.CatalogID(), err)
			}
			if err := cards.Create(ctx, card); err != nil {
				return fmt.Errorf("failed to create card for item %d: %w",
					item.CatalogID(), err)
			}
			result = append(result, CardWithItem{Card: card, Item: item})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug("introduced new cards",
		slog.String("level", string(level)),
		slog.String("item_type", string(itemType)),
		slog.Int("count", len(result)))
	return result, nil
}

// dailyCap reads the live introduction cap from the settings store, falling
// back to the configured default when the key is absent or malformed.
func (s *selectionServiceImpl) dailyCap(ctx context.Context) int {
	raw, err := s.settings.Get(ctx, store.SettingNewCardsPerDay)
	if err != nil {
		if !errors.Is(err, store.ErrSettingNotFound) {
			s.logger.Warn("failed to read daily cap setting, using default",
				slog.Int("default", s.defaultCap),
				slog.String("error", err.Error()))
		}
		return s.defaultCap
	}

	var value int
	if err := json.Unmarshal([]byte(raw), &value); err != nil || value < 0 {
		s.logger.Warn("malformed daily cap setting, using default",
			slog.String("value", raw),
			slog.Int("default", s.defaultCap))
		return s.defaultCap
	}
	return value
}

// attachItems resolves the catalog item backing each card.
func (s *selectionServiceImpl) attachItems(
	ctx context.Context,
	cards []*domain.Card,
) ([]CardWithItem, error) {
	result := make([]CardWithItem, 0, len(cards))
	for _, card := range cards {
		item, err := s.catalog.GetItem(ctx, card.ItemType, card.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve catalog item %s/%d: %w",
				card.ItemType, card.ItemID, err)
		}
		result = append(result, CardWithItem{Card: card, Item: item})
	}
	return result, nil
}

// validateSelection checks the arguments shared by the selection queries.
func validateSelection(level domain.JLPTLevel, itemType domain.ItemType, limit int) error {
	if !level.IsValid() {
		return ErrInvalidLevel
	}
	if !itemType.IsValid() {
		return ErrInvalidItemType
	}
	if limit <= 0 {
		return ErrInvalidLimit
	}
	return nil
}
