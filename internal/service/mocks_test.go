package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/store"
)

// stubTxRunner executes the transaction function directly with a nil
// transaction. The store mocks ignore the transaction handle, so services
// can be exercised without a database.
type stubTxRunner struct {
	// calls counts how many transactions were started.
	calls int
}

func (r *stubTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	r.calls++
	return fn(ctx, nil)
}

// MockCardStore mocks the store.CardStore interface
type MockCardStore struct {
	mock.Mock
}

func (m *MockCardStore) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *MockCardStore) Update(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardStore) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *MockCardStore) ListDue(
	ctx context.Context,
	level domain.JLPTLevel,
	itemType domain.ItemType,
	dueBy time.Time,
	limit int,
) ([]*domain.Card, error) {
	args := m.Called(ctx, level, itemType, dueBy, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *MockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	m.Called(tx)
	return m
}

// MockReviewLogStore mocks the store.ReviewLogStore interface
type MockReviewLogStore struct {
	mock.Mock
}

func (m *MockReviewLogStore) Create(ctx context.Context, log *domain.ReviewLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockReviewLogStore) WithTx(tx *sql.Tx) store.ReviewLogStore {
	m.Called(tx)
	return m
}

// MockSessionStore mocks the store.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockSessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	m.Called(tx)
	return m
}

// MockCatalogStore mocks the store.CatalogStore interface
type MockCatalogStore struct {
	mock.Mock
}

func (m *MockCatalogStore) GetItem(
	ctx context.Context,
	itemType domain.ItemType,
	id int64,
) (domain.CatalogItem, error) {
	args := m.Called(ctx, itemType, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogStore) ListUnseen(
	ctx context.Context,
	itemType domain.ItemType,
	level domain.JLPTLevel,
	limit int,
) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, itemType, level, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogStore) CountByLevel(
	ctx context.Context,
	level domain.JLPTLevel,
) (int, error) {
	args := m.Called(ctx, level)
	return args.Int(0), args.Error(1)
}

// MockSettingsStore mocks the store.SettingsStore interface
type MockSettingsStore struct {
	mock.Mock
}

func (m *MockSettingsStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// MockProgressStore mocks the store.ProgressStore interface
type MockProgressStore struct {
	mock.Mock
}

func (m *MockProgressStore) LevelCardCounts(
	ctx context.Context,
	level domain.JLPTLevel,
	matureThreshold int,
	today time.Time,
) (*store.LevelCardCounts, error) {
	args := m.Called(ctx, level, matureThreshold, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.LevelCardCounts), args.Error(1)
}

func (m *MockProgressStore) ReviewDays(ctx context.Context) ([]time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockProgressStore) ReviewTotals(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockProgressStore) DueCountOn(ctx context.Context, day time.Time) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

// MockSessionService mocks the SessionService interface
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Open(ctx context.Context) (*domain.StudySession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockSessionService) Get(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockSessionService) Close(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudySession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudySession), args.Error(1)
}

func (m *MockSessionService) RecordOutcome(ctx context.Context, id uuid.UUID, grade int) error {
	args := m.Called(ctx, id, grade)
	return args.Error(0)
}

// Compile-time checks that the mocks satisfy their interfaces.
var (
	_ store.CardStore      = (*MockCardStore)(nil)
	_ store.ReviewLogStore = (*MockReviewLogStore)(nil)
	_ store.SessionStore   = (*MockSessionStore)(nil)
	_ store.CatalogStore   = (*MockCatalogStore)(nil)
	_ store.SettingsStore  = (*MockSettingsStore)(nil)
	_ store.ProgressStore  = (*MockProgressStore)(nil)
	_ SessionService       = (*MockSessionService)(nil)
	_ TxRunner             = (*stubTxRunner)(nil)
)
