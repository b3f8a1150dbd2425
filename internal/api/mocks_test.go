package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/service"
)

// MockSelectionService mocks the service.SelectionService interface
type MockSelectionService struct {
	mock.Mock
}

func (m *MockSelectionService) DueCards(
	ctx context.Context,
	level domain.JLPTLevel,
	itemType domain.ItemType,
	limit int,
) ([]service.CardWithItem, error) {
	args := m.Called(ctx, level, itemType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CardWithItem), args.Error(1)
}

func (m *MockSelectionService) NewCards(
	ctx context.Context,
	level domain.JLPTLevel,
	itemType domain.ItemType,
	limit int,
) ([]service.CardWithItem, error) {
	args := m.Called(ctx, level, itemType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.CardWithItem), args.Error(1)
}

// MockReviewService mocks the service.ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SubmitReview(
	ctx context.Context,
	cardID uuid.UUID,
	grade int,
	sessionID uuid.NullUUID,
) (*domain.Card, error) {
	args := m.Called(ctx, cardID, grade, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

// MockSessionService mocks the service.SessionService interface
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

// MockProgressService mocks the service.ProgressService interface
type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) LevelStats(
	ctx context.Context,
	level domain.JLPTLevel,
) (*service.LevelStats, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LevelStats), args.Error(1)
}

func (m *MockProgressService) StreakDays(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockProgressService) WeeklyForecast(
	ctx context.Context,
) ([]service.ForecastDay, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.ForecastDay), args.Error(1)
}

func (m *MockProgressService) Accuracy(ctx context.Context) (float64, int, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockProgressService) Overview(ctx context.Context) (*service.Progress, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Progress), args.Error(1)
}

// MockSettingsService mocks the service.SettingsService interface
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsService) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Compile-time checks that the mocks satisfy their interfaces.
var (
	_ service.SelectionService = (*MockSelectionService)(nil)
	_ service.ReviewService    = (*MockReviewService)(nil)
	_ service.SessionService   = (*MockSessionService)(nil)
	_ service.ProgressService  = (*MockProgressService)(nil)
	_ service.SettingsService  = (*MockSettingsService)(nil)
)
