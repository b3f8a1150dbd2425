package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/store"
)

func newSessionServiceForTest(sessions *MockSessionStore, now time.Time) SessionService {
	svc := NewSessionService(sessions, nil)
	svc.(*sessionServiceImpl).now = func() time.Time { return now }
	return svc
}

func TestSessionOpenStartsWithZeroCounters(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sessions := new(MockSessionStore)
	sessions.On("Create", mock.Anything, mock.AnythingOfType("*domain.StudySession")).Return(nil)

	svc := newSessionServiceForTest(sessions, now)

	session, err := svc.Open(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, session.StartedAt)
	assert.True(t, session.IsOpen())
	assert.Equal(t, 0, session.CardsReviewed)
	assert.Equal(t, 0, session.Correct)
	assert.Equal(t, 0, session.Incorrect)
}

func TestSessionCloseStampsEndTime(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)

	open := domain.NewStudySession(start)
	sessions := new(MockSessionStore)
	sessions.On("GetByID", mock.Anything, open.ID).Return(open, nil)
	sessions.On("Update", mock.Anything, open).Return(nil)

	svc := newSessionServiceForTest(sessions, end)

	closed, err := svc.Close(context.Background(), open.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	assert.Equal(t, end, closed.EndedAt)
}

func TestSessionCloseAlreadyClosedIsIdempotent(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	firstEnd := start.Add(10 * time.Minute)

	session := domain.NewStudySession(start)
	session.Close(firstEnd)

	sessions := new(MockSessionStore)
	sessions.On("GetByID", mock.Anything, session.ID).Return(session, nil)

	svc := newSessionServiceForTest(sessions, start.Add(time.Hour))

	closed, err := svc.Close(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, firstEnd, closed.EndedAt)

	sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSessionCloseMissingIsSilentNoOp(t *testing.T) {
	t.Parallel()

	missing := uuid.New()
	sessions := new(MockSessionStore)
	sessions.On("GetByID", mock.Anything, missing).Return(nil, store.ErrSessionNotFound)

	svc := newSessionServiceForTest(sessions, time.Now().UTC())

	closed, err := svc.Close(context.Background(), missing)
	assert.NoError(t, err)
	assert.Nil(t, closed)
}

func TestRecordOutcomeUpdatesCounters(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	session := domain.NewStudySession(start)

	sessions := new(MockSessionStore)
	sessions.On("GetByID", mock.Anything, session.ID).Return(session, nil)
	sessions.On("Update", mock.Anything, session).Return(nil)

	svc := newSessionServiceForTest(sessions, start)

	require.NoError(t, svc.RecordOutcome(context.Background(), session.ID, 4))
	require.NoError(t, svc.RecordOutcome(context.Background(), session.ID, 1))

	assert.Equal(t, 2, session.CardsReviewed)
	assert.Equal(t, 1, session.Correct)
	assert.Equal(t, 1, session.Incorrect)
}

func TestRecordOutcomeDropsForMissingOrClosedSession(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	closed := domain.NewStudySession(start)
	closed.Close(start.Add(time.Minute))

	missing := uuid.New()

	sessions := new(MockSessionStore)
	sessions.On("GetByID", mock.Anything, missing).Return(nil, store.ErrSessionNotFound)
	sessions.On("GetByID", mock.Anything, closed.ID).Return(closed, nil)

	svc := newSessionServiceForTest(sessions, start)

	// Both cases are silent no-ops: the review log already has the truth.
	assert.NoError(t, svc.RecordOutcome(context.Background(), missing, 4))
	assert.NoError(t, svc.RecordOutcome(context.Background(), closed.ID, 4))

	assert.Equal(t, 0, closed.CardsReviewed)
	sessions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSessionGet(t *testing.T) {
	t.Parallel()

	session := domain.NewStudySession(time.Now().UTC())
	sessions := new(MockSessionStore)
	sessions.On("GetByID", mock.Anything, session.ID).Return(session, nil)

	svc := NewSessionService(sessions, nil)

	got, err := svc.Get(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	missing := uuid.New()
	sessions.On("GetByID", mock.Anything, missing).Return(nil, store.ErrSessionNotFound)
	_, err = svc.Get(context.Background(), missing)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
