package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// SessionService manages study sessions. Sessions are a convenience
// aggregation over reviews: several may be open at once, and losing a
// counter update never loses the underlying review.
type SessionService interface {
	// Open starts a new study session with zeroed counters.
	Open(ctx context.Context) (*domain.StudySession, error)

	// Get retrieves a session by ID.
	// Returns ErrSessionNotFound if the session does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// Close stamps the session's end time. Closing a session that is
	// already closed or does not exist is a silent no-op (nil session, nil
	// error for the missing case), so client retries and unconditional
	// teardown closes never fail. Session bookkeeping is advisory.
	Close(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// RecordOutcome increments the session's counters for one graded
	// review. Outcomes against a closed or missing session are silently
	// dropped; the review log remains the source of truth either way.
	RecordOutcome(ctx context.Context, id uuid.UUID, grade int) error
}

// sessionServiceImpl implements the SessionService interface.
type sessionServiceImpl struct {
	sessionStore store.SessionStore
	logger       *slog.Logger
	now          func() time.Time
}

// NewSessionService creates a new SessionService. Panics if sessionStore is
// nil, as this indicates a programming error in application wiring.
func NewSessionService(sessionStore store.SessionStore, log *slog.Logger) SessionService {
	if sessionStore == nil {
		panic("sessionStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &sessionServiceImpl{
		sessionStore: sessionStore,
		logger:       log.With(slog.String("component", "session_service")),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Open implements the SessionService interface.
func (s *sessionServiceImpl) Open(ctx context.Context) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session := domain.NewStudySession(s.now())
	if err := s.sessionStore.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create study session: %w", err)
	}

	log.Debug("study session opened", slog.String("session_id", session.ID.String()))
	return session, nil
}

// Get implements the SessionService interface.
func (s *sessionServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	session, err := s.sessionStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get study session: %w", err)
	}
	return session, nil
}

// Close implements the SessionService interface.
func (s *sessionServiceImpl) Close(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessionStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("close dropped: session not found",
				slog.String("session_id", id.String()))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get study session: %w", err)
	}

	if !session.IsOpen() {
		// Already closed: idempotent success with the stored end time.
		return session, nil
	}

	session.Close(s.now())
	if err := s.sessionStore.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to close study session: %w", err)
	}

	log.Debug("study session closed",
		slog.String("session_id", session.ID.String()),
		slog.Int("cards_reviewed", session.CardsReviewed))
	return session, nil
}

// RecordOutcome implements the SessionService interface.
func (s *sessionServiceImpl) RecordOutcome(ctx context.Context, id uuid.UUID, grade int) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessionStore.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("review outcome dropped: session not found",
				slog.String("session_id", id.String()))
			return nil
		}
		return fmt.Errorf("failed to get study session: %w", err)
	}

	if !session.IsOpen() {
		log.Debug("review outcome dropped: session already closed",
			slog.String("session_id", id.String()))
		return nil
	}

	session.RecordOutcome(grade)
	if err := s.sessionStore.Update(ctx, session); err != nil {
		return fmt.Errorf("failed to update study session counters: %w", err)
	}
	return nil
}
