package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/domain/srs"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// ReviewService processes graded reviews. Each submission atomically
// persists the rescheduled card together with its review log entry; session
// counters are updated afterwards on a best-effort basis.
type ReviewService interface {
	// SubmitReview applies one graded review to the card. The card update
	// and the review log entry commit in the same transaction. A valid
	// sessionID attributes the outcome to that session after commit;
	// attribution failures never fail the review itself.
	//
	// Returns ErrCardNotFound if the card does not exist and
	// ErrInvalidGrade if grade is outside the 0-5 scale.
	SubmitReview(
		ctx context.Context,
		cardID uuid.UUID,
		grade int,
		sessionID uuid.NullUUID,
	) (*domain.Card, error)
}

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	txRunner   TxRunner
	cardStore  store.CardStore
	reviewLogs store.ReviewLogStore
	sessions   SessionService
	scheduler  srs.Service
	logger     *slog.Logger
	now        func() time.Time
}

// NewReviewService creates a new ReviewService. Panics if any required
// dependency is nil, as this indicates a programming error in application
// wiring.
func NewReviewService(
	txRunner TxRunner,
	cardStore store.CardStore,
	reviewLogs store.ReviewLogStore,
	sessions SessionService,
	scheduler srs.Service,
	log *slog.Logger,
) ReviewService {
	if txRunner == nil {
		panic("txRunner cannot be nil")
	}
	if cardStore == nil {
		panic("cardStore cannot be nil")
	}
	if reviewLogs == nil {
		panic("reviewLogs cannot be nil")
	}
	if sessions == nil {
		panic("sessions cannot be nil")
	}
	if scheduler == nil {
		panic("scheduler cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &reviewServiceImpl{
		txRunner:   txRunner,
		cardStore:  cardStore,
		reviewLogs: reviewLogs,
		sessions:   sessions,
		scheduler:  scheduler,
		logger:     log.With(slog.String("component", "review_service")),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SubmitReview implements the ReviewService interface.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	cardID uuid.UUID,
	grade int,
	sessionID uuid.NullUUID,
) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidGrade(grade) {
		return nil, ErrInvalidGrade
	}

	now := s.now()

	var updated *domain.Card
	err := s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		cards := s.cardStore.WithTx(tx)

		// The row lock serializes concurrent reviews of the same card so
		// each one computes from the state the previous one committed.
		card, err := cards.GetForUpdate(ctx, cardID)
		if err != nil {
			if store.IsNotFoundError(err) {
				return ErrCardNotFound
			}
			return fmt.Errorf("failed to get card for review: %w", err)
		}

		next, err := s.scheduler.Review(card, grade, now)
		if err != nil {
			if errors.Is(err, srs.ErrInvalidGrade) {
				return ErrInvalidGrade
			}
			return fmt.Errorf("failed to compute next schedule: %w", err)
		}

		if err := cards.Update(ctx, next); err != nil {
			return fmt.Errorf("failed to update card: %w", err)
		}

		entry, err := domain.NewReviewLog(card.ID, grade, sessionID, now)
		if err != nil {
			return fmt.Errorf("failed to create review log entry: %w", err)
		}
		if err := s.reviewLogs.WithTx(tx).Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to append review log: %w", err)
		}

		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Session attribution happens outside the transaction: the review is
	// already durable, and a session counter glitch must not undo it.
	if sessionID.Valid {
		if err := s.sessions.RecordOutcome(ctx, sessionID.UUID, grade); err != nil {
			log.Warn("failed to record review outcome on session",
				slog.String("session_id", sessionID.UUID.String()),
				slog.String("card_id", cardID.String()),
				slog.String("error", err.Error()))
		}
	}

	log.Debug("review submitted",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", grade),
		slog.Int("interval_days", updated.IntervalDays),
		slog.Int("reps", updated.Reps))

	return updated, nil
}
