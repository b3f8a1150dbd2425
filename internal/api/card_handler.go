// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/phrazzld/kioku-api/internal/api/shared"
	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/service"
)

// CardHandler handles card-related HTTP requests: fetching due and new
// cards and submitting graded reviews.
type CardHandler struct {
	selection    service.SelectionService
	reviews      service.ReviewService
	defaultLimit int
	logger       *slog.Logger
}

// NewCardHandler creates a new CardHandler. defaultLimit is used when the
// client omits the limit query parameter. Panics if a required dependency
// is nil, as this indicates a programming error in application wiring.
func NewCardHandler(
	selection service.SelectionService,
	reviews service.ReviewService,
	defaultLimit int,
	log *slog.Logger,
) *CardHandler {
	if selection == nil {
		panic("selection cannot be nil for CardHandler")
	}
	if reviews == nil {
		panic("reviews cannot be nil for CardHandler")
	}
	if defaultLimit < 1 {
		panic("defaultLimit must be positive for CardHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &CardHandler{
		selection:    selection,
		reviews:      reviews,
		defaultLimit: defaultLimit,
		logger:       log.With(slog.String("component", "card_handler")),
	}
}

// GetDueCards handles GET /cards/due requests. It returns the cards whose
// due date has arrived for the requested level and item kind, most overdue
// first, paired with their catalog items.
func (h *CardHandler) GetDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level, itemType, limit, ok := h.selectionParams(w, r)
	if !ok {
		return
	}

	pairs, err := h.selection.DueCards(r.Context(), level, itemType, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("due cards retrieved",
		slog.String("level", string(level)),
		slog.String("item_type", string(itemType)),
		slog.Int("count", len(pairs)))
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(pairs))
}

// GetNewCards handles GET /cards/new requests. It introduces previously
// unseen catalog items as cards, bounded by the daily introduction cap, and
// returns the created cards. An exhausted cap yields an empty list.
func (h *CardHandler) GetNewCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	level, itemType, limit, ok := h.selectionParams(w, r)
	if !ok {
		return
	}

	pairs, err := h.selection.NewCards(r.Context(), level, itemType, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("new cards introduced",
		slog.String("level", string(level)),
		slog.String("item_type", string(itemType)),
		slog.Int("count", len(pairs)))
	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(pairs))
}

// SubmitReview handles POST /cards/review requests. It applies one graded
// review and returns the rescheduled card.
func (h *CardHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid review request")
		return
	}

	cardID, err := uuid.Parse(req.CardID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "card_id must be a valid UUID")
		return
	}

	var sessionID uuid.NullUUID
	if req.SessionID != "" {
		id, err := uuid.Parse(req.SessionID)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest,
				"session_id must be a valid UUID")
			return
		}
		sessionID = uuid.NullUUID{UUID: id, Valid: true}
	}

	card, err := h.reviews.SubmitReview(r.Context(), cardID, *req.Grade, sessionID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("review submitted",
		slog.String("card_id", cardID.String()),
		slog.Int("grade", *req.Grade))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(card, nil))
}

// selectionParams parses the query parameters shared by the due and new
// card endpoints, writing the error response itself on failure.
func (h *CardHandler) selectionParams(
	w http.ResponseWriter,
	r *http.Request,
) (level domain.JLPTLevel, itemType domain.ItemType, limit int, ok bool) {
	level, err := getQueryLevel(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return "", "", 0, false
	}
	itemType, err = getQueryItemType(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return "", "", 0, false
	}
	limit, err = getQueryLimit(r, h.defaultLimit)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return "", "", 0, false
	}
	return level, itemType, limit, true
}
