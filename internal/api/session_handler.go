package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kioku-api/internal/api/shared"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/service"
)

// SessionHandler handles study session HTTP requests.
type SessionHandler struct {
	sessions service.SessionService
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler. Panics if sessions is
// nil, as this indicates a programming error in application wiring.
func NewSessionHandler(sessions service.SessionService, log *slog.Logger) *SessionHandler {
	if sessions == nil {
		panic("sessions cannot be nil for SessionHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{
		sessions: sessions,
		logger:   log.With(slog.String("component", "session_handler")),
	}
}

// CreateSession handles POST /cards/sessions requests. It opens a new
// study session and returns it with zeroed counters.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	session, err := h.sessions.Open(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("session created", slog.String("session_id", session.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, sessionToResponse(session))
}

// CloseSession handles PATCH /cards/sessions/{id} requests. Closing an
// already-closed or unknown session still responds ok, since clients retry
// closes and session bookkeeping is advisory.
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessions.Close(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	resp := CloseSessionResponse{OK: true}
	if session != nil {
		s := sessionToResponse(session)
		resp.Session = &s
	}

	log.Debug("session close handled", slog.String("session_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GetSession handles GET /cards/sessions/{id} requests.
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessionToResponse(session))
}
