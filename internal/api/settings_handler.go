package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/kioku-api/internal/api/shared"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/service"
)

// SettingsHandler handles settings HTTP requests.
type SettingsHandler struct {
	settings service.SettingsService
	logger   *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler. Panics if settings is
// nil, as this indicates a programming error in application wiring.
func NewSettingsHandler(settings service.SettingsService, log *slog.Logger) *SettingsHandler {
	if settings == nil {
		panic("settings cannot be nil for SettingsHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &SettingsHandler{
		settings: settings,
		logger:   log.With(slog.String("component", "settings_handler")),
	}
}

// GetSetting handles GET /settings/{key} requests.
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "key is required")
		return
	}

	value, err := h.settings.Get(r.Context(), key)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SettingResponse{Key: key, Value: value})
}

// PutSetting handles PUT /settings/{key} requests. The value is a raw JSON
// document; known keys are type-checked before being stored.
func (h *SettingsHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	key := chi.URLParam(r, "key")
	if key == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "key is required")
		return
	}

	var req SettingRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "value is required")
		return
	}

	if err := h.settings.Set(r.Context(), key, req.Value); err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("setting written", slog.String("key", key))
	shared.RespondWithJSON(w, r, http.StatusOK, SettingResponse{Key: key, Value: req.Value})
}
