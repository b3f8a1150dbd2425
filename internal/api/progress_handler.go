package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/kioku-api/internal/api/shared"
	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/service"
)

// ProgressHandler handles learner statistics HTTP requests.
type ProgressHandler struct {
	progress service.ProgressService
	logger   *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler. Panics if progress is
// nil, as this indicates a programming error in application wiring.
func NewProgressHandler(progress service.ProgressService, log *slog.Logger) *ProgressHandler {
	if progress == nil {
		panic("progress cannot be nil for ProgressHandler")
	}
	if log == nil {
		log = slog.Default()
	}
	return &ProgressHandler{
		progress: progress,
		logger:   log.With(slog.String("component", "progress_handler")),
	}
}

// GetProgress handles GET /progress requests. Without a level query
// parameter it returns the full snapshot; with one it returns just that
// level's breakdown.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if raw := r.URL.Query().Get("level"); raw != "" {
		stats, err := h.progress.LevelStats(r.Context(), domain.JLPTLevel(raw))
		if err != nil {
			shared.RespondWithErrorAndLog(w, r,
				MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, LevelStatsResponse{
			Level:    string(stats.Level),
			Total:    stats.Total,
			New:      stats.New,
			Young:    stats.Young,
			Mature:   stats.Mature,
			DueToday: stats.DueToday,
		})
		return
	}

	overview, err := h.progress.Overview(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("progress snapshot computed",
		slog.Int("streak_days", overview.StreakDays),
		slog.Int("total_reviews", overview.TotalReviews))
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(overview))
}
