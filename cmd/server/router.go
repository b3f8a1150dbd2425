package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/kioku-api/internal/api"
	apiMiddleware "github.com/phrazzld/kioku-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	cardHandler := api.NewCardHandler(
		app.selectionService,
		app.reviewService,
		app.config.SRS.DefaultDueLimit,
		app.logger,
	)
	sessionHandler := api.NewSessionHandler(app.sessionService, app.logger)
	progressHandler := api.NewProgressHandler(app.progressService, app.logger)
	settingsHandler := api.NewSettingsHandler(app.settingsService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/cards/due", cardHandler.GetDueCards)
		r.Get("/cards/new", cardHandler.GetNewCards)
		r.Post("/cards/review", cardHandler.SubmitReview)

		r.Post("/cards/sessions", sessionHandler.CreateSession)
		r.Get("/cards/sessions/{id}", sessionHandler.GetSession)
		r.Patch("/cards/sessions/{id}", sessionHandler.CloseSession)

		r.Get("/progress", progressHandler.GetProgress)

		r.Get("/settings/{key}", settingsHandler.GetSetting)
		r.Put("/settings/{key}", settingsHandler.PutSetting)
	})

	r.Get("/health", app.healthCheck)

	return r
}

// healthCheck reports whether the service and its database are reachable.
func (app *application) healthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Error("health check database ping failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("failed to write health check response", "error", err)
	}
}
