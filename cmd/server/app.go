package main

import (
	"database/sql"
	"log/slog"

	"github.com/phrazzld/kioku-api/internal/config"
	"github.com/phrazzld/kioku-api/internal/domain/srs"
	"github.com/phrazzld/kioku-api/internal/platform/postgres"
	"github.com/phrazzld/kioku-api/internal/service"
)

// application holds the shared dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	selectionService service.SelectionService
	reviewService    service.ReviewService
	sessionService   service.SessionService
	progressService  service.ProgressService
	settingsService  service.SettingsService
}

// newApplication builds the store and service graph on top of the database
// handle. Construction order follows the dependency direction: stores,
// then the scheduler, then services.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) *application {
	cardStore := postgres.NewPostgresCardStore(db, log)
	reviewLogStore := postgres.NewPostgresReviewLogStore(db, log)
	sessionStore := postgres.NewPostgresSessionStore(db, log)
	catalogStore := postgres.NewPostgresCatalogStore(db, log)
	settingsStore := postgres.NewPostgresSettingsStore(db, log)
	progressStore := postgres.NewPostgresProgressStore(db, log)

	scheduler := srs.NewDefaultService()
	txRunner := service.NewTxRunner(db)

	sessionService := service.NewSessionService(sessionStore, log)

	return &application{
		config: cfg,
		logger: log,
		db:     db,

		selectionService: service.NewSelectionService(
			txRunner, cardStore, catalogStore, settingsStore,
			cfg.SRS.NewCardsPerDay, log),
		reviewService: service.NewReviewService(
			txRunner, cardStore, reviewLogStore, sessionService, scheduler, log),
		sessionService:  sessionService,
		progressService: service.NewProgressService(progressStore, catalogStore, scheduler, log),
		settingsService: service.NewSettingsService(settingsStore, log),
	}
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
