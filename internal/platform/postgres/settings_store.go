package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// PostgresSettingsStore implements the store.SettingsStore interface over
// the flat meta key/value table. Values are JSON-encoded strings.
type PostgresSettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. If logger is nil, the default logger is used.
func NewPostgresSettingsStore(db store.DBTX, logger *slog.Logger) *PostgresSettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

// Ensure PostgresSettingsStore implements store.SettingsStore interface
var _ store.SettingsStore = (*PostgresSettingsStore)(nil)

// Get implements store.SettingsStore.Get.
// Returns store.ErrSettingNotFound if the key does not exist.
func (s *PostgresSettingsStore) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var value string
	query := `SELECT value FROM meta WHERE key = $1`
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("%w: %s", store.ErrSettingNotFound, key)
		}
		log.Error("failed to get setting",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return "", MapError(err)
	}

	return value, nil
}

// Set implements store.SettingsStore.Set, inserting or replacing the key.
func (s *PostgresSettingsStore) Set(ctx context.Context, key, value string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO meta (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		log.Error("failed to set setting",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return MapError(err)
	}

	log.Debug("setting updated", slog.String("key", key))
	return nil
}
