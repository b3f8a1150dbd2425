package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/kioku-api/internal/domain"
	"github.com/phrazzld/kioku-api/internal/platform/logger"
	"github.com/phrazzld/kioku-api/internal/store"
)

// SettingsService exposes the flat key/value settings. Values are raw JSON
// documents; known keys get type checks on write so a bad value cannot
// silently disable the daily cap.
type SettingsService interface {
	// Get retrieves the raw JSON value for a key.
	// Returns ErrSettingNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set writes the raw JSON value for a key, inserting or replacing.
	// Returns ErrInvalidSetting if the value is not valid JSON or fails
	// the type check for a known key.
	Set(ctx context.Context, key, value string) error
}

// settingsServiceImpl implements the SettingsService interface.
type settingsServiceImpl struct {
	settings store.SettingsStore
	logger   *slog.Logger
}

// NewSettingsService creates a new SettingsService. Panics if settings is
// nil, as this indicates a programming error in application wiring.
func NewSettingsService(settings store.SettingsStore, log *slog.Logger) SettingsService {
	if settings == nil {
		panic("settings cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &settingsServiceImpl{
		settings: settings,
		logger:   log.With(slog.String("component", "settings_service")),
	}
}

// Get implements the SettingsService interface.
func (s *settingsServiceImpl) Get(ctx context.Context, key string) (string, error) {
	value, err := s.settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrSettingNotFound) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, nil
}

// Set implements the SettingsService interface.
func (s *settingsServiceImpl) Set(ctx context.Context, key, value string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateSettingValue(key, value); err != nil {
		return err
	}
	if err := s.settings.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}

	log.Debug("setting updated", slog.String("key", key))
	return nil
}

// validateSettingValue type-checks the values of well-known keys and
// requires plain JSON validity for everything else.
func validateSettingValue(key, value string) error {
	switch key {
	case store.SettingNewCardsPerDay:
		var n int
		if err := json.Unmarshal([]byte(value), &n); err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidSetting, key)
		}
	case store.SettingJLPTFocus:
		var level string
		if err := json.Unmarshal([]byte(value), &level); err != nil ||
			!domain.JLPTLevel(level).IsValid() {
			return fmt.Errorf("%w: %s must be a JLPT level", ErrInvalidSetting, key)
		}
	default:
		if !json.Valid([]byte(value)) {
			return fmt.Errorf("%w: value must be valid JSON", ErrInvalidSetting)
		}
	}
	return nil
}
