// Package config loads and validates application configuration.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// SRSConfig contains scheduling defaults. NewCardsPerDay is only the
// fallback: the live cap is read from the settings store so the learner can
// change it without a restart.
type SRSConfig struct {
	NewCardsPerDay  int `mapstructure:"new_cards_per_day" validate:"gte=0"`
	DefaultDueLimit int `mapstructure:"default_due_limit" validate:"gt=0,lte=100"`
}
