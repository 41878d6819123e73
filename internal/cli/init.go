// Package cli provides the interactive menu and the process initialization
// shared by fintrack binaries.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"fintrack/internal/config"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on failure; logging is not yet
// configured at this point so the bootstrap logger is used.
func LoadAndValidateConfig() *config.Config {
	bootstrap := applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentConfig)

	cfg, err := config.Load()
	if err != nil {
		bootstrap.Error("Configuration loading failed",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeConfiguration)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		bootstrap.Error("Configuration validation failed",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeConfiguration)
		os.Exit(1)
	}
	return cfg
}

// SetupLogger builds the process logger from cfg and installs it as the
// slog default. cfg is assumed to be validated.
func SetupLogger(cfg *config.Config) *applog.Logger {
	level, _ := applog.ParseLevel(cfg.LogLevel)

	logCfg := applog.DefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.LogFormat

	logger := applog.New(logCfg)
	applog.SetDefault(logger)
	return logger
}

// InitSQLite opens the repository at dbPath. The caller owns the returned
// repository and must Close it.
func InitSQLite(logger *applog.Logger, dbPath string) (*storage.SQLiteRepository, error) {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeDatabase,
			"path", dbPath)
		return nil, err
	}
	logger.Debug("SQLite repository initialized", "path", dbPath)
	return repo, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM so that the
// menu loop can return and deferred cleanup runs.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
