package main

import (
	"context"
	"errors"
	"os"

	"fintrack/internal/cli"
	applog "fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	repo, err := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Failed to close SQLite repository", applog.FieldError, err)
		}
	}()

	ctx, stop := cli.SignalContext()
	defer stop()
	ctx = applog.NewContext(ctx, logger)

	logger.Info("Starting fintrack", applog.FieldOperation, applog.OpStartup, "database", cfg.SQLiteDBPath)

	menu := cli.NewMenu(os.Stdin, os.Stdout, services.NewExpenseService(repo), services.NewReportService(repo))
	if err := menu.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.Error("Menu stopped", applog.FieldError, err)
			return err
		}
		logger.Warn("Interrupted, shutting down")
	}

	logger.Info("fintrack stopped", applog.FieldOperation, applog.OpShutdown)
	return nil
}
