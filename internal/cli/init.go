// Package cli provides common initialization utilities shared by
// cmd/finanzas, cmd/export-worker and cmd/recurring-worker.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finanzas/internal/backend"
	"finanzas/internal/config"
	"finanzas/internal/log"
	"finanzas/internal/services"
	"finanzas/internal/storage"
)

// SetupLogger initializes structured logging at the given level and sets
// it as the default logger. Unknown levels fall back to info.
func SetupLogger(level string, w io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	if lvl, err := config.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	if w != nil {
		cfg.Writer = w
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// Ledger is an opened ledger plus the function releasing its backend.
type Ledger struct {
	*services.LedgerService
	Repository storage.Repository
	Close      func()
}

// OpenLedger creates the configured backend, wires it into a
// LedgerService and loads the stored data.
func OpenLedger(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Ledger, error) {
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	result, err := backend.NewFactory(logger.For(log.ComponentBackend)).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	opts := services.LedgerOptions{
		Repository: result.Repository,
		Backend:    cfg.DataBackend,
		Settings:   storage.NewSettingsFile(cfg.ConfigFile, logger.For(log.ComponentStorage)),
		Logger:     logger.For(log.ComponentLedger),
	}
	// A nil *amqp.Client must not end up inside the interface.
	if result.Notifier != nil {
		opts.Notifier = result.Notifier
	}
	ledger := services.NewLedgerService(opts)

	closeFn := func() {
		if err := result.Cleanup(); err != nil {
			logger.Warn("Backend cleanup failed", "error", err)
		}
	}
	if err := ledger.Load(ctx); err != nil {
		closeFn()
		return nil, err
	}
	return &Ledger{LedgerService: ledger, Repository: result.Repository, Close: closeFn}, nil
}

// GracefulShutdown sets up signal handling for graceful shutdown.
// Returns a context that will be cancelled on shutdown signals,
// and a channel that signals when shutdown is complete.
func GracefulShutdown(logger *slog.Logger, timeout time.Duration, cleanup func()) (context.Context, <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		finished := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup()
			}
			close(finished)
		}()
		cancel()

		select {
		case <-finished:
			logger.Info("Shutdown complete")
		case <-time.After(timeout):
			logger.Warn("Shutdown timeout reached")
		}
		close(done)
	}()

	return ctx, done
}
