package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"finanzas/internal/cli"
	"finanzas/internal/log"
	"finanzas/internal/services"
)

func main() {
	cli.LoadEnvFile()

	bootstrap := cli.SetupLogger(os.Getenv("LOG_LEVEL"), os.Stdout)
	cfg := cli.LoadAndValidateConfig(bootstrap)
	logger := cli.SetupLogger(cfg.LogLevel, os.Stdout).WithComponent(log.ComponentRecurring)

	logger.Info("Starting recurring-worker",
		"backend", cfg.DataBackend,
		"interval", cfg.RecurringInterval)

	ctx, done := cli.GracefulShutdown(logger.Logger, 30*time.Second, nil)

	ledger, err := cli.OpenLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger", "error", err)
		os.Exit(1)
	}
	defer ledger.Close()

	processor := services.NewRecurringProcessor(ledger.LedgerService, logger.Logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return runPeriodically(gctx, processor, cfg.RecurringInterval, logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Recurring-worker stopped", "error", err)
		os.Exit(1)
	}
	<-done
	logger.Info("Recurring-worker shutdown complete")
}

// runPeriodically expands once at startup and then on every tick. Failed
// runs are logged and retried on the next tick.
func runPeriodically(ctx context.Context, processor *services.RecurringProcessor, interval time.Duration, logger *log.Logger) error {
	process := func(now time.Time) {
		count, err := processor.ProcessDue(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Recurring processing failed", "error", err)
			return
		}
		logger.InfoContext(ctx, "Recurring processing complete",
			log.FieldCount, count,
			"next_check", now.Add(interval).Format("15:04:05"))
	}

	process(time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			process(now)
		}
	}
}
