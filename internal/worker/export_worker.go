package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/services"
	"finanzas/internal/sheets"
	"finanzas/internal/storage"
)

// ExportWorker writes month aggregates to a spreadsheet whenever the data
// is saved.
type ExportWorker struct {
	repo     storage.Repository
	settings *storage.SettingsFile
	writer   sheets.MonthWriter
	expander *services.RecurrenceExpander
	now      func() time.Time
	logger   *slog.Logger
}

func NewExportWorker(repo storage.Repository, settings *storage.SettingsFile, writer sheets.MonthWriter, logger *slog.Logger) *ExportWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportWorker{
		repo:     repo,
		settings: settings,
		writer:   writer,
		expander: services.NewRecurrenceExpander(logger),
		now:      time.Now,
		logger:   logger,
	}
}

// HandleDataSaved exports the month named by a data saved message.
func (w *ExportWorker) HandleDataSaved(ctx context.Context, msg *amqp.DataSavedMessage) error {
	month, err := msg.MonthKey()
	if err != nil {
		return fmt.Errorf("data saved message: %w", err)
	}

	w.logger.InfoContext(ctx, "Processing data saved message",
		"month", msg.Month,
		"backend", msg.Backend,
		"backup", msg.BackupPath)

	return w.ExportMonth(ctx, month)
}

// ExportMonth reloads the data and writes the aggregates of month. The
// loaded lists are expanded in memory only; this worker never saves.
func (w *ExportWorker) ExportMonth(ctx context.Context, month core.MonthKey) error {
	payments, purchases, err := w.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	w.expander.EnsureInstances(&payments, w.now().Year())

	salary := core.Zero
	if w.settings != nil {
		settings, err := w.settings.Load(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		salary = settings.Salary
	}

	all := make([]core.Record, 0, len(payments)+len(purchases))
	all = append(all, payments...)
	all = append(all, purchases...)

	view := services.BuildMonthView(all, month)
	balance := services.Balance(all, salary, month)

	if err := w.writer.WriteMonth(ctx, view, balance); err != nil {
		return fmt.Errorf("write month %s: %w", month, err)
	}

	w.logger.InfoContext(ctx, "Exported month",
		"month", month.String(),
		"total", view.Total.StringFixed(2),
		"balance", balance.Balance.StringFixed(2))
	return nil
}

// ExportCurrentMonth exports the month of the worker's clock. It backs the
// periodic export that covers messages lost while the worker was down.
func (w *ExportWorker) ExportCurrentMonth(ctx context.Context) error {
	return w.ExportMonth(ctx, core.MonthKeyOf(w.now()))
}
