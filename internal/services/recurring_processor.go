package services

import (
	"context"
	"fmt"
	"log/slog"
)

// RecurringProcessor periodically materializes recurring payments from
// the stored data and saves when anything was added.
type RecurringProcessor struct {
	ledger *LedgerService
	logger *slog.Logger
}

// NewRecurringProcessor creates a new recurring payment processor
func NewRecurringProcessor(ledger *LedgerService, logger *slog.Logger) *RecurringProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecurringProcessor{
		ledger: ledger,
		logger: logger,
	}
}

// ProcessDue reloads the stored lists, so edits made by other processes
// are picked up, and expands every template.
func (p *RecurringProcessor) ProcessDue(ctx context.Context) (int, error) {
	if p.ledger == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	if err := p.ledger.Load(ctx); err != nil {
		return 0, err
	}

	added, err := p.ledger.Expand(ctx)
	if err != nil {
		return added, fmt.Errorf("expand recurring payments: %w", err)
	}

	p.logger.InfoContext(ctx, "Recurring payment processing complete",
		"created", added,
		"payments", len(p.ledger.Store().Payments()))

	return added, nil
}
