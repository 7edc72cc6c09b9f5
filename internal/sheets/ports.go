package sheets

import (
	"context"

	"finanzas/internal/core"
)

// Ports for outbound adapters.
type (
	// MonthWriter exports the aggregates of one month, replacing whatever
	// was exported for that month before.
	MonthWriter interface {
		WriteMonth(ctx context.Context, view core.MonthView, balance core.Balance) error
	}
)
