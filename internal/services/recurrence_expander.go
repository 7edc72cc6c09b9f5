package services

import (
	"log/slog"
	"time"

	"finanzas/internal/core"
)

// RecurrenceExpander materializes the due dates of recurring payment
// templates as concrete payment records.
type RecurrenceExpander struct {
	logger *slog.Logger
	newUID func() string
}

// NewRecurrenceExpander creates a new recurrence expander
func NewRecurrenceExpander(logger *slog.Logger) *RecurrenceExpander {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecurrenceExpander{
		logger: logger,
		newUID: core.NewUID,
	}
}

type instanceKey struct {
	parentID string
	date     string
}

// EnsureInstances appends an instance for every due date of every template
// in payments that does not have one yet, and returns how many it added.
//
// Templates are walked from their date up to fecha_limite, or December 31
// of referenceYear+2 when no end date is set. Templates with an
// unparseable date produce nothing. Existing records are never changed or
// removed, except that a template without a uid receives one, so running
// this repeatedly only ever adds what is missing.
func (e *RecurrenceExpander) EnsureInstances(payments *[]core.Record, referenceYear int) int {
	if payments == nil {
		return 0
	}

	existing := make(map[instanceKey]struct{})
	for _, r := range *payments {
		if r.Generated {
			existing[instanceKey{r.ParentID, r.Date}] = struct{}{}
		}
	}

	defaultHorizon := time.Date(referenceYear+2, time.December, 31, 0, 0, 0, 0, time.UTC)
	added := 0

	// Only the records present at the start can be templates; instances
	// appended below are never recurring.
	n := len(*payments)
	for i := 0; i < n; i++ {
		if !(*payments)[i].Recurring {
			continue
		}
		if (*payments)[i].UID == "" {
			(*payments)[i].UID = e.newUID()
		}
		tpl := (*payments)[i]

		start, ok := tpl.ParsedDate()
		if !ok {
			e.logger.Debug("Skipping recurring template with invalid date",
				"uid", tpl.UID,
				"date", tpl.Date)
			continue
		}
		horizon, ok := core.ParseDate(tpl.Until)
		if !ok {
			horizon = defaultHorizon
		}
		strategy, err := GetFrequencyStrategy(tpl.ResolvedFrequency())
		if err != nil {
			e.logger.Warn("Skipping recurring template", "uid", tpl.UID, "error", err)
			continue
		}

		created := 0
		for cursor := start; !cursor.After(horizon); cursor = strategy.Next(cursor, start) {
			key := instanceKey{tpl.UID, core.FormatDate(cursor)}
			if _, ok := existing[key]; ok {
				continue
			}
			*payments = append(*payments, e.instanceOf(tpl, key.date))
			existing[key] = struct{}{}
			created++
		}

		if created > 0 {
			e.logger.Debug("Materialized recurring payment",
				"template_uid", tpl.UID,
				"name", tpl.Name,
				"frequency", tpl.ResolvedFrequency(),
				"instances", created)
		}
		added += created
	}

	return added
}

func (e *RecurrenceExpander) instanceOf(tpl core.Record, date string) core.Record {
	return core.Record{
		UID:       e.newUID(),
		Kind:      core.Payment,
		Name:      tpl.Name,
		Amount:    tpl.Amount,
		Date:      date,
		Category:  tpl.Category,
		Method:    tpl.Method,
		Status:    core.StatusPending,
		Generated: true,
		ParentID:  tpl.UID,
	}
}
