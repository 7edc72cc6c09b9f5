package services

import (
	"log/slog"
	"time"

	"finanzas/internal/cache"
	"finanzas/internal/core"
	"finanzas/internal/store"
)

// BuildMonthView aggregates the records of one month. Paid records and
// records dated outside the month are left out of every aggregate.
func BuildMonthView(records []core.Record, key core.MonthKey) core.MonthView {
	view := core.MonthView{
		Key:             key,
		Total:           core.Zero,
		ByDay:           make(map[string][]core.Record),
		SpentByCategory: make(map[string]core.Money),
	}
	for _, r := range records {
		if r.IsPaid() || !key.Contains(r.Date) {
			continue
		}
		view.Total = view.Total.Add(r.Amount)
		view.ByDay[r.Date] = append(view.ByDay[r.Date], r)
		cat := r.CategoryOrDefault()
		view.SpentByCategory[cat] = view.SpentByCategory[cat].Add(r.Amount)
	}
	return view
}

// MonthViews serves month views from a single-slot cache. Every store
// mutation drops the cached view.
type MonthViews struct {
	store    *store.Store
	expander *RecurrenceExpander
	slot     *cache.Slot[core.MonthView]
	now      func() time.Time
	logger   *slog.Logger
}

// NewMonthViews creates the month view cache for s and subscribes it to
// the store's change notifications.
func NewMonthViews(s *store.Store, expander *RecurrenceExpander, now func() time.Time, logger *slog.Logger) *MonthViews {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	v := &MonthViews{
		store:    s,
		expander: expander,
		slot:     cache.NewSlot[core.MonthView](),
		now:      now,
		logger:   logger,
	}
	s.OnChange(v.Invalidate)
	return v
}

// View returns the view for key. Recurring templates are expanded first,
// which itself invalidates the cache when it adds instances.
func (v *MonthViews) View(key core.MonthKey) core.MonthView {
	v.EnsureInstances()
	return v.slot.GetOrBuild(key.String(), func() core.MonthView {
		v.logger.Debug("Building month view", "month", key.String())
		return BuildMonthView(v.store.All(), key)
	})
}

// EnsureInstances runs the expander against the store using the current
// year as reference and returns how many instances were added.
func (v *MonthViews) EnsureInstances() int {
	if v.expander == nil {
		return 0
	}
	year := v.now().Year()
	return v.store.Expand(func(payments *[]core.Record) int {
		return v.expander.EnsureInstances(payments, year)
	})
}

// Invalidate drops the cached view.
func (v *MonthViews) Invalidate() {
	v.slot.Invalidate()
}

// CachedMonth returns the month currently held in the cache.
func (v *MonthViews) CachedMonth() (string, bool) {
	return v.slot.Key()
}
