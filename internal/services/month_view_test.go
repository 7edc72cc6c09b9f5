package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
	"finanzas/internal/store"
)

func rec(kind core.Kind, name, amount, date, category string, status core.Status) core.Record {
	return core.Record{
		Kind:     kind,
		Name:     name,
		Amount:   decimal.RequireFromString(amount),
		Date:     date,
		Category: category,
		Status:   status,
	}
}

func march2024() core.MonthKey {
	return core.NewMonthKey(2024, time.March)
}

func sampleRecords() []core.Record {
	return []core.Record{
		rec(core.Payment, "Rent", "800", "2024-03-01", "HOUSING", core.StatusPending),
		rec(core.Payment, "Power", "60.50", "2024-03-15", "UTILITIES", core.StatusPending),
		rec(core.Payment, "Water", "20", "2024-03-15", "UTILITIES", core.StatusPaid),
		rec(core.Purchase, "Groceries", "45.25", "2024-03-15", "FOOD", core.StatusPending),
		rec(core.Purchase, "Snacks", "5", "2024-03-20", "", core.StatusPending),
		rec(core.Purchase, "Old", "99", "2024-02-29", "FOOD", core.StatusPending),
		rec(core.Payment, "Broken", "10", "2024/03/01", "FOOD", core.StatusPending),
		rec(core.Payment, "Undated", "10", "", "FOOD", core.StatusPending),
	}
}

func TestBuildMonthView(t *testing.T) {
	view := BuildMonthView(sampleRecords(), march2024())

	assert.Equal(t, "910.75", view.Total.String())
	assert.Equal(t, []string{"2024-03-01", "2024-03-15", "2024-03-20"}, view.Days())

	day15 := view.ByDay["2024-03-15"]
	require.Len(t, day15, 2)
	assert.Equal(t, "Power", day15[0].Name)
	assert.Equal(t, "Groceries", day15[1].Name)

	assert.Equal(t, "800", view.SpentByCategory["HOUSING"].String())
	assert.Equal(t, "60.5", view.SpentByCategory["UTILITIES"].String())
	assert.Equal(t, "45.25", view.SpentByCategory["FOOD"].String())
	assert.Equal(t, "5", view.SpentByCategory[core.DefaultCategory].String())
	assert.Len(t, view.SpentByCategory, 4)

	sum := core.Zero
	for _, v := range view.SpentByCategory {
		sum = sum.Add(v)
	}
	assert.True(t, sum.Equal(view.Total))
}

func TestBuildMonthView_Empty(t *testing.T) {
	view := BuildMonthView(nil, march2024())
	assert.True(t, view.Total.IsZero())
	assert.Empty(t, view.ByDay)
	assert.Empty(t, view.SpentByCategory)
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC) }
}

func TestMonthViews_CachesUntilMutation(t *testing.T) {
	s := store.New(
		[]core.Record{rec(core.Payment, "Rent", "800", "2024-03-01", "HOUSING", core.StatusPending)},
		nil,
	)
	views := NewMonthViews(s, NewRecurrenceExpander(quietLogger()), fixedClock(), quietLogger())

	first := views.View(march2024())
	assert.Equal(t, "800", first.Total.String())
	cached, ok := views.CachedMonth()
	require.True(t, ok)
	assert.Equal(t, "2024-03", cached)

	added, err := s.Add(rec(core.Purchase, "Coffee", "3", "2024-03-02", "FOOD", ""))
	require.NoError(t, err)
	_, ok = views.CachedMonth()
	assert.False(t, ok, "mutation must drop the cached view")

	assert.Equal(t, "803", views.View(march2024()).Total.String())

	require.NoError(t, s.MarkPaid(added.UID))
	assert.Equal(t, "800", views.View(march2024()).Total.String())

	require.NoError(t, s.Delete(added.UID))
	s.Reset(nil, nil)
	assert.True(t, views.View(march2024()).Total.IsZero())
}

func TestMonthViews_SingleSlot(t *testing.T) {
	s := store.New(nil, []core.Record{
		rec(core.Purchase, "A", "1", "2024-03-01", "", ""),
		rec(core.Purchase, "B", "2", "2024-04-01", "", ""),
	})
	views := NewMonthViews(s, nil, fixedClock(), quietLogger())

	views.View(march2024())
	views.View(march2024().Next())
	cached, _ := views.CachedMonth()
	assert.Equal(t, "2024-04", cached)

	assert.Equal(t, "1", views.View(march2024()).Total.String())
	cached, _ = views.CachedMonth()
	assert.Equal(t, "2024-03", cached)
}

func TestMonthViews_ExpandsBeforeReading(t *testing.T) {
	tpl := template("t1", "2024-01-31", "MONTHLY", "2024-05-31")
	s := store.New([]core.Record{tpl}, nil)
	views := NewMonthViews(s, NewRecurrenceExpander(quietLogger()), fixedClock(), quietLogger())

	view := views.View(core.NewMonthKey(2024, time.April))
	require.Len(t, view.ByDay["2024-04-30"], 1)
	assert.True(t, view.ByDay["2024-04-30"][0].Generated)
	assert.Equal(t, "100", view.Total.String())

	// The template itself carries the start date and counts in its month.
	jan := views.View(core.NewMonthKey(2024, time.January))
	assert.Equal(t, "200", jan.Total.String())

	assert.Equal(t, 0, views.EnsureInstances())
	assert.Len(t, s.Payments(), 6)
}
