package google

import (
	"strconv"

	"finanzas/internal/core"
)

var header = []interface{}{"Date", "Name", "Kind", "Category", "Method", "Amount"}

// monthRows lays out a month view as sheet rows: one row per record by
// day, then per-category totals, then the balance.
func monthRows(view core.MonthView, balance core.Balance) [][]interface{} {
	rows := [][]interface{}{header}
	for _, day := range view.Days() {
		for _, r := range view.ByDay[day] {
			rows = append(rows, []interface{}{
				r.Date,
				r.Name,
				r.Kind.String(),
				r.CategoryOrDefault(),
				r.Method,
				r.Amount.StringFixed(2),
			})
		}
	}

	rows = append(rows, []interface{}{})
	rows = append(rows, []interface{}{"Category", "Spent"})
	for _, cat := range core.SortedCategories(view.SpentByCategory) {
		rows = append(rows, []interface{}{cat, view.SpentByCategory[cat].StringFixed(2)})
	}

	rows = append(rows,
		[]interface{}{},
		[]interface{}{"Total", view.Total.StringFixed(2)},
		[]interface{}{"Income", balance.Income.StringFixed(2)},
		[]interface{}{"Expenses", balance.Expenses.StringFixed(2)},
		[]interface{}{"Balance", balance.Balance.StringFixed(2)},
		[]interface{}{"Weeks", strconv.Itoa(balance.Weeks)},
	)
	return rows
}
