package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

// NoBudget is the usage ratio reported when no positive budget exists.
const NoBudget = -1.0

// DueWindowDays is how far ahead UpcomingDue looks.
const DueWindowDays = 10

// Balance compares a month's income, the weekly salary times the calendar
// weeks the month spans, with its unpaid spend. It reads the full record
// list rather than a cached view.
func Balance(records []core.Record, salary core.Money, key core.MonthKey) core.Balance {
	weeks := key.Weeks()
	income := salary.Mul(decimal.NewFromInt(int64(weeks)))
	expenses := core.Zero
	for _, r := range records {
		if !r.IsPaid() && key.Contains(r.Date) {
			expenses = expenses.Add(r.Amount)
		}
	}
	return core.Balance{
		Income:   income,
		Expenses: expenses,
		Balance:  income.Sub(expenses),
		Weeks:    weeks,
	}
}

// BudgetUsage returns the unpaid spend per category for the month and the
// share of the total budget used by budgeted categories. The ratio is
// NoBudget when there is nothing to compare against and may exceed 1.
func BudgetUsage(records []core.Record, budgets core.Budgets, key core.MonthKey) (map[string]core.Money, float64) {
	spent := BuildMonthView(records, key).SpentByCategory
	if len(budgets) == 0 {
		return spent, NoBudget
	}

	totalBudget, totalSpent := core.Zero, core.Zero
	for _, cat := range budgets.Categories() {
		limit, _ := budgets.Limit(cat)
		totalBudget = totalBudget.Add(limit)
		totalSpent = totalSpent.Add(spent[cat])
	}
	if !totalBudget.IsPositive() {
		return spent, NoBudget
	}
	ratio, _ := totalSpent.Div(totalBudget).Float64()
	return spent, ratio
}

// CategoryUsage returns the usage ratio of every budgeted category.
func CategoryUsage(spent map[string]core.Money, budgets core.Budgets) map[string]float64 {
	out := make(map[string]float64, len(budgets))
	for _, cat := range budgets.Categories() {
		limit, _ := budgets.Limit(cat)
		ratio, _ := spent[cat].Div(limit).Float64()
		out[cat] = ratio
	}
	return out
}

// BudgetBand classifies a usage ratio.
func BudgetBand(ratio float64) core.Band {
	switch {
	case ratio < 0:
		return core.BandNone
	case ratio < 0.75:
		return core.BandOK
	case ratio < 1:
		return core.BandWarning
	default:
		return core.BandOver
	}
}

// UpcomingDue lists the unpaid payments due between today and
// DueWindowDays days later, both inclusive, ordered by date, and their sum.
func UpcomingDue(payments []core.Record, today time.Time) ([]core.Record, core.Money) {
	from := core.Today(today)
	to := from.AddDate(0, 0, DueWindowDays)

	var due []core.Record
	total := core.Zero
	for _, r := range payments {
		if r.IsPaid() {
			continue
		}
		d, ok := r.ParsedDate()
		if !ok || d.Before(from) || d.After(to) {
			continue
		}
		due = append(due, r)
		total = total.Add(r.Amount)
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].Date < due[j].Date })
	return due, total
}
