package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"finanzas/internal/core"
	"finanzas/internal/services"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	amber = color.New(color.FgYellow)
	red   = color.New(color.FgRed)
)

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func marker(r core.Record) string {
	switch {
	case r.IsTemplate():
		return "recurring"
	case r.IsInstance():
		return "instance"
	default:
		return ""
	}
}

func renderRecords(w io.Writer, records []core.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records")
		return
	}
	tw := table(w)
	fmt.Fprintln(tw, "DATE\tKIND\tNAME\tAMOUNT\tCATEGORY\tSTATUS\tUID")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date, r.Kind, r.Name, r.Amount.StringFixed(2), r.CategoryOrDefault(), r.Status, r.UID)
	}
	tw.Flush()
}

func renderMonth(w io.Writer, view core.MonthView) {
	bold.Fprintf(w, "%s\n", view.Key)
	tw := table(w)
	for _, day := range view.Days() {
		for _, r := range view.ByDay[day] {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
				day, r.Name, r.Amount.StringFixed(2), r.CategoryOrDefault(), marker(r), r.UID)
		}
	}
	tw.Flush()

	cats := make([]string, 0, len(view.SpentByCategory))
	for c := range view.SpentByCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	if len(cats) > 0 {
		fmt.Fprintln(w)
		tw = table(w)
		for _, c := range cats {
			fmt.Fprintf(tw, "%s\t%s\n", c, view.SpentByCategory[c].StringFixed(2))
		}
		tw.Flush()
	}
	bold.Fprintf(w, "Total: %s\n", view.Total.StringFixed(2))
}

func renderBalance(w io.Writer, key core.MonthKey, b core.Balance) {
	bold.Fprintf(w, "%s (%d weeks)\n", key, b.Weeks)
	fmt.Fprintf(w, "Income:   %s\n", b.Income.StringFixed(2))
	fmt.Fprintf(w, "Expenses: %s\n", b.Expenses.StringFixed(2))
	c := green
	if b.Balance.IsNegative() {
		c = red
	}
	c.Fprintf(w, "Balance:  %s\n", b.Balance.StringFixed(2))
}

func bandColor(band core.Band) *color.Color {
	switch band {
	case core.BandOK:
		return green
	case core.BandWarning:
		return amber
	case core.BandOver:
		return red
	default:
		return bold
	}
}

func renderBudget(w io.Writer, key core.MonthKey, budgets core.Budgets, spent map[string]core.Money, ratio float64) {
	bold.Fprintf(w, "%s\n", key)
	if ratio == services.NoBudget {
		fmt.Fprintln(w, "No budget configured")
		return
	}
	usage := services.CategoryUsage(spent, budgets)
	tw := table(w)
	fmt.Fprintln(tw, "CATEGORY\tSPENT\tLIMIT\tUSED")
	for _, cat := range budgets.Categories() {
		limit, _ := budgets.Limit(cat)
		r := usage[cat]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cat, spent[cat].StringFixed(2), limit.StringFixed(2),
			bandColor(services.BudgetBand(r)).Sprintf("%.0f%%", r*100))
	}
	tw.Flush()
	bandColor(services.BudgetBand(ratio)).Fprintf(w, "Overall: %.0f%%\n", ratio*100)
}

func renderDue(w io.Writer, due []core.Record, total core.Money) {
	if len(due) == 0 {
		fmt.Fprintf(w, "Nothing due in the next %d days\n", services.DueWindowDays)
		return
	}
	tw := table(w)
	for _, r := range due {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date, r.Name, r.Amount.StringFixed(2), r.UID)
	}
	tw.Flush()
	bold.Fprintf(w, "Total due: %s\n", total.StringFixed(2))
}

func renderNames(w io.Writer, totals []core.NameTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(w, "No records")
		return
	}
	tw := table(w)
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", t.Name, t.Count, t.Total.StringFixed(2))
	}
	tw.Flush()
}

func renderSalary(w io.Writer, s core.Settings) {
	fmt.Fprintf(w, "Weekly salary: %s\n", s.Salary.StringFixed(2))
	for _, d := range s.SalaryHistory.Dates() {
		fmt.Fprintf(w, "  %s\t%s\n", d, s.SalaryHistory[d].StringFixed(2))
	}
}
