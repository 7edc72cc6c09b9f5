package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"finanzas/internal/core"
	"finanzas/internal/debounce"
	"finanzas/internal/services"
)

var errUsage = errors.New("usage")

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: finanzas <command> [arguments]")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  month   [-m YYYY-MM]            records and totals of a month")
	fmt.Fprintln(w, "  balance [-m YYYY-MM]            income, expenses and balance")
	fmt.Fprintln(w, "  budget  [-m YYYY-MM]            budget usage per category")
	fmt.Fprintln(w, "  budget  set <category> <limit>  set or clear (0) a category limit")
	fmt.Fprintln(w, "  due                             unpaid payments due in the next days")
	fmt.Fprintln(w, "  search  <query> | -i            search records, -i reads queries from stdin")
	fmt.Fprintln(w, "  names   [-m YYYY-MM]            month spend grouped by name")
	fmt.Fprintln(w, "  add     -kind payment|purchase -name N -amount A [-date D] ...")
	fmt.Fprintln(w, "  pay     <uid>                   mark a record as paid")
	fmt.Fprintln(w, "  delete  <uid>                   delete a record")
	fmt.Fprintln(w, "  expand                          materialize recurring payments")
	fmt.Fprintln(w, "  salary  [amount]                show or set the weekly salary")
}

type app struct {
	ledger      *services.LedgerService
	out         io.Writer
	in          io.Reader
	interactive bool
	debounce    time.Duration
	now         func() time.Time
}

func (a *app) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "month":
		return a.month(args)
	case "balance":
		return a.balance(args)
	case "budget":
		if len(args) > 0 && args[0] == "set" {
			return a.budgetSet(ctx, args[1:])
		}
		return a.budget(args)
	case "due":
		return a.due()
	case "search":
		return a.search(args)
	case "names":
		return a.names(args)
	case "add":
		return a.add(ctx, args)
	case "pay":
		return a.withUID(args, func(uid string) error { return a.ledger.MarkPaid(ctx, uid) }, "Marked as paid")
	case "delete":
		return a.withUID(args, func(uid string) error { return a.ledger.Delete(ctx, uid) }, "Deleted")
	case "expand":
		return a.expand(ctx)
	case "salary":
		return a.salary(ctx, args)
	case "help", "-h", "--help":
		usage(a.out)
		return nil
	default:
		return errUsage
	}
}

// monthFlag parses the common -m flag, defaulting to the current month.
func (a *app) monthFlag(name string, args []string) (core.MonthKey, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	m := fs.String("m", "", "month as YYYY-MM")
	if err := fs.Parse(args); err != nil {
		return core.MonthKey{}, nil, errUsage
	}
	if *m == "" {
		return core.MonthKeyOf(a.clock()), fs.Args(), nil
	}
	key, err := core.ParseMonthKey(*m)
	if err != nil {
		return core.MonthKey{}, nil, err
	}
	return key, fs.Args(), nil
}

func (a *app) month(args []string) error {
	key, _, err := a.monthFlag("month", args)
	if err != nil {
		return err
	}
	renderMonth(a.out, a.ledger.MonthView(key))
	return nil
}

func (a *app) balance(args []string) error {
	key, _, err := a.monthFlag("balance", args)
	if err != nil {
		return err
	}
	renderBalance(a.out, key, a.ledger.Balance(key))
	return nil
}

func (a *app) budget(args []string) error {
	key, _, err := a.monthFlag("budget", args)
	if err != nil {
		return err
	}
	spent, ratio := a.ledger.BudgetUsage(key)
	renderBudget(a.out, key, a.ledger.Settings().Budgets, spent, ratio)
	return nil
}

func (a *app) budgetSet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	limit, err := core.ParseAmount(args[1])
	if err != nil {
		return fmt.Errorf("limit %q: %w", args[1], err)
	}
	category := strings.ToUpper(strings.TrimSpace(args[0]))
	if err := a.ledger.SetBudget(ctx, category, limit); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Budget %s set to %s\n", category, limit.StringFixed(2))
	return nil
}

func (a *app) due() error {
	due, total := a.ledger.UpcomingDue()
	renderDue(a.out, due, total)
	return nil
}

func (a *app) names(args []string) error {
	key, _, err := a.monthFlag("names", args)
	if err != nil {
		return err
	}
	renderNames(a.out, a.ledger.SummarizeByName(key))
	return nil
}

func (a *app) search(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	interactive := fs.Bool("i", false, "read queries from stdin")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *interactive {
		return a.searchInteractive()
	}
	if fs.NArg() == 0 {
		return errUsage
	}
	query := strings.Join(fs.Args(), " ")
	renderRecords(a.out, a.ledger.Search(query))
	return nil
}

// searchInteractive evaluates the latest line typed once input has been
// quiet for the debounce wait. Pending input is evaluated at end of input.
func (a *app) searchInteractive() error {
	var mu sync.Mutex
	d := debounce.New(a.debounce, func(query string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(a.out, "> %s\n", query)
		renderRecords(a.out, a.ledger.Search(query))
		if a.interactive {
			fmt.Fprint(a.out, "search> ")
		}
	})
	defer d.Stop()

	if a.interactive {
		fmt.Fprint(a.out, "search> ")
	}
	scanner := bufio.NewScanner(a.in)
	for scanner.Scan() {
		d.Trigger(strings.TrimSpace(scanner.Text()))
	}
	d.Flush()
	return scanner.Err()
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		kind      = fs.String("kind", "purchase", "payment or purchase")
		name      = fs.String("name", "", "name or item")
		amount    = fs.String("amount", "", "amount, dot or comma decimals")
		date      = fs.String("date", "", "YYYY-MM-DD, default today")
		category  = fs.String("category", core.DefaultCategory, "category")
		method    = fs.String("method", "", "payment method")
		recurring = fs.Bool("recurring", false, "payment repeats")
		frequency = fs.String("frequency", string(core.Monthly), "WEEKLY, BIWEEKLY or MONTHLY")
		until     = fs.String("until", "", "last date of a recurring payment")
	)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	value, err := core.ParseAmount(*amount)
	if err != nil {
		return fmt.Errorf("amount %q: %w", *amount, err)
	}
	r := core.Record{
		Name:     strings.TrimSpace(*name),
		Amount:   value,
		Date:     *date,
		Category: strings.ToUpper(strings.TrimSpace(*category)),
		Method:   *method,
		Status:   core.StatusPending,
	}
	if r.Date == "" {
		r.Date = core.FormatDate(a.clock())
	}
	switch strings.ToLower(*kind) {
	case "payment":
		r.Kind = core.Payment
		if *recurring {
			r.Recurring = true
			r.Frequency = string(core.ParseFrequency(*frequency))
			r.Until = *until
		}
	case "purchase":
		r.Kind = core.Purchase
		if *recurring {
			return core.ErrRecurringBuy
		}
	default:
		return fmt.Errorf("kind %q: %w", *kind, core.ErrInvalidKind)
	}

	added, err := a.ledger.Add(ctx, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added %s %s\n", added.Kind, added.UID)
	return nil
}

func (a *app) withUID(args []string, fn func(string) error, done string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := fn(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s\n", done, args[0])
	return nil
}

func (a *app) expand(ctx context.Context) error {
	added, err := a.ledger.Expand(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Materialized %d recurring payments\n", added)
	return nil
}

func (a *app) salary(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		renderSalary(a.out, a.ledger.Settings())
		return nil
	case 1:
		amount, err := core.ParseAmount(args[0])
		if err != nil {
			return fmt.Errorf("salary %q: %w", args[0], err)
		}
		if err := a.ledger.SetSalary(ctx, amount); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Weekly salary set to %s\n", amount.StringFixed(2))
		return nil
	default:
		return errUsage
	}
}
