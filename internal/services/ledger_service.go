package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"finanzas/internal/amqp"
	"finanzas/internal/core"
	"finanzas/internal/log"
	"finanzas/internal/storage"
	"finanzas/internal/store"
)

// Notifier announces saves to other processes.
type Notifier interface {
	PublishDataSaved(ctx context.Context, msg *amqp.DataSavedMessage) error
}

// LedgerOptions configures a LedgerService. Settings and Notifier are
// optional.
type LedgerOptions struct {
	Repository storage.Repository
	Backend    string
	Settings   *storage.SettingsFile
	Notifier   Notifier
	Now        func() time.Time
	Logger     *slog.Logger
}

// LedgerService wires the record store to persistence. It loads and saves
// the lists, keeps the month view cache in step with the store and
// publishes a notification after every save.
type LedgerService struct {
	repo         storage.Repository
	backend      string
	settingsFile *storage.SettingsFile
	notifier     Notifier
	now          func() time.Time
	logger       *slog.Logger

	store *store.Store
	views *MonthViews

	mu       sync.Mutex
	settings core.Settings
}

func NewLedgerService(opts LedgerOptions) *LedgerService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := store.New(nil, nil)
	return &LedgerService{
		repo:         opts.Repository,
		backend:      opts.Backend,
		settingsFile: opts.Settings,
		notifier:     opts.Notifier,
		now:          opts.Now,
		logger:       opts.Logger,
		store:        s,
		views:        NewMonthViews(s, NewRecurrenceExpander(opts.Logger), opts.Now, opts.Logger),
		settings:     core.DefaultSettings(),
	}
}

// Store returns the in-memory record store.
func (s *LedgerService) Store() *store.Store {
	return s.store
}

// Load replaces the in-memory lists and settings with the stored ones.
func (s *LedgerService) Load(ctx context.Context) error {
	payments, purchases, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}
	s.store.Reset(payments, purchases)

	if s.settingsFile != nil {
		settings, err := s.settingsFile.Load(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		s.mu.Lock()
		s.settings = settings
		s.mu.Unlock()
	}

	s.logger.DebugContext(ctx, "Ledger loaded",
		"payments", len(payments),
		"purchases", len(purchases))
	return nil
}

// Save persists both lists and announces the save for month. A failed
// notification is logged; the data is already on disk.
func (s *LedgerService) Save(ctx context.Context, month core.MonthKey) error {
	payments, purchases := s.store.Payments(), s.store.Purchases()
	if err := s.repo.Save(ctx, payments, purchases); err != nil {
		return fmt.Errorf("save records: %w", err)
	}

	if s.notifier == nil {
		return nil
	}
	msg := amqp.NewDataSavedMessage(s.backend, len(payments), len(purchases), s.repo.LastBackup(), month)
	if err := s.notifier.PublishDataSaved(ctx, msg); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish data saved message",
			"month", month.String(),
			"error", err)
	}
	return nil
}

// Add stores a new record and saves.
func (s *LedgerService) Add(ctx context.Context, r core.Record) (core.Record, error) {
	added, err := s.store.Add(r)
	if err != nil {
		return core.Record{}, err
	}
	return added, s.saveFor(ctx, log.OpCreate, added)
}

// MarkPaid marks a record as paid and saves.
func (s *LedgerService) MarkPaid(ctx context.Context, uid string) error {
	if err := s.store.MarkPaid(uid); err != nil {
		return err
	}
	r, err := s.store.Get(uid)
	if err != nil {
		return err
	}
	return s.saveFor(ctx, log.OpPay, r)
}

// Delete removes a record and saves.
func (s *LedgerService) Delete(ctx context.Context, uid string) error {
	r, err := s.store.Get(uid)
	if err != nil {
		return err
	}
	if err := s.store.Delete(uid); err != nil {
		return err
	}
	return s.saveFor(ctx, log.OpDelete, r)
}

// Update edits a record and saves.
func (s *LedgerService) Update(ctx context.Context, uid string, edit func(*core.Record)) error {
	if err := s.store.Update(uid, edit); err != nil {
		return err
	}
	r, err := s.store.Get(uid)
	if err != nil {
		return err
	}
	return s.saveFor(ctx, log.OpUpdate, r)
}

// saveFor saves, announcing the month of r or the current month when r
// has no usable date.
func (s *LedgerService) saveFor(ctx context.Context, op string, r core.Record) error {
	month := core.MonthKeyOf(s.now())
	if d, ok := r.ParsedDate(); ok {
		month = core.MonthKeyOf(d)
	}
	s.logger.DebugContext(ctx, "Record changed",
		log.NewFields().WithOperation(op).WithRecord(r).ToSlice()...)
	return s.Save(ctx, month)
}

// Expand materializes missing recurring instances and saves when any were
// added.
func (s *LedgerService) Expand(ctx context.Context) (int, error) {
	added := s.views.EnsureInstances()
	if added == 0 {
		return 0, nil
	}
	s.logger.InfoContext(ctx, "Materialized recurring payments",
		log.FieldOperation, log.OpExpand,
		log.FieldCount, added)
	if err := s.Save(ctx, core.MonthKeyOf(s.now())); err != nil {
		return added, err
	}
	return added, nil
}

// MonthView returns the cached aggregates of month.
func (s *LedgerService) MonthView(month core.MonthKey) core.MonthView {
	return s.views.View(month)
}

// Balance computes the balance of month with the current weekly salary.
func (s *LedgerService) Balance(month core.MonthKey) core.Balance {
	s.views.EnsureInstances()
	return Balance(s.store.All(), s.Settings().Salary, month)
}

// BudgetUsage reports the spend per category of month and the budget
// usage ratio.
func (s *LedgerService) BudgetUsage(month core.MonthKey) (map[string]core.Money, float64) {
	s.views.EnsureInstances()
	return BudgetUsage(s.store.All(), s.Settings().Budgets, month)
}

// UpcomingDue lists the payments due in the next days.
func (s *LedgerService) UpcomingDue() ([]core.Record, core.Money) {
	s.views.EnsureInstances()
	return UpcomingDue(s.store.Payments(), s.now())
}

// Search filters every record by query.
func (s *LedgerService) Search(query string) []core.Record {
	return Search(s.store.All(), query)
}

// SummarizeByName groups the unpaid records of month by normalized name.
func (s *LedgerService) SummarizeByName(month core.MonthKey) []core.NameTotal {
	s.views.EnsureInstances()
	return SummarizeByName(s.store.All(), month)
}

// Settings returns a copy of the loaded settings.
func (s *LedgerService) Settings() core.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.settings
	out.SalaryHistory = make(core.SalaryHistory, len(s.settings.SalaryHistory))
	for k, v := range s.settings.SalaryHistory {
		out.SalaryHistory[k] = v
	}
	out.Budgets = make(core.Budgets, len(s.settings.Budgets))
	for k, v := range s.settings.Budgets {
		out.Budgets[k] = v
	}
	return out
}

// SetSalary records a new weekly salary effective today.
func (s *LedgerService) SetSalary(ctx context.Context, amount core.Money) error {
	return s.updateSettings(ctx, func(st *core.Settings) {
		st.SetSalary(core.FormatDate(s.now()), amount)
	})
}

// SetBudget sets or clears the limit of category.
func (s *LedgerService) SetBudget(ctx context.Context, category string, limit core.Money) error {
	return s.updateSettings(ctx, func(st *core.Settings) {
		st.SetBudget(category, limit)
	})
}

func (s *LedgerService) updateSettings(ctx context.Context, fn func(*core.Settings)) error {
	if s.settingsFile == nil {
		return errors.New("no config file configured")
	}
	next := s.Settings()
	fn(&next)
	if err := s.settingsFile.Save(ctx, next); err != nil {
		return err
	}
	s.mu.Lock()
	s.settings = next
	s.mu.Unlock()
	return nil
}
