package memory

import (
	"context"
	"sync"

	"finanzas/internal/core"
	ports "finanzas/internal/sheets"
)

// Export is one month written to the store.
type Export struct {
	View    core.MonthView
	Balance core.Balance
}

// Store keeps exported months in memory, keyed by YYYY-MM.
type Store struct {
	mu     sync.Mutex
	months map[string]Export
	writes int
}

var _ ports.MonthWriter = (*Store)(nil)

func New() *Store {
	return &Store{months: make(map[string]Export)}
}

// WriteMonth replaces the stored export of the view's month.
func (s *Store) WriteMonth(_ context.Context, view core.MonthView, balance core.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.months[view.Key.String()] = Export{View: view, Balance: balance}
	s.writes++
	return nil
}

// Month returns the latest export of month.
func (s *Store) Month(month string) (Export, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.months[month]
	return e, ok
}

// Writes returns how many exports were made.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}
