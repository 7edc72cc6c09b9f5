// Package store holds the in-memory payment and purchase lists that every
// other component reads and mutates.
package store

import (
	"errors"
	"fmt"
	"sync"

	"finanzas/internal/core"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrAlreadyPaid  = errors.New("record already paid")
	ErrKindMismatch = errors.New("record kind cannot change")
)

// Store owns the payment and purchase lists. Every mutation notifies the
// change listeners before returning so derived views never outlive the
// data they were built from.
type Store struct {
	mu        sync.Mutex
	payments  []core.Record
	purchases []core.Record
	listeners []func()
}

// New creates a store from loaded lists. Records lacking a uid get one.
func New(payments, purchases []core.Record) *Store {
	s := &Store{}
	s.payments, s.purchases = prepare(payments, core.Payment), prepare(purchases, core.Purchase)
	return s
}

func prepare(in []core.Record, kind core.Kind) []core.Record {
	out := make([]core.Record, len(in))
	copy(out, in)
	for i := range out {
		out[i].Kind = kind
		if out[i].UID == "" {
			out[i].UID = core.NewUID()
		}
		if out[i].Status == "" {
			out[i].Status = core.StatusPending
		}
	}
	return out
}

// OnChange registers fn to run after every mutation.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Payments returns a copy of the payment list.
func (s *Store) Payments() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.payments...)
}

// Purchases returns a copy of the purchase list.
func (s *Store) Purchases() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.purchases...)
}

// All returns payments followed by purchases.
func (s *Store) All() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Record, 0, len(s.payments)+len(s.purchases))
	out = append(out, s.payments...)
	return append(out, s.purchases...)
}

// Get returns the record with uid.
func (s *Store) Get(uid string) (core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, i := s.find(uid)
	if i < 0 {
		return core.Record{}, fmt.Errorf("get %s: %w", uid, ErrNotFound)
	}
	return (*list)[i], nil
}

// Add validates r, assigns a uid when missing and appends it to the list
// matching its kind.
func (s *Store) Add(r core.Record) (core.Record, error) {
	if err := r.Validate(); err != nil {
		return core.Record{}, fmt.Errorf("add %s: %w", r.Kind, err)
	}
	if r.UID == "" {
		r.UID = core.NewUID()
	}
	if r.Status == "" {
		r.Status = core.StatusPending
	}

	s.mu.Lock()
	if r.Kind == core.Purchase {
		s.purchases = append(s.purchases, r)
	} else {
		s.payments = append(s.payments, r)
	}
	s.mu.Unlock()

	s.changed()
	return r, nil
}

// Update applies edit to the record with uid. The uid and kind of a record
// cannot be changed and a paid record cannot go back to pending.
func (s *Store) Update(uid string, edit func(*core.Record)) error {
	s.mu.Lock()
	list, i := s.find(uid)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", uid, ErrNotFound)
	}
	before := (*list)[i]
	after := before
	edit(&after)
	switch {
	case after.Kind != before.Kind:
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", uid, ErrKindMismatch)
	case before.IsPaid() && !after.IsPaid():
		s.mu.Unlock()
		return fmt.Errorf("update %s: %w", uid, ErrAlreadyPaid)
	}
	after.UID = before.UID
	(*list)[i] = after
	s.mu.Unlock()

	s.changed()
	return nil
}

// MarkPaid moves a pending record to paid.
func (s *Store) MarkPaid(uid string) error {
	s.mu.Lock()
	list, i := s.find(uid)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("mark paid %s: %w", uid, ErrNotFound)
	}
	if (*list)[i].IsPaid() {
		s.mu.Unlock()
		return fmt.Errorf("mark paid %s: %w", uid, ErrAlreadyPaid)
	}
	(*list)[i].Status = core.StatusPaid
	s.mu.Unlock()

	s.changed()
	return nil
}

// Delete removes the record with uid, keeping the order of the rest.
func (s *Store) Delete(uid string) error {
	s.mu.Lock()
	list, i := s.find(uid)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("delete %s: %w", uid, ErrNotFound)
	}
	*list = append((*list)[:i], (*list)[i+1:]...)
	s.mu.Unlock()

	s.changed()
	return nil
}

// Reset replaces both lists, e.g. after reloading from storage.
func (s *Store) Reset(payments, purchases []core.Record) {
	s.mu.Lock()
	s.payments, s.purchases = prepare(payments, core.Payment), prepare(purchases, core.Purchase)
	s.mu.Unlock()

	s.changed()
}

// Expand runs fn against the payment list under the store lock. fn
// returns how many records it appended; listeners only fire when that is
// non-zero.
func (s *Store) Expand(fn func(payments *[]core.Record) int) int {
	s.mu.Lock()
	added := fn(&s.payments)
	s.mu.Unlock()

	if added > 0 {
		s.changed()
	}
	return added
}

// Len returns the number of payments and purchases.
func (s *Store) Len() (payments, purchases int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payments), len(s.purchases)
}

func (s *Store) find(uid string) (*[]core.Record, int) {
	for i := range s.payments {
		if s.payments[i].UID == uid {
			return &s.payments, i
		}
	}
	for i := range s.purchases {
		if s.purchases[i].UID == uid {
			return &s.purchases, i
		}
	}
	return nil, -1
}

func (s *Store) changed() {
	s.mu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
