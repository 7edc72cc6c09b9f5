package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
)

func payment(uid, name, date string) core.Record {
	return core.Record{UID: uid, Kind: core.Payment, Name: name, Amount: decimal.NewFromInt(10), Date: date, Status: core.StatusPending}
}

func TestNewAssignsMissingUIDsAndKinds(t *testing.T) {
	s := New(
		[]core.Record{{Name: "Rent", Date: "2024-03-01"}},
		[]core.Record{{Name: "Shoes", Date: "2024-03-02"}},
	)
	all := s.All()
	require.Len(t, all, 2)
	assert.NotEmpty(t, all[0].UID)
	assert.NotEqual(t, all[0].UID, all[1].UID)
	assert.Equal(t, core.Payment, all[0].Kind)
	assert.Equal(t, core.Purchase, all[1].Kind)
	assert.Equal(t, core.StatusPending, all[1].Status)
}

func TestMutationsNotifyListeners(t *testing.T) {
	s := New([]core.Record{payment("p1", "Rent", "2024-03-01")}, nil)
	calls := 0
	s.OnChange(func() { calls++ })

	added, err := s.Add(core.Record{Kind: core.Purchase, Name: "Book", Amount: decimal.NewFromInt(5), Date: "2024-03-03"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.UID)
	assert.Equal(t, 1, calls)

	require.NoError(t, s.Update("p1", func(r *core.Record) { r.Amount = decimal.NewFromInt(20) }))
	assert.Equal(t, 2, calls)

	require.NoError(t, s.MarkPaid("p1"))
	assert.Equal(t, 3, calls)

	require.NoError(t, s.Delete(added.UID))
	assert.Equal(t, 4, calls)

	s.Reset(nil, nil)
	assert.Equal(t, 5, calls)
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	s := New(nil, nil)
	_, err := s.Add(core.Record{Kind: core.Payment, Name: "", Date: "2024-03-01"})
	assert.ErrorIs(t, err, core.ErrEmptyName)
}

func TestMarkPaidIsOneWay(t *testing.T) {
	s := New([]core.Record{payment("p1", "Rent", "2024-03-01")}, nil)
	require.NoError(t, s.MarkPaid("p1"))
	assert.ErrorIs(t, s.MarkPaid("p1"), ErrAlreadyPaid)

	err := s.Update("p1", func(r *core.Record) { r.Status = core.StatusPending })
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	got, err := s.Get("p1")
	require.NoError(t, err)
	assert.True(t, got.IsPaid())
}

func TestUpdateKeepsIdentity(t *testing.T) {
	s := New([]core.Record{payment("p1", "Rent", "2024-03-01")}, nil)

	err := s.Update("p1", func(r *core.Record) { r.Kind = core.Purchase })
	assert.ErrorIs(t, err, ErrKindMismatch)

	require.NoError(t, s.Update("p1", func(r *core.Record) {
		r.UID = "other"
		r.Name = "Rent March"
	}))
	got, err := s.Get("p1")
	require.NoError(t, err)
	assert.Equal(t, "Rent March", got.Name)
}

func TestNotFound(t *testing.T) {
	s := New(nil, nil)
	assert.ErrorIs(t, s.Delete("x"), ErrNotFound)
	assert.ErrorIs(t, s.MarkPaid("x"), ErrNotFound)
	assert.ErrorIs(t, s.Update("x", func(*core.Record) {}), ErrNotFound)
	_, err := s.Get("x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpandNotifiesOnlyWhenAppending(t *testing.T) {
	s := New([]core.Record{payment("p1", "Rent", "2024-03-01")}, nil)
	calls := 0
	s.OnChange(func() { calls++ })

	s.Expand(func(p *[]core.Record) int { return 0 })
	assert.Equal(t, 0, calls)

	s.Expand(func(p *[]core.Record) int {
		*p = append(*p, payment("p2", "Rent", "2024-04-01"))
		return 1
	})
	assert.Equal(t, 1, calls)
	n, _ := s.Len()
	assert.Equal(t, 2, n)
}

func TestReturnedSlicesAreCopies(t *testing.T) {
	s := New([]core.Record{payment("p1", "Rent", "2024-03-01")}, nil)
	p := s.Payments()
	p[0].Name = "changed"
	got, _ := s.Get("p1")
	assert.Equal(t, "Rent", got.Name)
}
