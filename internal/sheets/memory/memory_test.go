package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"finanzas/internal/core"
)

func TestStoreWriteMonthReplaces(t *testing.T) {
	s := New()
	key := core.NewMonthKey(2024, time.March)

	first := core.MonthView{Key: key, Total: decimal.NewFromInt(10)}
	second := core.MonthView{Key: key, Total: decimal.NewFromInt(20)}
	if err := s.WriteMonth(context.Background(), first, core.Balance{}); err != nil {
		t.Fatalf("WriteMonth() error = %v", err)
	}
	if err := s.WriteMonth(context.Background(), second, core.Balance{Weeks: 5}); err != nil {
		t.Fatalf("WriteMonth() error = %v", err)
	}

	got, ok := s.Month("2024-03")
	if !ok {
		t.Fatal("Month(2024-03) not found")
	}
	if got.View.Total.String() != "20" || got.Balance.Weeks != 5 {
		t.Errorf("Month(2024-03) = %+v, want latest export", got)
	}
	if s.Writes() != 2 {
		t.Errorf("Writes() = %d, want 2", s.Writes())
	}
	if _, ok := s.Month("2024-04"); ok {
		t.Error("Month(2024-04) should not exist")
	}
}
