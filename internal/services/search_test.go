package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
)

func TestSearch(t *testing.T) {
	netflix := rec(core.Payment, "Netflix", "15.99", "2024-03-05", "STREAMING", core.StatusPending)
	netflix.Method = "CARD"
	rent := rec(core.Payment, "Rent", "800", "2024-03-01", "HOUSING", core.StatusPaid)
	records := []core.Record{rent, netflix}

	tests := []struct {
		query string
		want  []string
	}{
		{"stream", []string{"Netflix"}},
		{"netflix", []string{"Netflix"}},
		{"NETFLIX", []string{"Netflix"}},
		{"hulu", nil},
		{"paid", []string{"Rent"}},
		{"2024-03", []string{"Rent", "Netflix"}},
		{"800.0", []string{"Rent"}},
		{"15.99", []string{"Netflix"}},
		{"", []string{"Rent", "Netflix"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got []string
			for _, r := range Search(records, tt.query) {
				got = append(got, r.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_MatchesRecurrenceFields(t *testing.T) {
	tpl := template("t1", "2024-01-31", "monthly", "2024-05-31")
	got := Search([]core.Record{tpl}, "MONTHLY 2024-05-31")
	assert.Len(t, got, 1)
	assert.Len(t, Search([]core.Record{tpl}, "100.0 2024-01-31 HEALTH CARD PENDING TRUE"), 1)
}

func TestSummarizeByName(t *testing.T) {
	records := []core.Record{
		rec(core.Purchase, "Café", "3", "2024-03-01", "FOOD", core.StatusPending),
		rec(core.Purchase, "cafe.", "2", "2024-03-02", "FOOD", core.StatusPending),
		rec(core.Purchase, "Rent", "800", "2024-03-01", "HOUSING", core.StatusPending),
		rec(core.Purchase, "Cafe", "100", "2024-03-03", "FOOD", core.StatusPaid),
		rec(core.Purchase, "Cafe", "100", "2024-04-03", "FOOD", core.StatusPending),
	}

	got := SummarizeByName(records, core.NewMonthKey(2024, time.March))

	require.Len(t, got, 2)
	assert.Equal(t, "RENT", got[0].Name)
	assert.Equal(t, "CAFE", got[1].Name)
	assert.Equal(t, "5", got[1].Total.String())
	assert.Equal(t, 2, got[1].Count)
}
