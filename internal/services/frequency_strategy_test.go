package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzas/internal/core"
)

func day(s string) time.Time {
	t, ok := core.ParseDate(s)
	if !ok {
		panic("bad test date " + s)
	}
	return t
}

func TestWeeklyStepper_Next(t *testing.T) {
	got := WeeklyStepper{}.Next(day("2024-02-26"), day("2024-02-26"))
	assert.Equal(t, "2024-03-04", core.FormatDate(got))
}

func TestBiweeklyStepper_Next(t *testing.T) {
	got := BiweeklyStepper{}.Next(day("2024-12-25"), day("2024-12-25"))
	assert.Equal(t, "2025-01-08", core.FormatDate(got))
}

func TestMonthlyStepper_Next(t *testing.T) {
	tests := []struct {
		name   string
		cursor string
		anchor string
		want   string
	}{
		{name: "plain month", cursor: "2024-03-15", anchor: "2024-03-15", want: "2024-04-15"},
		{name: "clamps to leap february", cursor: "2024-01-31", anchor: "2024-01-31", want: "2024-02-29"},
		{name: "clamps to february", cursor: "2023-01-31", anchor: "2023-01-31", want: "2023-02-28"},
		{name: "recovers after clamp", cursor: "2024-02-29", anchor: "2024-01-31", want: "2024-03-31"},
		{name: "clamps to 30 day month", cursor: "2024-03-31", anchor: "2024-01-31", want: "2024-04-30"},
		{name: "year rollover", cursor: "2024-12-31", anchor: "2024-01-31", want: "2025-01-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyStepper{}.Next(day(tt.cursor), day(tt.anchor))
			assert.Equal(t, tt.want, core.FormatDate(got))
		})
	}
}

func TestGetFrequencyStrategy(t *testing.T) {
	for _, f := range []core.Frequency{core.Weekly, core.Biweekly, core.Monthly} {
		s, err := GetFrequencyStrategy(f)
		require.NoError(t, err, "frequency %s", f)
		assert.NotNil(t, s)
	}
	_, err := GetFrequencyStrategy("YEARLY")
	assert.Error(t, err)
}
