package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2024-02-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2023-02-29", "29/02/2024", "2024-13-01"} {
		_, ok := ParseDate(bad)
		assert.False(t, ok, "input %q", bad)
	}
}

func TestClampedDate(t *testing.T) {
	assert.Equal(t, "2024-02-29", FormatDate(ClampedDate(2024, time.February, 31)))
	assert.Equal(t, "2023-02-28", FormatDate(ClampedDate(2023, time.February, 31)))
	assert.Equal(t, "2025-01-31", FormatDate(ClampedDate(2024, 13, 31)))
	assert.Equal(t, "2024-04-15", FormatDate(ClampedDate(2024, time.April, 15)))
}

func TestMonthKey(t *testing.T) {
	m, err := ParseMonthKey("2024-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", m.String())
	assert.True(t, m.Contains("2024-03-31"))
	assert.False(t, m.Contains("2024-04-01"))
	assert.Equal(t, "2024-02", m.AddMonths(-1).String())
	assert.Equal(t, "2025-01", NewMonthKey(2024, time.December).AddMonths(1).String())

	_, err = ParseMonthKey("March")
	assert.Error(t, err)
}

func TestMonthKeyWeeks(t *testing.T) {
	cases := map[string]int{
		"2024-03": 5, // starts Friday
		"2021-02": 4, // starts Monday, 28 days
		"2024-09": 6, // starts Sunday, 30 days
		"2026-02": 5, // starts Sunday, 28 days
		"2024-07": 5, // starts Monday, 31 days
	}
	for key, want := range cases {
		m, err := ParseMonthKey(key)
		require.NoError(t, err)
		assert.Equal(t, want, m.Weeks(), "month %s", key)
	}
}
