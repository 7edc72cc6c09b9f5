package core

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage format of every record date.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string. The boolean is false for empty or
// malformed input; callers treat such records as undated.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today truncates t to a UTC calendar date.
func Today(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days of a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ClampedDate builds a date in year/month using day, moved back to the last
// day of the month when the month is shorter.
func ClampedDate(year int, month time.Month, day int) time.Time {
	// Normalize month overflow first (e.g. month 13).
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	year, month = first.Year(), first.Month()
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthKey identifies a calendar month. It is stored as the first day of
// the month in UTC.
type MonthKey time.Time

// NewMonthKey returns the key for year/month.
func NewMonthKey(year int, month time.Month) MonthKey {
	return MonthKey(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthKeyOf returns the key of the month t falls into.
func MonthKeyOf(t time.Time) MonthKey {
	return NewMonthKey(t.Year(), t.Month())
}

// ParseMonthKey parses a "YYYY-MM" string.
func ParseMonthKey(s string) (MonthKey, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return MonthKey{}, fmt.Errorf("parse month %q: %w", s, err)
	}
	return MonthKeyOf(t), nil
}

// String returns the key formatted as YYYY-MM.
func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

func (m MonthKey) Year() int { return time.Time(m).Year() }

func (m MonthKey) Month() time.Month { return time.Time(m).Month() }

// IsZero reports if the key is the zero value.
func (m MonthKey) IsZero() bool {
	return time.Time(m).IsZero()
}

// Equal reports whether m and n represent the same month.
func (m MonthKey) Equal(n MonthKey) bool {
	return time.Time(m).Equal(time.Time(n))
}

// AddMonths moves the key by n months.
func (m MonthKey) AddMonths(n int) MonthKey {
	return MonthKey(time.Time(m).AddDate(0, n, 0))
}

// Contains reports whether a raw date string belongs to the month. This is
// a prefix match on the stored string, the same rule used for aggregation.
func (m MonthKey) Contains(date string) bool {
	return strings.HasPrefix(date, m.String())
}

// Days returns the number of days in the month.
func (m MonthKey) Days() int {
	return DaysIn(m.Year(), m.Month())
}

// Weeks returns how many Monday-first calendar rows the month spans,
// counting partial weeks at both ends.
func (m MonthKey) Weeks() int {
	offset := (int(time.Time(m).Weekday()) + 6) % 7
	return (offset + m.Days() + 6) / 7
}

// Next returns the following month.
func (m MonthKey) Next() MonthKey { return m.AddMonths(1) }

// Prev returns the previous month.
func (m MonthKey) Prev() MonthKey { return m.AddMonths(-1) }
