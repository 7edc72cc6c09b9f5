package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.23", "1.23", true},
		{"1,23", "1.23", true},
		{" 2.50 ", "2.5", true},
		{"0", "0", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if !tc.ok {
			assert.Error(t, err, "input %q", tc.in)
			continue
		}
		if assert.NoError(t, err, "input %q", tc.in) {
			assert.True(t, got.Equal(decimal.RequireFromString(tc.out)), "input %q got %s", tc.in, got)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	assert.True(t, CoerceAmount("12.5").Equal(decimal.RequireFromString("12.5")))
	assert.True(t, CoerceAmount("nope").IsZero())
	assert.True(t, CoerceAmount("-3").IsZero())
	assert.True(t, CoerceAmount("").IsZero())
}

func TestSum(t *testing.T) {
	records := []Record{
		{Amount: decimal.RequireFromString("0.1")},
		{Amount: decimal.RequireFromString("0.2")},
	}
	assert.Equal(t, "0.3", Sum(records).String())
}
