// Package core provides money parsing and handling utilities.
//
// Amounts are kept as decimals so that sums over a month never pick up
// binary floating point drift.
package core

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount. Record amounts are never negative.
type Money = decimal.Decimal

var ErrInvalidAmount = errors.New("invalid amount")

func init() {
	// Data files written by earlier versions store amounts as plain JSON
	// numbers; keep writing them that way.
	decimal.MarshalJSONWithoutQuotes = true
}

// Zero is the zero amount.
var Zero = decimal.Zero

// ParseAmount parses a user-entered amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and
// rejects negative values and malformed input.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-1")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidAmount
	}
	return d, nil
}

// CoerceAmount parses an amount from storage, turning anything invalid,
// missing or negative into zero.
func CoerceAmount(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return Zero
	}
	return d
}

// coerceJSONAmount accepts a JSON number, a numeric string or null.
func coerceJSONAmount(raw json.RawMessage) Money {
	if len(raw) == 0 {
		return Zero
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return CoerceAmount(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return CoerceAmount(n.String())
	}
	return Zero
}

// Sum adds up the amounts of records.
func Sum(records []Record) Money {
	total := Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}
