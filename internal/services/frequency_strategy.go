// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for stepping through the due
// dates of a recurring payment. Each frequency has its own strategy that
// knows how to move from one due date to the next.

package services

import (
	"fmt"
	"time"

	"finanzas/internal/core"
)

// FrequencyStrategy is the strategy interface for walking a template's due
// dates.
type FrequencyStrategy interface {
	// Next returns the due date following cursor. anchor is the template's
	// first due date; strategies that keep a day-of-month use it instead of
	// the cursor so a clamped short month does not shift later months.
	Next(cursor, anchor time.Time) time.Time
}

// WeeklyStepper advances seven calendar days.
type WeeklyStepper struct{}

func (WeeklyStepper) Next(cursor, _ time.Time) time.Time {
	return cursor.AddDate(0, 0, 7)
}

// BiweeklyStepper advances fourteen calendar days.
type BiweeklyStepper struct{}

func (BiweeklyStepper) Next(cursor, _ time.Time) time.Time {
	return cursor.AddDate(0, 0, 14)
}

// MonthlyStepper moves to the anchor's day-of-month in the following
// month, clamped to that month's last day.
type MonthlyStepper struct{}

func (MonthlyStepper) Next(cursor, anchor time.Time) time.Time {
	return core.ClampedDate(cursor.Year(), cursor.Month()+1, anchor.Day())
}

// frequencyStrategies maps frequencies to their corresponding steppers.
var frequencyStrategies = map[core.Frequency]FrequencyStrategy{
	core.Weekly:   WeeklyStepper{},
	core.Biweekly: BiweeklyStepper{},
	core.Monthly:  MonthlyStepper{},
}

// GetFrequencyStrategy returns the stepper for a frequency.
// Returns an error if the frequency is not supported.
func GetFrequencyStrategy(frequency core.Frequency) (FrequencyStrategy, error) {
	strategy, ok := frequencyStrategies[frequency]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", frequency)
	}
	return strategy, nil
}

// RegisterFrequencyStrategy registers a stepper for a new frequency.
// Templates only reach it if ParseFrequency recognises the frequency.
func RegisterFrequencyStrategy(frequency core.Frequency, strategy FrequencyStrategy) {
	frequencyStrategies[frequency] = strategy
}
