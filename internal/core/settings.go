package core

import (
	"encoding/json"
	"sort"
)

type (
	// Budgets maps a category to its monthly spending limit. Missing or
	// non-positive limits mean the category is not budgeted.
	Budgets map[string]Money

	// SalaryHistory logs weekly salary changes keyed by YYYY-MM-DD.
	SalaryHistory map[string]Money

	// Settings is the content of the config file.
	Settings struct {
		Salary        Money           `json:"salary"`
		SalaryHistory SalaryHistory   `json:"salary_history"`
		Budgets       Budgets         `json:"budgets"`
		SavingsGoals  json.RawMessage `json:"savings_goals"`
	}
)

// UnmarshalJSON implements the json.Unmarshaler interface. Amounts that
// cannot be read become zero instead of failing the whole file.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var in struct {
		Salary        json.RawMessage            `json:"salary"`
		SalaryHistory map[string]json.RawMessage `json:"salary_history"`
		Budgets       map[string]json.RawMessage `json:"budgets"`
		SavingsGoals  json.RawMessage            `json:"savings_goals"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*s = Settings{
		Salary:        coerceJSONAmount(in.Salary),
		SalaryHistory: make(SalaryHistory, len(in.SalaryHistory)),
		Budgets:       make(Budgets, len(in.Budgets)),
		SavingsGoals:  in.SavingsGoals,
	}
	for date, raw := range in.SalaryHistory {
		s.SalaryHistory[date] = coerceJSONAmount(raw)
	}
	for cat, raw := range in.Budgets {
		s.Budgets[cat] = coerceJSONAmount(raw)
	}
	if string(s.SavingsGoals) == "null" {
		s.SavingsGoals = nil
	}
	return nil
}

// DefaultSettings returns settings with no salary, budgets or goals.
func DefaultSettings() Settings {
	return Settings{
		Salary:        Zero,
		SalaryHistory: SalaryHistory{},
		Budgets:       Budgets{},
		SavingsGoals:  json.RawMessage("[]"),
	}
}

// Limit returns the positive limit of a category.
func (b Budgets) Limit(category string) (Money, bool) {
	limit, ok := b[category]
	if !ok || !limit.IsPositive() {
		return Zero, false
	}
	return limit, true
}

// Categories returns the budgeted categories in alphabetical order.
func (b Budgets) Categories() []string {
	out := make([]string, 0, len(b))
	for cat, limit := range b {
		if limit.IsPositive() {
			out = append(out, cat)
		}
	}
	sort.Strings(out)
	return out
}

// Record appends a salary change. A second change on the same date
// replaces the first.
func (h SalaryHistory) Record(date string, amount Money) {
	h[date] = amount
}

// Dates returns the logged dates in chronological order.
func (h SalaryHistory) Dates() []string {
	out := make([]string, 0, len(h))
	for d := range h {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// SetSalary updates the current weekly salary and logs the change.
func (s *Settings) SetSalary(date string, amount Money) {
	if s.SalaryHistory == nil {
		s.SalaryHistory = SalaryHistory{}
	}
	s.Salary = amount
	s.SalaryHistory.Record(date, amount)
}

// SetBudget sets or clears (non-positive amount) a category limit.
func (s *Settings) SetBudget(category string, limit Money) {
	if s.Budgets == nil {
		s.Budgets = Budgets{}
	}
	if !limit.IsPositive() {
		delete(s.Budgets, category)
		return
	}
	s.Budgets[category] = limit
}
