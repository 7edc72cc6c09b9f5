package core

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_UnmarshalLenient(t *testing.T) {
	raw := `{
		"salary": "450.5",
		"salary_history": {"2024-01-01": 400, "2024-02-01": "oops"},
		"budgets": {"FOOD": 300, "FUN": -10},
		"savings_goals": [{"name": "Trip", "target": 1000}]
	}`

	var s Settings
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.Equal(t, "450.5", s.Salary.String())
	assert.Equal(t, "400", s.SalaryHistory["2024-01-01"].String())
	assert.True(t, s.SalaryHistory["2024-02-01"].IsZero())
	assert.Equal(t, []string{"2024-01-01", "2024-02-01"}, s.SalaryHistory.Dates())
	assert.Equal(t, []string{"FOOD"}, s.Budgets.Categories())
	assert.JSONEq(t, `[{"name": "Trip", "target": 1000}]`, string(s.SavingsGoals))
}

func TestSettings_Budgets(t *testing.T) {
	s := DefaultSettings()
	s.SetBudget("FOOD", decimal.NewFromInt(100))
	s.SetBudget("FUN", decimal.NewFromInt(50))

	limit, ok := s.Budgets.Limit("FOOD")
	require.True(t, ok)
	assert.Equal(t, "100", limit.String())

	s.SetBudget("FUN", Zero)
	_, ok = s.Budgets.Limit("FUN")
	assert.False(t, ok)
	_, ok = s.Budgets.Limit("TRAVEL")
	assert.False(t, ok)
}

func TestSettings_SetSalary(t *testing.T) {
	var s Settings
	s.SetSalary("2024-03-01", decimal.NewFromInt(500))
	s.SetSalary("2024-01-01", decimal.NewFromInt(450))

	// The latest change wins even when it is dated earlier.
	assert.Equal(t, "450", s.Salary.String())
	assert.Equal(t, []string{"2024-01-01", "2024-03-01"}, s.SalaryHistory.Dates())
}

func TestSettings_MarshalRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.SetSalary("2024-03-01", decimal.RequireFromString("512.25"))
	s.SetBudget("FOOD", decimal.NewFromInt(300))

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"salary": 512.25,
		"salary_history": {"2024-03-01": 512.25},
		"budgets": {"FOOD": 300},
		"savings_goals": []
	}`, string(data))
}
