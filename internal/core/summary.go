package core

// MonthView aggregates the unpaid records of one month.
type MonthView struct {
	Key             MonthKey
	Total           Money
	ByDay           map[string][]Record
	SpentByCategory map[string]Money
}

// Days returns the dates of ByDay in ascending order.
func (v MonthView) Days() []string {
	return sortedKeys(v.ByDay)
}

// Balance is the income against expenses of one month.
type Balance struct {
	Income   Money
	Expenses Money
	Balance  Money
	Weeks    int
}

// NameTotal is the unpaid spend of a month under one normalized name.
type NameTotal struct {
	Name  string
	Total Money
	Count int
}

// Band classifies a budget usage ratio.
type Band string

const (
	BandNone    Band = "NONE"
	BandOK      Band = "OK"
	BandWarning Band = "WARNING"
	BandOver    Band = "OVER"
)
