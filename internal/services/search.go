package services

import (
	"sort"
	"strings"

	"finanzas/internal/core"
)

// Search returns the records whose field values contain query, ignoring
// case. Input order is kept.
func Search(records []core.Record, query string) []core.Record {
	needle := strings.ToUpper(query)
	var out []core.Record
	for _, r := range records {
		haystack := strings.ToUpper(strings.Join(r.FieldValues(), " "))
		if strings.Contains(haystack, needle) {
			out = append(out, r)
		}
	}
	return out
}

// SummarizeByName groups the unpaid records of a month by normalized name,
// largest total first.
func SummarizeByName(records []core.Record, key core.MonthKey) []core.NameTotal {
	index := make(map[string]int)
	var out []core.NameTotal
	for _, r := range records {
		if r.IsPaid() || !key.Contains(r.Date) {
			continue
		}
		name := core.NormalizeName(r.Name)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, core.NameTotal{Name: name, Total: core.Zero})
		}
		out[i].Total = out[i].Total.Add(r.Amount)
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Name < out[j].Name
	})
	return out
}
