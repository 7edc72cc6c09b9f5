package core

import "sort"

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// SortedCategories returns the categories of a spend map in alphabetical order.
func SortedCategories(m map[string]Money) []string {
	return sortedKeys(m)
}
