// Package util holds small generic helpers shared across the chomsky packages.
package util

import (
	"sort"
	"strings"
)

// MakeTextList gives a readable list of the items, joined with commas and a
// final "and". If quoted is true, each item is surrounded by double quotes.
func MakeTextList(items []string, quoted bool) string {
	if len(items) < 1 {
		return ""
	}

	withQuotes := make([]string, len(items))
	for i := range items {
		if quoted {
			withQuotes[i] = "\"" + items[i] + "\""
		} else {
			withQuotes[i] = items[i]
		}
	}

	if len(withQuotes) == 1 {
		return withQuotes[0]
	} else if len(withQuotes) == 2 {
		return withQuotes[0] + " and " + withQuotes[1]
	}

	// if its more than two, use an oxford comma
	withQuotes[len(withQuotes)-1] = "and " + withQuotes[len(withQuotes)-1]
	return strings.Join(withQuotes, ", ")
}

// SortBy returns a sorted copy of sl using less to compare elements. The sort
// is stable.
func SortBy[E any](sl []E, less func(l, r E) bool) []E {
	sorted := make([]E, len(sl))
	copy(sorted, sl)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}
