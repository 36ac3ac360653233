// Package stats contains statistics calculations and reporting.
package stats

import "sort"

// SlowestFacts returns up to n correctly answered facts by longest answer time.
func SlowestFacts(facts []Fact, n int) []Fact {
	if n <= 0 || len(facts) == 0 {
		return nil
	}
	items := make([]Fact, 0, len(facts))
	for _, f := range facts {
		if f.Correct > 0 {
			items = append(items, f)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Slowest == items[j].Slowest {
			return factLess(items[i], items[j])
		}
		return items[i].Slowest > items[j].Slowest
	})
	return limit(items, n)
}
