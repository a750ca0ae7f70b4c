package tracking

import (
	"math"
	"sort"
)

// DaySummary is a day's entries in time order plus their reduced total.
type DaySummary[T any] struct {
	Entries []T
	Total   float64
}

// SummarizeDay sorts entries ascending by time of day and sums quantity.
// Entries whose time does not parse sort last, in their original order.
func SummarizeDay[T any](entries []T, timeOf func(T) string, quantity func(T) float64) DaySummary[T] {
	sorted := make([]T, len(entries))
	copy(sorted, entries)

	key := func(e T) int {
		if secs, ok := secondsOfDay(timeOf(e)); ok {
			return secs
		}
		return math.MaxInt
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) < key(sorted[j])
	})

	var total float64
	for _, e := range sorted {
		total += quantity(e)
	}
	return DaySummary[T]{Entries: sorted, Total: total}
}
