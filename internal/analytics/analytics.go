// Package analytics ranks and groups habit summaries for reporting.
package analytics

import (
	"slices"

	"github.com/mhout/cadence/pkg/habit"
)

// Best returns summaries sorted descending by current streak. The input is
// not modified.
func Best(summaries []habit.Summary) []habit.Summary {
	out := slices.Clone(summaries)
	slices.SortStableFunc(out, func(a, b habit.Summary) int {
		return b.CurrentStreak - a.CurrentStreak
	})
	return out
}

// MostBroken returns summaries sorted descending by break count.
func MostBroken(summaries []habit.Summary) []habit.Summary {
	out := slices.Clone(summaries)
	slices.SortStableFunc(out, func(a, b habit.Summary) int {
		return b.BreakCount - a.BreakCount
	})
	return out
}

// GroupByPeriodicity splits summaries into daily/weekly/monthly groups, each
// sorted best-first. All three keys are always present.
func GroupByPeriodicity(summaries []habit.Summary) map[habit.Periodicity][]habit.Summary {
	groups := map[habit.Periodicity][]habit.Summary{
		habit.Daily:   {},
		habit.Weekly:  {},
		habit.Monthly: {},
	}
	for _, s := range summaries {
		groups[s.Periodicity] = append(groups[s.Periodicity], s)
	}
	for p, group := range groups {
		groups[p] = Best(group)
	}
	return groups
}

// LongestRunning returns summaries sorted descending by longest streak ever
// achieved.
func LongestRunning(summaries []habit.Summary) []habit.Summary {
	out := slices.Clone(summaries)
	slices.SortStableFunc(out, func(a, b habit.Summary) int {
		return b.LongestStreak - a.LongestStreak
	})
	return out
}
