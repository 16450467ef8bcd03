// Package streak computes run lengths over completion dates.
//
// A streak is the number of consecutive period buckets (days, ISO weeks, or
// calendar months) holding at least one completion. Bucketing goes through
// datekey so that the result does not depend on the timezone or time of day
// a completion was recorded at.
package streak

import (
	"slices"
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
)

// BestRunFromIndices returns the longest run of consecutive values in a
// sorted, de-duplicated slice of period indices.
func BestRunFromIndices(sorted []int) int {
	if len(sorted) == 0 {
		return 0
	}
	longest := 1
	run := 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1]+1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// Indices maps dates onto sorted, unique period indices. Zero times are skipped.
func Indices(dates []time.Time, period datekey.Period) []int {
	seen := make(map[int]struct{}, len(dates))
	out := make([]int, 0, len(dates))
	for _, d := range dates {
		if d.IsZero() {
			continue
		}
		idx := datekey.PeriodIndex(d, period)
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	slices.Sort(out)
	return out
}

// BestStreakFromDates returns the best streak ever recorded in dates for the
// given goal period.
func BestStreakFromDates(dates []time.Time, period datekey.Period) int {
	return BestRunFromIndices(Indices(dates, period))
}

// LongestGlobal returns the longest run of consecutive days on which any of
// the date sets has a completion. Each set's own goal period is ignored.
func LongestGlobal(dateSets ...[]time.Time) int {
	var all []time.Time
	for _, set := range dateSets {
		all = append(all, set...)
	}
	return BestStreakFromDates(all, datekey.Day)
}

// Current returns the running streak ending in the period containing now.
// The streak is not broken if the most recent completion is in the previous
// period: the user may simply not have logged the current one yet.
func Current(dates []time.Time, period datekey.Period, now time.Time) int {
	idx := Indices(dates, period)
	if len(idx) == 0 {
		return 0
	}
	nowIdx := datekey.PeriodIndex(now, period)
	last := len(idx) - 1
	// Completions logged in the future do not extend the streak.
	for last >= 0 && idx[last] > nowIdx {
		last--
	}
	if last < 0 || idx[last] < nowIdx-1 {
		return 0
	}
	current := 1
	for i := last - 1; i >= 0; i-- {
		if idx[i] != idx[i+1]-1 {
			break
		}
		current++
	}
	return current
}

// Info holds current and longest streak values.
type Info struct {
	Current int
	Longest int
}

// Compute returns both the running and the best streak for dates. Longest is
// never smaller than Current.
func Compute(dates []time.Time, period datekey.Period, now time.Time) Info {
	info := Info{
		Current: Current(dates, period, now),
		Longest: BestStreakFromDates(dates, period),
	}
	if info.Current > info.Longest {
		info.Longest = info.Current
	}
	return info
}
