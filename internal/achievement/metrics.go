package achievement

import (
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
	"github.com/rnwolfe/momentum/internal/habit"
	"github.com/rnwolfe/momentum/internal/streak"
)

// Metrics are the aggregates achievements are measured against.
type Metrics struct {
	LongestCurrentStreak  int
	LongestHabitStreak    int
	TotalHabitCompletions int
	TotalHabitsAchieved   int
	AccountAgeMonths      int
}

// Value returns the aggregate a metric key refers to.
func (m Metrics) Value(key Metric) int {
	switch key {
	case MetricLongestCurrentStreak:
		return m.LongestCurrentStreak
	case MetricLongestHabitStreak:
		return m.LongestHabitStreak
	case MetricTotalHabitCompletions:
		return m.TotalHabitCompletions
	case MetricTotalHabitsAchieved:
		return m.TotalHabitsAchieved
	case MetricAccountAgeMonths:
		return m.AccountAgeMonths
	default:
		return 0
	}
}

// ComputeMetrics derives achievement metrics from habit history.
//
// currentStreak is a running counter kept by the caller; it is treated as a
// lower bound for the global streak, never a ceiling. Account age is measured
// from profileCreatedAt, falling back to authCreatedAt.
func ComputeMetrics(habits []habit.Habit, currentStreak int, profileCreatedAt, authCreatedAt *time.Time, now time.Time) Metrics {
	var m Metrics

	sets := make([][]time.Time, 0, len(habits))
	for _, h := range habits {
		sets = append(sets, h.CompletedDates)

		best := max(h.Streak, streak.BestStreakFromDates(h.CompletedDates, h.GoalPeriod))
		m.LongestHabitStreak = max(m.LongestHabitStreak, best)

		m.TotalHabitCompletions += len(h.CompletedDates)
		if h.Ended(now) {
			m.TotalHabitsAchieved++
		}
	}
	m.LongestCurrentStreak = max(0, currentStreak, streak.LongestGlobal(sets...))

	created := profileCreatedAt
	if created == nil || created.IsZero() {
		created = authCreatedAt
	}
	if created != nil && !created.IsZero() {
		m.AccountAgeMonths = ElapsedMonths(*created, now)
	}
	return m
}

// ElapsedMonths returns the whole months elapsed from created to now in now's
// location. A month only counts once now's day of month reaches created's.
func ElapsedMonths(created, now time.Time) int {
	c := datekey.StartOfLocalDay(created.In(now.Location()))
	months := (now.Year()-c.Year())*12 + int(now.Month()) - int(c.Month())
	if now.Day() < c.Day() {
		months--
	}
	return max(0, months)
}
