package achievement

import "strconv"

// MilestoneLabel renders a milestone for display, e.g. "14 days",
// "1 habit completion" or "3 years". Account-age milestones of a year or
// more are shown in whole years.
func MilestoneLabel(metric Metric, milestone int) string {
	switch metric {
	case MetricLongestCurrentStreak, MetricLongestHabitStreak:
		return plural(milestone, "day", "days")
	case MetricTotalHabitCompletions:
		return plural(milestone, "habit completion", "habit completions")
	case MetricTotalHabitsAchieved:
		return plural(milestone, "habit achieved", "habits achieved")
	case MetricAccountAgeMonths:
		if milestone >= 12 {
			return plural(milestone/12, "year", "years")
		}
		return plural(milestone, "month", "months")
	default:
		return strconv.Itoa(milestone)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
