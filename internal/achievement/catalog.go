// Package achievement turns habit history into achievement metrics and badge
// unlock states, and validates the three equipped-badge slots.
//
// The definition table is fixed at compile time. Lookups return copies so the
// table can never be mutated by callers.
package achievement

import "slices"

// Metric identifies the aggregate an achievement measures.
type Metric string

const (
	MetricLongestCurrentStreak  Metric = "longestCurrentStreak"
	MetricLongestHabitStreak    Metric = "longestHabitStreak"
	MetricTotalHabitCompletions Metric = "totalHabitCompletions"
	MetricTotalHabitsAchieved   Metric = "totalHabitsAchieved"
	MetricAccountAgeMonths      Metric = "accountAgeMonths"
)

// Achievement IDs as they appear in serialized badge IDs.
const (
	LongestCurrentStreak  = "longest_current_streak"
	LongestHabitStreak    = "longest_habit_streak"
	TotalHabitCompletions = "total_habit_completions"
	TotalHabitsAchieved   = "total_habits_achieved"
	AccountAge            = "account_age"
)

// Definition describes one achievement and its milestone thresholds, which
// are strictly increasing.
type Definition struct {
	ID         string
	Title      string
	SlotTitle  string
	Metric     Metric
	Milestones []int
}

var streakMilestones = []int{3, 7, 14, 30, 60, 100, 180, 365}

var definitions = [...]Definition{
	{
		ID:         LongestCurrentStreak,
		Title:      "Longest Current Streak",
		SlotTitle:  "Streak",
		Metric:     MetricLongestCurrentStreak,
		Milestones: streakMilestones,
	},
	{
		ID:         LongestHabitStreak,
		Title:      "Longest Habit Streak",
		SlotTitle:  "Habit Streak",
		Metric:     MetricLongestHabitStreak,
		Milestones: streakMilestones,
	},
	{
		ID:         TotalHabitCompletions,
		Title:      "Total Habit Completions",
		SlotTitle:  "Completions",
		Metric:     MetricTotalHabitCompletions,
		Milestones: []int{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	},
	{
		ID:         TotalHabitsAchieved,
		Title:      "Habits Achieved",
		SlotTitle:  "Achieved",
		Metric:     MetricTotalHabitsAchieved,
		Milestones: []int{1, 3, 5, 10, 25, 50},
	},
	{
		ID:         AccountAge,
		Title:      "Account Age",
		SlotTitle:  "Veteran",
		Metric:     MetricAccountAgeMonths,
		Milestones: []int{1, 3, 6, 12, 24, 36, 60},
	},
}

// Definitions returns a copy of the achievement table in display order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	for i, d := range definitions {
		out[i] = d.clone()
	}
	return out
}

// Lookup returns the definition with the given achievement ID.
func Lookup(id string) (Definition, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return d.clone(), true
		}
	}
	return Definition{}, false
}

// HasMilestone reports whether m is one of d's canonical milestones.
func (d Definition) HasMilestone(m int) bool {
	return slices.Contains(d.Milestones, m)
}

func (d Definition) clone() Definition {
	d.Milestones = slices.Clone(d.Milestones)
	return d
}

// Variant names the visual tier of a milestone.
type Variant string

const (
	VariantBronze   Variant = "bronze"
	VariantSilver   Variant = "silver"
	VariantGold     Variant = "gold"
	VariantPlatinum Variant = "platinum"
	VariantDiamond  Variant = "diamond"
)

var variants = [...]Variant{VariantBronze, VariantSilver, VariantGold, VariantPlatinum, VariantDiamond}

// variantFor spreads a definition's milestones evenly over the tiers, so the
// first milestone is always bronze and the last always diamond.
func variantFor(index, count int) Variant {
	if count <= 1 {
		return variants[len(variants)-1]
	}
	tier := index * (len(variants) - 1) / (count - 1)
	return variants[tier]
}
