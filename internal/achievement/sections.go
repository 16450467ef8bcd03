package achievement

// Section groups the badges of one achievement.
type Section struct {
	Definition
	MetricValue   int
	Badges        []Badge
	UnlockedCount int
	// NextMilestone is the lowest locked milestone, or 0 when all are unlocked.
	NextMilestone int
}

// BuildSections expands metrics into one section per achievement, with one
// badge per milestone. Slots are normalized before equipped positions are
// resolved.
func BuildSections(metrics Metrics, slots Slots) []Section {
	slots = NormalizeSlots(slots, Slots{})
	defs := Definitions()
	sections := make([]Section, 0, len(defs))
	for _, d := range defs {
		value := metrics.Value(d.Metric)
		sec := Section{
			Definition:  d,
			MetricValue: value,
			Badges:      make([]Badge, 0, len(d.Milestones)),
		}
		for i, milestone := range d.Milestones {
			id := BadgeID{AchievementID: d.ID, Milestone: milestone}
			unlocked := value >= milestone
			if unlocked {
				sec.UnlockedCount++
			} else if sec.NextMilestone == 0 {
				sec.NextMilestone = milestone
			}
			sec.Badges = append(sec.Badges, Badge{
				ID:             id,
				AchievementID:  d.ID,
				Milestone:      milestone,
				MilestoneLabel: MilestoneLabel(d.Metric, milestone),
				Variant:        variantFor(i, len(d.Milestones)),
				Unlocked:       unlocked,
				MetricValue:    value,
				EquippedSlots:  slots.Positions(id),
			})
		}
		sections = append(sections, sec)
	}
	return sections
}

// UnlockedBadges flattens sections into the badges that can be equipped.
func UnlockedBadges(sections []Section) []Badge {
	var out []Badge
	for _, s := range sections {
		for _, b := range s.Badges {
			if b.Unlocked {
				out = append(out, b)
			}
		}
	}
	return out
}
