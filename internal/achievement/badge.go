package achievement

import (
	"math"
	"strconv"
	"strings"
)

// BadgeID identifies one milestone of one achievement. The zero value is an
// empty slot.
type BadgeID struct {
	AchievementID string
	Milestone     int
}

// IsZero reports whether id is the empty badge.
func (id BadgeID) IsZero() bool {
	return id.AchievementID == ""
}

// String serializes id as "<achievementId>:<milestone>". The empty badge
// serializes to "".
func (id BadgeID) String() string {
	if id.IsZero() {
		return ""
	}
	return id.AchievementID + ":" + strconv.Itoa(id.Milestone)
}

// Valid reports whether id names a known achievement and one of its
// canonical milestones.
func (id BadgeID) Valid() bool {
	d, ok := Lookup(id.AchievementID)
	return ok && d.HasMilestone(id.Milestone)
}

// MarshalText implements encoding.TextMarshaler.
func (id BadgeID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Invalid IDs decode to
// the empty badge rather than failing.
func (id *BadgeID) UnmarshalText(b []byte) error {
	*id, _ = ParseBadgeID(string(b))
	return nil
}

// ParseBadgeID parses "<achievementId>:<milestone>". Only known achievements
// with a milestone from their canonical list are accepted; any other
// milestone is rejected even when numerically plausible.
func ParseBadgeID(s string) (BadgeID, bool) {
	s = strings.TrimSpace(s)
	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return BadgeID{}, false
	}
	achievementID := s[:i]
	f, err := strconv.ParseFloat(s[i+1:], 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return BadgeID{}, false
	}
	id := BadgeID{AchievementID: achievementID, Milestone: int(f)}
	if !id.Valid() {
		return BadgeID{}, false
	}
	return id, true
}

// SanitizeBadgeID returns the canonical form of s, or "" when s is not a
// valid badge ID.
func SanitizeBadgeID(s string) string {
	id, ok := ParseBadgeID(s)
	if !ok {
		return ""
	}
	return id.String()
}

// Badge is the derived unlock state of one milestone.
type Badge struct {
	ID             BadgeID
	AchievementID  string
	Milestone      int
	MilestoneLabel string
	Variant        Variant
	Unlocked       bool
	MetricValue    int
	// EquippedSlots holds the 1-based slots this badge occupies.
	EquippedSlots []int
}

// Equipped reports whether the badge occupies at least one slot.
func (b Badge) Equipped() bool {
	return len(b.EquippedSlots) > 0
}
