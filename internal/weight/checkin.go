package weight

import (
	"sort"
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
)

// CheckIn is one logged body-weight sample.
type CheckIn struct {
	LoggedAt time.Time `json:"loggedAt"`
	DateKey  string    `json:"dateKey"`
	Weight   float64   `json:"weight"`
	Unit     Unit      `json:"unit"`
}

// NewCheckIn records weight at the given instant.
func NewCheckIn(w float64, u Unit, at time.Time) CheckIn {
	return CheckIn{
		LoggedAt: at,
		DateKey:  datekey.Key(at),
		Weight:   round1(w),
		Unit:     u.OrDefault(),
	}
}

// NormalizeCheckIns converts every sample to unit, rounds weights to one
// decimal, drops unusable samples and orders the rest newest first. Samples
// that share a timestamp keep their relative order.
func NormalizeCheckIns(logs []CheckIn, unit Unit) []CheckIn {
	unit = unit.OrDefault()
	out := make([]CheckIn, 0, len(logs))
	for _, c := range logs {
		from := unit
		if parsed, ok := ParseUnit(string(c.Unit)); ok {
			from = parsed
		}
		if !ValidWeight(c.Weight, from) {
			continue
		}
		w := round1(Convert(c.Weight, from, unit))
		if !ValidWeight(w, unit) {
			continue
		}
		if c.LoggedAt.IsZero() {
			d, ok := datekey.ToStartOfLocalDay(c.DateKey, time.Local)
			if !ok {
				continue
			}
			c.LoggedAt = d
		}
		if c.DateKey == "" {
			c.DateKey = datekey.Key(c.LoggedAt)
		}
		c.Weight = w
		c.Unit = unit
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LoggedAt.After(out[j].LoggedAt)
	})
	return out
}

// CheckInsFromAny adapts a decoded JSON list of check-in objects.
func CheckInsFromAny(v any, loc *time.Location) []CheckIn {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []CheckIn
	for _, item := range list {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		w, ok := toFloat(first(rec, "weight", "value"))
		if !ok {
			continue
		}
		c := CheckIn{Weight: w}
		if u, ok := ParseUnit(firstString(rec, "unit", "weightUnit", "weight_unit")); ok {
			c.Unit = u
		}
		if at, ok := datekey.ParseInstant(first(rec, "loggedAt", "logged_at", "createdAt"), loc); ok {
			c.LoggedAt = at
		}
		c.DateKey = firstString(rec, "dateKey", "date_key", "date")
		if c.LoggedAt.IsZero() {
			if d, ok := datekey.ToStartOfLocalDay(c.DateKey, loc); ok {
				c.LoggedAt = d
			}
		}
		if c.LoggedAt.IsZero() {
			continue
		}
		if c.DateKey == "" {
			c.DateKey = datekey.Key(c.LoggedAt)
		}
		out = append(out, c)
	}
	return out
}
