package habit

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
)

// Habit is a tracked habit and its completion history.
type Habit struct {
	ID             int
	Title          string
	GoalPeriod     datekey.Period
	Streak         int // running counter maintained by the store
	CompletedDates []time.Time
	EndDate        *time.Time
	CreatedAt      time.Time
}

// Ended reports whether the habit's lifecycle is complete as of now.
func (h Habit) Ended(now time.Time) bool {
	if h.EndDate == nil || h.EndDate.IsZero() {
		return false
	}
	return datekey.UTCDayNumber(now) >= datekey.UTCDayNumber(*h.EndDate)
}

// FromRecord adapts a loosely shaped record, such as one decoded from a JSON
// export of another client, into a Habit. It accepts both camelCase and
// snake_case keys. Completion dates that cannot be parsed are dropped. ok is
// false only when the record carries no title.
func FromRecord(rec map[string]any, loc *time.Location) (h Habit, ok bool) {
	h.Title = firstString(rec, "title", "name")
	if h.Title == "" {
		return Habit{}, false
	}
	h.ID = toInt(first(rec, "id", "habitId", "habit_id"))
	h.GoalPeriod = datekey.ParsePeriod(firstString(rec, "goalPeriod", "goal_period", "period"))
	h.Streak = max(0, toInt(first(rec, "streak", "currentStreak", "current_streak")))

	if raw, found := firstPresent(rec, "completedDates", "completed_dates", "completions"); found {
		if list, isList := raw.([]any); isList {
			for _, v := range list {
				if d, parsed := datekey.ToStartOfLocalDay(v, loc); parsed {
					h.CompletedDates = append(h.CompletedDates, d)
				}
			}
		}
	}
	if raw, found := firstPresent(rec, "endDate", "end_date"); found {
		if d, parsed := datekey.ToStartOfLocalDay(raw, loc); parsed {
			h.EndDate = &d
		}
	}
	if raw, found := firstPresent(rec, "createdAt", "created_at"); found {
		if d, parsed := datekey.ParseInstant(raw, loc); parsed {
			h.CreatedAt = d
		}
	}
	return h, true
}

// ToRecord is the inverse of FromRecord, using camelCase keys and date keys
// for every date.
func ToRecord(h Habit) map[string]any {
	dates := make([]any, 0, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		dates = append(dates, datekey.Key(d))
	}
	rec := map[string]any{
		"id":             h.ID,
		"title":          h.Title,
		"goalPeriod":     string(h.GoalPeriod),
		"streak":         h.Streak,
		"completedDates": dates,
	}
	if h.EndDate != nil {
		rec["endDate"] = datekey.Key(*h.EndDate)
	}
	if !h.CreatedAt.IsZero() {
		rec["createdAt"] = h.CreatedAt.UTC().Format(time.RFC3339)
	}
	return rec
}

// FromRecords adapts every record that FromRecord accepts.
func FromRecords(recs []map[string]any, loc *time.Location) []Habit {
	out := make([]Habit, 0, len(recs))
	for _, r := range recs {
		if h, ok := FromRecord(r, loc); ok {
			out = append(out, h)
		}
	}
	return out
}

func first(rec map[string]any, keys ...string) any {
	v, _ := firstPresent(rec, keys...)
	return v
}

func firstPresent(rec map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func firstString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return toInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}
