// Package datekey canonicalizes date-like values into stable day numbers and
// streak period buckets.
//
// Every value is first truncated to midnight of its local calendar day and
// then mapped onto the UTC epoch day with the same calendar date, so that
// "same day" and "next day" comparisons never depend on DST shifts or on the
// timezone a timestamp was captured in.
package datekey

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// KeyLayout is the canonical YYYY-MM-DD date key layout.
const KeyLayout = "2006-01-02"

const secondsPerDay = 86400

// Period is the bucket size a habit counts completions in.
type Period string

const (
	Day   Period = "day"
	Week  Period = "week"
	Month Period = "month"
)

// ParsePeriod maps s onto a Period. Unknown values fall back to Day.
func ParsePeriod(s string) Period {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case Week:
		return Week
	case Month:
		return Month
	default:
		return Day
	}
}

// Valid reports whether p is one of the known periods.
func (p Period) Valid() bool {
	return p == Day || p == Week || p == Month
}

// layouts accepted for string inputs, tried in order. Layouts without a zone
// are interpreted in the caller's location.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	KeyLayout,
}

// StartOfLocalDay truncates t to midnight of its calendar day in t's location.
func StartOfLocalDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ToStartOfLocalDay accepts a time.Time, *time.Time, date or timestamp string,
// or epoch milliseconds, and returns local midnight of that day in loc.
// It reports false when the value cannot be interpreted as a date.
func ToStartOfLocalDay(value any, loc *time.Location) (time.Time, bool) {
	t, ok := ParseInstant(value, loc)
	if !ok {
		return time.Time{}, false
	}
	return StartOfLocalDay(t), true
}

// ParseInstant is ToStartOfLocalDay without the truncation: it returns the
// instant value names, expressed in loc. Date-only strings resolve to local
// midnight.
func ParseInstant(value any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return v.In(loc), true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return ParseInstant(*v, loc)
	case string:
		return parseString(v, loc)
	case json.Number:
		return parseString(v.String(), loc)
	case int:
		return fromMillis(float64(v), loc)
	case int64:
		return fromMillis(float64(v), loc)
	case float64:
		return fromMillis(v, loc)
	default:
		return time.Time{}, false
	}
}

func parseString(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 || layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, loc)
		}
		if err == nil {
			return t.In(loc), true
		}
	}
	if ms, err := strconv.ParseFloat(s, 64); err == nil {
		return fromMillis(ms, loc)
	}
	return time.Time{}, false
}

func fromMillis(ms float64, loc *time.Location) (time.Time, bool) {
	if math.IsNaN(ms) || math.IsInf(ms, 0) {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).In(loc), true
}

// UTCDayNumber returns the UTC epoch day carrying t's local calendar date.
func UTCDayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(floorDiv(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix(), secondsPerDay))
}

// DayNumberOf combines ToStartOfLocalDay and UTCDayNumber.
func DayNumberOf(value any, loc *time.Location) (int, bool) {
	t, ok := ToStartOfLocalDay(value, loc)
	if !ok {
		return 0, false
	}
	return UTCDayNumber(t), true
}

// PeriodIndex returns the bucket t falls into for period p. Week buckets are
// Thursday-anchored so they line up with ISO week numbering; month buckets
// are year*12 + zero-based month.
func PeriodIndex(t time.Time, p Period) int {
	switch p {
	case Week:
		return int(floorDiv(int64(UTCDayNumber(t))+3, 7))
	case Month:
		return t.Year()*12 + int(t.Month()) - 1
	default:
		return UTCDayNumber(t)
	}
}

// PeriodIndexOf combines ToStartOfLocalDay and PeriodIndex.
func PeriodIndexOf(value any, p Period, loc *time.Location) (int, bool) {
	t, ok := ToStartOfLocalDay(value, loc)
	if !ok {
		return 0, false
	}
	return PeriodIndex(t, p), true
}

// FromDayNumber returns UTC midnight of day number n.
func FromDayNumber(n int) time.Time {
	return time.Unix(int64(n)*secondsPerDay, 0).UTC()
}

// Key returns the canonical YYYY-MM-DD key for t's local calendar day.
func Key(t time.Time) string {
	return FromDayNumber(UTCDayNumber(t)).Format(KeyLayout)
}

// KeyOf returns the canonical key for any accepted date-like value.
func KeyOf(value any, loc *time.Location) (string, bool) {
	n, ok := DayNumberOf(value, loc)
	if !ok {
		return "", false
	}
	return FromDayNumber(n).Format(KeyLayout), true
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return UTCDayNumber(b) - UTCDayNumber(a)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
