package weight

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
)

// GoalMode selects how a journey deadline is expressed.
type GoalMode string

const (
	GoalDuration GoalMode = "duration"
	GoalDate     GoalMode = "date"
)

// State is the user's planning input. Weights are in Unit; zero means unset.
type State struct {
	StartingWeight  float64    `json:"startingWeight,omitempty"`
	CurrentWeight   float64    `json:"currentWeight"`
	TargetWeight    float64    `json:"targetWeight"`
	Unit            Unit       `json:"weightUnit"`
	CurrentBodyType string     `json:"currentBodyType"`
	TargetBodyType  string     `json:"targetBodyType"`
	GoalMode        GoalMode   `json:"journeyGoalMode"`
	DurationWeeks   int        `json:"journeyDurationWeeks,omitempty"`
	GoalDate        *time.Time `json:"journeyGoalDate,omitempty"`
}

// Ready reports whether the state carries enough to compute a plan.
func (s State) Ready() bool {
	return ValidWeight(s.CurrentWeight, s.Unit) && ValidWeight(s.TargetWeight, s.Unit)
}

// AtTarget reports whether the current weight is within rounding distance of
// the target.
func (s State) AtTarget() bool {
	return s.Ready() && math.Abs(ToKg(s.CurrentWeight-s.TargetWeight, s.Unit)) < onTargetKg
}

// InputsFromState maps a planning state onto plan inputs as of now.
func InputsFromState(s State, now time.Time) Inputs {
	in := Inputs{
		StartingWeight:  s.StartingWeight,
		CurrentWeight:   s.CurrentWeight,
		TargetWeight:    s.TargetWeight,
		Unit:            s.Unit,
		CurrentBodyType: s.CurrentBodyType,
		TargetBodyType:  s.TargetBodyType,
		Now:             now,
	}
	switch s.GoalMode {
	case GoalDate:
		in.EndDate = s.GoalDate
	default:
		if s.DurationWeeks > 0 {
			in.DurationDays = s.DurationWeeks * 7
		}
	}
	return in
}

// extractor pulls one candidate weight out of a loosely shaped record.
type extractor func(rec map[string]any, loc *time.Location) (float64, bool)

func field(key string) extractor {
	return func(rec map[string]any, _ *time.Location) (float64, bool) {
		return toFloat(rec[key])
	}
}

func checkIn(pick func([]CheckIn) CheckIn) extractor {
	return func(rec map[string]any, loc *time.Location) (float64, bool) {
		raw, ok := firstPresent(rec, "checkIns", "check_ins", "logs")
		if !ok {
			return 0, false
		}
		unit, _ := ParseUnit(firstString(rec, "weightUnit", "weight_unit", "unit"))
		logs := NormalizeCheckIns(CheckInsFromAny(raw, loc), unit)
		if len(logs) == 0 {
			return 0, false
		}
		return pick(logs).Weight, true
	}
}

func newest(logs []CheckIn) CheckIn { return logs[0] }
func oldest(logs []CheckIn) CheckIn { return logs[len(logs)-1] }

// Candidate sources per weight field, in precedence order.
var (
	currentWeightSources = []extractor{
		field("currentWeight"),
		field("current_weight"),
		field("weight"),
		checkIn(newest),
	}
	targetWeightSources = []extractor{
		field("targetWeight"),
		field("target_weight"),
		field("goalWeight"),
		field("goal_weight"),
	}
	startingWeightSources = []extractor{
		field("startingWeight"),
		field("starting_weight"),
		field("startWeight"),
		checkIn(oldest),
	}
)

// resolveWeight returns the first valid weight any source yields.
func resolveWeight(rec map[string]any, loc *time.Location, unit Unit, sources []extractor) float64 {
	for _, src := range sources {
		if w, ok := src(rec, loc); ok && ValidWeight(w, unit) {
			return w
		}
	}
	return 0
}

// StateFromRecord adapts a decoded JSON object into a State. Fields that are
// missing or invalid are left unset.
func StateFromRecord(rec map[string]any, loc *time.Location) State {
	if rec == nil {
		return State{}
	}
	unit, _ := ParseUnit(firstString(rec, "weightUnit", "weight_unit", "unit"))
	unit = unit.OrDefault()
	s := State{
		Unit:            unit,
		CurrentWeight:   resolveWeight(rec, loc, unit, currentWeightSources),
		TargetWeight:    resolveWeight(rec, loc, unit, targetWeightSources),
		StartingWeight:  resolveWeight(rec, loc, unit, startingWeightSources),
		CurrentBodyType: firstString(rec, "currentBodyType", "current_body_type", "bodyType"),
		TargetBodyType:  firstString(rec, "targetBodyType", "target_body_type"),
	}

	switch strings.ToLower(firstString(rec, "journeyGoalMode", "journey_goal_mode", "goalMode")) {
	case string(GoalDate):
		s.GoalMode = GoalDate
	default:
		s.GoalMode = GoalDuration
	}
	if w, ok := toFloat(first(rec, "journeyDurationWeeks", "journey_duration_weeks", "durationWeeks")); ok && w > 0 {
		s.DurationWeeks = int(math.Round(w))
	}
	if d, ok := datekey.ToStartOfLocalDay(first(rec, "journeyGoalDate", "journey_goal_date", "goalDate"), loc); ok {
		s.GoalDate = &d
	}
	return s
}

// ParseState decodes a stored state payload. Malformed payloads yield the
// zero State.
func ParseState(data []byte, loc *time.Location) State {
	var rec map[string]any
	if err := json.Unmarshal(data, &rec); err != nil {
		return State{}
	}
	return StateFromRecord(rec, loc)
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

func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
