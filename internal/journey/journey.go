// Package journey snapshots weight journeys and keeps their history list
// canonical.
package journey

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rnwolfe/momentum/internal/datekey"
	"github.com/rnwolfe/momentum/internal/weight"
)

// CurrentID is the fixed id of the live journey entry.
const CurrentID = "current-journey"

// Status of a journey entry.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Reasons a journey is closed.
const (
	ReasonAchieved  = "achieved"
	ReasonAbandoned = "abandoned"
)

// Entry is a snapshot of one weight journey with the plan frozen at the time
// it was taken.
type Entry struct {
	ID              string          `json:"id"`
	Status          Status          `json:"status"`
	CompletedReason string          `json:"completedReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	Unit            weight.Unit     `json:"unit"`
	StartingWeight  float64         `json:"startingWeight"`
	CurrentWeight   float64         `json:"currentWeight"`
	TargetWeight    float64         `json:"targetWeight"`
	CurrentBodyType string          `json:"currentBodyType"`
	TargetBodyType  string          `json:"targetBodyType"`
	GoalMode        weight.GoalMode `json:"journeyGoalMode"`
	DurationWeeks   int             `json:"journeyDurationWeeks,omitempty"`
	GoalDate        *time.Time      `json:"journeyGoalDate,omitempty"`
	weight.Plan
	CheckIns []weight.CheckIn `json:"checkIns"`
}

// UnmarshalJSON accepts timestamps as RFC 3339 strings, date keys or epoch
// milliseconds. Unparseable timestamps are left zero. Check-ins are read
// leniently; a malformed sample is dropped without losing the entry.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type plain Entry
	var aux struct {
		plain
		CreatedAt   any `json:"createdAt"`
		CompletedAt any `json:"completedAt"`
		GoalDate    any `json:"journeyGoalDate"`
		CheckIns    any `json:"checkIns"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*e = Entry(aux.plain)
	e.CreatedAt, _ = datekey.ParseInstant(aux.CreatedAt, time.Local)
	e.CompletedAt = nil
	if aux.CompletedAt != nil {
		// A present but unparseable value is kept as a zero time so the
		// entry fails validation.
		t, _ := datekey.ParseInstant(aux.CompletedAt, time.Local)
		e.CompletedAt = &t
	}
	e.CheckIns = weight.CheckInsFromAny(aux.CheckIns, time.Local)
	e.GoalDate = nil
	if d, ok := datekey.ToStartOfLocalDay(aux.GoalDate, time.Local); ok {
		e.GoalDate = &d
	}
	return nil
}

// SortTime is completedAt when set, else createdAt.
func (e Entry) SortTime() time.Time {
	if e.CompletedAt != nil {
		return *e.CompletedAt
	}
	return e.CreatedAt
}

func (e Entry) valid() bool {
	if strings.TrimSpace(e.ID) == "" || e.CreatedAt.IsZero() {
		return false
	}
	if e.CompletedAt != nil && e.CompletedAt.IsZero() {
		return false
	}
	return e.Status == StatusActive || e.Status == StatusCompleted
}

// HasJourneyState reports whether s describes a journey worth tracking.
func HasJourneyState(s weight.State) bool {
	return s.Ready()
}

// BuildCurrentEntry wraps the live state and plan as the active entry. It
// returns nil when the state has no journey.
func BuildCurrentEntry(s weight.State, plan *weight.Plan, logs []weight.CheckIn, now time.Time) *Entry {
	if !HasJourneyState(s) {
		return nil
	}
	e := snapshot(s, plan, logs, now)
	e.ID = CurrentID
	e.Status = StatusActive
	return &e
}

// CreateCompletedEntry freezes the journey as finished at completedAt with a
// fresh id.
func CreateCompletedEntry(s weight.State, plan *weight.Plan, logs []weight.CheckIn, completedAt time.Time, reason string) Entry {
	e := snapshot(s, plan, logs, completedAt)
	e.ID = uuid.NewString()
	e.Status = StatusCompleted
	e.CompletedReason = strings.TrimSpace(reason)
	at := completedAt
	e.CompletedAt = &at
	return e
}

func snapshot(s weight.State, plan *weight.Plan, logs []weight.CheckIn, now time.Time) Entry {
	unit := s.Unit.OrDefault()
	e := Entry{
		Unit:            unit,
		StartingWeight:  s.StartingWeight,
		CurrentWeight:   s.CurrentWeight,
		TargetWeight:    s.TargetWeight,
		CurrentBodyType: weight.ResolvePreset(s.CurrentBodyType).Key,
		TargetBodyType:  weight.ResolvePreset(s.TargetBodyType).Key,
		GoalMode:        s.GoalMode,
		DurationWeeks:   s.DurationWeeks,
		GoalDate:        s.GoalDate,
		CheckIns:        weight.NormalizeCheckIns(logs, unit),
		CreatedAt:       now,
	}
	if e.StartingWeight <= 0 {
		e.StartingWeight = e.CurrentWeight
	}
	if e.GoalMode == "" {
		e.GoalMode = weight.GoalDuration
	}
	if plan != nil {
		e.Plan = *plan
	}
	// The journey began with its first check-in when that predates now.
	if n := len(e.CheckIns); n > 0 && e.CheckIns[n-1].LoggedAt.Before(now) {
		e.CreatedAt = e.CheckIns[n-1].LoggedAt
	}
	return e
}

// NormalizeHistory drops invalid entries, keeps the last write for each id at
// the position of its first occurrence, and orders the result newest first.
// Entries with equal timestamps keep their relative order.
func NormalizeHistory(entries []Entry) []Entry {
	index := make(map[string]int, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.valid() {
			continue
		}
		e.ID = strings.TrimSpace(e.ID)
		e.CheckIns = weight.NormalizeCheckIns(e.CheckIns, e.Unit)
		if i, seen := index[e.ID]; seen {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortTime().After(out[j].SortTime())
	})
	return out
}

// ParseHistoryPayload decodes a stored history: a bare array or a
// {"journeys": [...]} wrapper. Anything else yields an empty list, and
// entries that fail to decode are dropped.
func ParseHistoryPayload(data []byte) []Entry {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		var wrapped struct {
			Journeys []json.RawMessage `json:"journeys"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return []Entry{}
		}
		items = wrapped.Journeys
	}
	entries := make([]Entry, 0, len(items))
	for _, raw := range items {
		var e Entry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return NormalizeHistory(entries)
}

// MarshalHistory encodes entries in the {"journeys": [...]} storage shape.
func MarshalHistory(entries []Entry) ([]byte, error) {
	return json.Marshal(struct {
		Journeys []Entry `json:"journeys"`
	}{NormalizeHistory(entries)})
}
