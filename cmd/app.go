package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rnwolfe/momentum/internal/achievement"
	"github.com/rnwolfe/momentum/internal/config"
	"github.com/rnwolfe/momentum/internal/datekey"
	"github.com/rnwolfe/momentum/internal/habit"
	"github.com/rnwolfe/momentum/internal/journey"
	"github.com/rnwolfe/momentum/internal/logging"
	"github.com/rnwolfe/momentum/internal/store"
	"github.com/rnwolfe/momentum/internal/streak"
	"github.com/rnwolfe/momentum/internal/weight"
)

// nowFunc is the clock used by every command. Tests replace it.
var nowFunc = time.Now

// app bundles what a command needs: config, an open store and the user
// the stored data belongs to.
type app struct {
	cfg    *config.Config
	db     *store.DB
	loc    *time.Location
	userID string
	now    time.Time
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	db, err := store.Open()
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	loc := cfg.Location()
	return &app{
		cfg:    cfg,
		db:     db,
		loc:    loc,
		userID: journey.ResolveUserID("", cfg.User.ID, ""),
		now:    nowFunc().In(loc),
	}, nil
}

func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		logging.Warn("closing store", "err", err)
	}
}

func (a *app) habits() *habit.Store {
	return habit.NewStore(a.db.Conn(), a.loc)
}

func profileCreatedKey(userID string) string { return "profile_created_at:" + userID }

// getJSON reads key into v. A missing key leaves v untouched.
func (a *app) getJSON(key string, v any) (bool, error) {
	raw, err := a.db.Get(key)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		logging.Warn("ignoring malformed stored value", "key", key, "err", err)
		return false, nil
	}
	return true, nil
}

func (a *app) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return a.db.Set(key, string(data))
}

// profileCreatedAt returns when the profile was created, if recorded.
func (a *app) profileCreatedAt() *time.Time {
	raw, err := a.db.Get(profileCreatedKey(a.userID))
	if err != nil {
		return nil
	}
	t, ok := datekey.ParseInstant(raw, a.loc)
	if !ok {
		return nil
	}
	return &t
}

// ensureProfile records the profile creation time the first time it runs.
func (a *app) ensureProfile() (time.Time, error) {
	if t := a.profileCreatedAt(); t != nil {
		return *t, nil
	}
	if err := a.db.Set(profileCreatedKey(a.userID), a.now.UTC().Format(time.RFC3339)); err != nil {
		return time.Time{}, fmt.Errorf("recording profile: %w", err)
	}
	return a.now, nil
}

func (a *app) loadState() (weight.State, error) {
	raw, err := a.db.Get(journey.StateKey(a.userID))
	if errors.Is(err, store.ErrNotFound) {
		return a.defaultState(), nil
	}
	if err != nil {
		return weight.State{}, err
	}
	return weight.ParseState([]byte(raw), a.loc), nil
}

func (a *app) defaultState() weight.State {
	unit, _ := weight.ParseUnit(a.cfg.Weight.Unit)
	return weight.State{
		Unit:            unit.OrDefault(),
		CurrentBodyType: weight.ResolvePreset(a.cfg.Weight.BodyType).Key,
		TargetBodyType:  weight.ResolvePreset(a.cfg.Weight.BodyType).Key,
		GoalMode:        weight.GoalDuration,
	}
}

func (a *app) saveState(s weight.State) error {
	return a.setJSON(journey.StateKey(a.userID), s)
}

func (a *app) clearState() error {
	return a.db.Delete(journey.StateKey(a.userID))
}

func (a *app) loadCheckIns(unit weight.Unit) ([]weight.CheckIn, error) {
	var logs []weight.CheckIn
	if _, err := a.getJSON(journey.CheckInsKey(a.userID), &logs); err != nil {
		return nil, err
	}
	return weight.NormalizeCheckIns(logs, unit), nil
}

func (a *app) saveCheckIns(logs []weight.CheckIn) error {
	return a.setJSON(journey.CheckInsKey(a.userID), logs)
}

func (a *app) loadHistory() ([]journey.Entry, error) {
	raw, err := a.db.Get(journey.HistoryKey(a.userID))
	if errors.Is(err, store.ErrNotFound) {
		return []journey.Entry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return journey.ParseHistoryPayload([]byte(raw)), nil
}

func (a *app) saveHistory(entries []journey.Entry) error {
	data, err := journey.MarshalHistory(entries)
	if err != nil {
		return fmt.Errorf("encoding journey history: %w", err)
	}
	return a.db.Set(journey.HistoryKey(a.userID), string(data))
}

func (a *app) loadSlots() (achievement.Slots, error) {
	raw, err := a.db.Get(journey.BadgeSlotsKey(a.userID))
	if errors.Is(err, store.ErrNotFound) {
		return achievement.Slots{}, nil
	}
	if err != nil {
		return achievement.Slots{}, err
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logging.Warn("ignoring malformed badge slots", "err", err)
		return achievement.Slots{}, nil
	}
	return achievement.NormalizeSlots(v, achievement.Slots{}), nil
}

func (a *app) saveSlots(s achievement.Slots) error {
	return a.setJSON(journey.BadgeSlotsKey(a.userID), s)
}

// plan computes the live plan, nil when the state is incomplete.
func (a *app) plan(s weight.State) *weight.Plan {
	return weight.ComputePlan(weight.InputsFromState(s, a.now))
}

// overallStreak is the running streak across every habit at day
// granularity.
func overallStreak(habits []habit.Habit, now time.Time) int {
	var all []time.Time
	for _, h := range habits {
		all = append(all, h.CompletedDates...)
	}
	return streak.Current(all, datekey.Day, now)
}

func (a *app) metrics() (achievement.Metrics, []habit.Habit, error) {
	habits, err := a.habits().List()
	if err != nil {
		return achievement.Metrics{}, nil, err
	}
	m := achievement.ComputeMetrics(habits, overallStreak(habits, a.now), a.profileCreatedAt(), nil, a.now)
	return m, habits, nil
}
