package cmd

import (
	"strings"
	"testing"
	"time"

	"github.com/rnwolfe/momentum/internal/journey"
	"github.com/rnwolfe/momentum/internal/weight"
)

func resetWeightFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		setStart, setCurrent, setTarget = 0, 0, 0
		setUnit, logUnit = "", ""
		setBody, setTargetBody = "", ""
		setWeeks = 0
		setBy.reset()
		finishReason = journey.ReasonAchieved
		historyJSON = false
	}
	reset()
	t.Cleanup(reset)
}

func loadWeightState(t *testing.T) weight.State {
	t.Helper()
	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp: %v", err)
	}
	defer a.Close()
	s, err := a.loadState()
	if err != nil {
		t.Fatalf("loadState: %v", err)
	}
	return s
}

func startJourney(t *testing.T) {
	t.Helper()
	setCurrent, setTarget, setWeeks = 82, 75, 10
	captureStdout(t, func() {
		if err := runWeightSet(nil, nil); err != nil {
			t.Fatalf("runWeightSet: %v", err)
		}
	})
	setCurrent, setTarget, setWeeks = 0, 0, 0
}

func TestWeightSet_ComputesPlan(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	startJourney(t)

	s := loadWeightState(t)
	if s.CurrentWeight != 82 || s.TargetWeight != 75 || s.StartingWeight != 82 {
		t.Errorf("weights = %v/%v/%v, want 82/82/75", s.StartingWeight, s.CurrentWeight, s.TargetWeight)
	}
	if s.GoalMode != weight.GoalDuration || s.DurationWeeks != 10 {
		t.Errorf("goal = %s/%d, want duration/10", s.GoalMode, s.DurationWeeks)
	}
	if s.CurrentBodyType != weight.DefaultBodyType {
		t.Errorf("body type = %q, want config default", s.CurrentBodyType)
	}

	out := captureStdout(t, func() {
		if err := runWeightShow(nil, nil); err != nil {
			t.Fatalf("runWeightShow: %v", err)
		}
	})
	if !strings.Contains(out, "cut journey") || !strings.Contains(out, "kcal") {
		t.Errorf("plan output unexpected:\n%s", out)
	}
}

func TestWeightSet_RejectsOutOfRangeWeights(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)

	for _, w := range []float64{-1, 1e20, weight.MaxWeightKg + 1} {
		setCurrent, setTarget = w, 75
		if err := runWeightSet(nil, nil); err == nil {
			t.Errorf("expected error for --current %g", w)
		}
		setCurrent, setTarget = 80, w
		if err := runWeightSet(nil, nil); err == nil {
			t.Errorf("expected error for --target %g", w)
		}
	}
	setCurrent, setTarget = 0, 0
	if s := loadWeightState(t); s.Ready() {
		t.Errorf("rejected flags should not save a journey: %+v", s)
	}
}

func TestWeightShow_FloorSurplusStillEstimates(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))

	setCurrent, setTarget, setWeeks = 40, 35, 4
	setBody, setTargetBody = "lean", "lean"
	out := captureStdout(t, func() {
		if err := runWeightSet(nil, nil); err != nil {
			t.Fatalf("runWeightSet: %v", err)
		}
	})
	if strings.Contains(out, "at target") {
		t.Errorf("5 kg away should not read as at target:\n%s", out)
	}
	if !strings.Contains(out, "1041 days") || !strings.Contains(out, "beyond the safe pace") {
		t.Errorf("expected a 1041 day estimate that misses the goal:\n%s", out)
	}
}

func TestWeightSet_GoalDateSwitchesMode(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	startJourney(t)

	if err := setBy.Set("2026-05-01"); err != nil {
		t.Fatal(err)
	}
	captureStdout(t, func() {
		if err := runWeightSet(nil, nil); err != nil {
			t.Fatalf("runWeightSet: %v", err)
		}
	})
	s := loadWeightState(t)
	if s.GoalMode != weight.GoalDate || s.GoalDate == nil {
		t.Fatalf("goal = %s %v, want date mode", s.GoalMode, s.GoalDate)
	}
	if s.CurrentWeight != 82 {
		t.Errorf("unset flags should keep stored weights, got %v", s.CurrentWeight)
	}
}

func TestWeightSet_PastGoalDateRejected(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))

	if err := setBy.Set("2026-03-01"); err != nil {
		t.Fatal(err)
	}
	if err := runWeightSet(nil, nil); err == nil {
		t.Fatal("expected error for a goal date that is not in the future")
	}
}

func TestWeightSet_UnitChangeConverts(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	startJourney(t)

	setUnit = unitValue(weight.Pounds)
	captureStdout(t, func() {
		if err := runWeightSet(nil, nil); err != nil {
			t.Fatalf("runWeightSet: %v", err)
		}
	})
	s := loadWeightState(t)
	if s.Unit != weight.Pounds {
		t.Fatalf("unit = %s, want lb", s.Unit)
	}
	if s.CurrentWeight != 180.8 || s.TargetWeight != 165.3 {
		t.Errorf("converted weights = %v/%v, want 180.8/165.3", s.CurrentWeight, s.TargetWeight)
	}
}

func TestWeightLog_UpdatesCurrentWeight(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	setNow(t, day)
	startJourney(t)

	setNow(t, day.AddDate(0, 0, 7))
	captureStdout(t, func() {
		if err := runWeightLog(nil, []string{"81.25"}); err != nil {
			t.Fatalf("runWeightLog: %v", err)
		}
	})

	s := loadWeightState(t)
	if s.CurrentWeight != 81.3 {
		t.Errorf("current = %v, want 81.3", s.CurrentWeight)
	}
	if s.StartingWeight != 82 {
		t.Errorf("starting = %v, want 82", s.StartingWeight)
	}

	a, err := openApp()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	logs, err := a.loadCheckIns(s.Unit)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].DateKey != "2026-03-08" {
		t.Errorf("check-ins = %+v", logs)
	}
}

func TestWeightLog_ConvertsLoggedUnit(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	startJourney(t)

	logUnit = unitValue(weight.Pounds)
	captureStdout(t, func() {
		if err := runWeightLog(nil, []string{"176.4"}); err != nil {
			t.Fatalf("runWeightLog: %v", err)
		}
	})
	if got := loadWeightState(t).CurrentWeight; got != 80 {
		t.Errorf("current = %v, want 80 kg", got)
	}
}

func TestWeightLog_InvalidValue(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)

	for _, v := range []string{"abc", "0", "-70", "1e20", "1001"} {
		if err := runWeightLog(nil, []string{v}); err == nil {
			t.Errorf("expected error for %q", v)
		}
	}
}

func TestWeightFinish_ArchivesJourney(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	startJourney(t)
	captureStdout(t, func() {
		if err := runWeightLog(nil, []string{"81"}); err != nil {
			t.Fatal(err)
		}
	})

	setNow(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.Local))
	finishReason = "Abandoned"
	captureStdout(t, func() {
		if err := runWeightFinish(nil, nil); err != nil {
			t.Fatalf("runWeightFinish: %v", err)
		}
	})

	if loadWeightState(t).Ready() {
		t.Error("state should be cleared after finishing")
	}

	a, err := openApp()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	entries, err := a.journeys()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d journeys, want 1", len(entries))
	}
	e := entries[0]
	if e.Status != journey.StatusCompleted || e.CompletedReason != journey.ReasonAbandoned {
		t.Errorf("entry = %s/%s", e.Status, e.CompletedReason)
	}
	if len(e.CheckIns) != 1 || e.TargetCalories == 0 {
		t.Errorf("entry should freeze check-ins and plan: %+v", e)
	}
	logs, _ := a.loadCheckIns(weight.Kilograms)
	if len(logs) != 0 {
		t.Errorf("check-ins should be cleared, got %d", len(logs))
	}
}

func TestWeightFinish_Errors(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)

	if err := runWeightFinish(nil, nil); err == nil {
		t.Error("expected error with no active journey")
	}
	finishReason = "bored"
	if err := runWeightFinish(nil, nil); err == nil {
		t.Error("expected error for unknown reason")
	}
}

func TestWeightHistory_CurrentFirst(t *testing.T) {
	configTestEnv(t)
	resetWeightFlags(t)
	setNow(t, time.Date(2026, 1, 1, 9, 0, 0, 0, time.Local))
	startJourney(t)
	captureStdout(t, func() {
		if err := runWeightFinish(nil, nil); err != nil {
			t.Fatal(err)
		}
	})
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))
	startJourney(t)

	out := captureStdout(t, func() {
		if err := runWeightHistory(nil, nil); err != nil {
			t.Fatalf("runWeightHistory: %v", err)
		}
	})
	active := strings.Index(out, "active")
	achieved := strings.Index(out, "achieved")
	if active < 0 || achieved < 0 || active > achieved {
		t.Errorf("expected active journey listed before the archive:\n%s", out)
	}

	historyJSON = true
	out = captureStdout(t, func() {
		if err := runWeightHistory(nil, nil); err != nil {
			t.Fatal(err)
		}
	})
	if !strings.Contains(out, `"id": "current-journey"`) {
		t.Errorf("json output missing current entry:\n%s", out)
	}
}

func TestWeightPresets(t *testing.T) {
	out := captureStdout(t, func() {
		if err := runWeightPresets(nil, nil); err != nil {
			t.Fatal(err)
		}
	})
	for _, key := range weight.PresetKeys() {
		if !strings.Contains(out, key) {
			t.Errorf("presets output missing %q", key)
		}
	}
}
