package cmd

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestRunDashboard_FirstRun(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runDashboard(nil, nil); err != nil {
			t.Fatalf("runDashboard: %v", err)
		}
	})
	if !strings.Contains(out, "momentum init") {
		t.Errorf("first run should point at init:\n%s", out)
	}
}

func TestRunDashboard_Summary(t *testing.T) {
	initTestEnv(t)
	resetHabitFlags(t)
	resetWeightFlags(t)
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	setNow(t, day)

	captureStdout(t, func() {
		if err := runInitWithReader(bufio.NewReader(strings.NewReader("Kai\n\n\nLocal\n"))); err != nil {
			t.Fatal(err)
		}
	})
	addHabit(t, "Read")
	addHabit(t, "Walk")
	completeHabit(t, "1")
	setNow(t, day.AddDate(0, 0, 1))
	completeHabit(t, "1")
	startJourney(t)
	captureStdout(t, func() {
		if err := runBadgesEquip(nil, []string{"1", "total_habit_completions:1"}); err != nil {
			t.Fatal(err)
		}
	})

	out := captureStdout(t, func() {
		if err := runDashboard(nil, nil); err != nil {
			t.Fatalf("runDashboard: %v", err)
		}
	})
	for _, want := range []string{"Keep it going, Kai!", "2 days", "2 tracked, 1 done today", "Completions · 1 habit completion", "kcal"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard missing %q:\n%s", want, out)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1, "day", "days"); got != "1 day" {
		t.Errorf("plural(1) = %q", got)
	}
	if got := plural(0, "day", "days"); got != "0 days" {
		t.Errorf("plural(0) = %q", got)
	}
}
