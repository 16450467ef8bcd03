package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rnwolfe/momentum/internal/config"
)

func initTestEnv(t *testing.T) string {
	t.Helper()
	configTestEnv(t)
	tmp := os.Getenv("HOME")
	t.Setenv("USER", "testuser")
	t.Setenv("TZ", "")
	return tmp
}

func TestRunInit_Defaults(t *testing.T) {
	initTestEnv(t)
	setNow(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local))

	captureStdout(t, func() {
		if err := runInitWithReader(bufio.NewReader(strings.NewReader("\n\n\nLocal\n"))); err != nil {
			t.Fatalf("runInitWithReader: %v", err)
		}
	})

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.User.Name != "testuser" {
		t.Errorf("name = %q, want testuser", cfg.User.Name)
	}
	if cfg.Weight.Unit != "kg" || cfg.Weight.BodyType != "muscular" {
		t.Errorf("weight defaults = %+v", cfg.Weight)
	}
	if cfg.User.Timezone != "" {
		t.Errorf("timezone = %q, want system local", cfg.User.Timezone)
	}

	a, err := openApp()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if a.profileCreatedAt() == nil {
		t.Error("init should record the profile creation time")
	}
}

func TestRunInit_RepromptsInvalidAnswers(t *testing.T) {
	initTestEnv(t)

	input := "Sam\nstone\nlbs\nhuge\nLean\nMars/Olympus\nEurope/Berlin\n"
	out := captureStdout(t, func() {
		if err := runInitWithReader(bufio.NewReader(strings.NewReader(input))); err != nil {
			t.Fatalf("runInitWithReader: %v", err)
		}
	})

	cfg, _ := config.Load()
	if cfg.User.Name != "Sam" || cfg.Weight.Unit != "lb" || cfg.Weight.BodyType != "lean" || cfg.User.Timezone != "Europe/Berlin" {
		t.Errorf("config = %+v", cfg)
	}
	if !strings.Contains(out, "All set, Sam!") {
		t.Errorf("missing greeting:\n%s", out)
	}
}

func TestRunInit_KeepsExistingProfileTime(t *testing.T) {
	initTestEnv(t)
	first := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	setNow(t, first)
	captureStdout(t, func() {
		_ = runInitWithReader(bufio.NewReader(strings.NewReader("\n\n\nLocal\n")))
	})
	setNow(t, first.AddDate(1, 0, 0))
	captureStdout(t, func() {
		_ = runInitWithReader(bufio.NewReader(strings.NewReader("\n\n\nLocal\n")))
	})

	a, err := openApp()
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if got := a.profileCreatedAt(); got == nil || !got.Equal(first) {
		t.Errorf("profile created = %v, want %v", got, first)
	}
}

func TestGitUserName(t *testing.T) {
	home := initTestEnv(t)
	gitconfig := "[core]\n\tname = wrong\n[user]\n\tname = \"Ada Lovelace\"\n\temail = ada@example.com\n"
	if err := os.WriteFile(filepath.Join(home, ".gitconfig"), []byte(gitconfig), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := guessName(); got != "Ada Lovelace" {
		t.Errorf("guessName = %q, want Ada Lovelace", got)
	}
}
