package cmd

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rnwolfe/momentum/internal/config"
)

// configTestEnv points every XDG directory at a fresh temp dir.
func configTestEnv(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")
}

// setNow pins the command clock for the rest of the test.
func setNow(t *testing.T, now time.Time) {
	t.Helper()
	old := nowFunc
	nowFunc = func() time.Time { return now }
	t.Cleanup(func() { nowFunc = old })
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() {
		os.Stdout = old
		r.Close()
	}()

	fn()

	w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("io.Copy: %v", err)
	}
	return buf.String()
}

func TestRunConfigGet_KnownKey(t *testing.T) {
	configTestEnv(t)

	cfg := &config.Config{Weight: config.WeightConfig{Unit: "lb", BodyType: "lean"}}
	if err := config.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := captureStdout(t, func() {
		if err := runConfigGet(nil, []string{"weight.unit"}); err != nil {
			t.Errorf("runConfigGet: %v", err)
		}
	})
	if strings.TrimSpace(out) != "lb" {
		t.Fatalf("expected 'lb', got: %q", out)
	}
}

func TestRunConfigGet_UnknownKey(t *testing.T) {
	configTestEnv(t)

	err := runConfigGet(nil, []string{"not.a.real.key"})
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown config key") {
		t.Errorf("expected 'unknown config key' in error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "user.name") {
		t.Errorf("expected valid keys listed in error, got: %v", err)
	}
}

func TestRunConfigSet_Persists(t *testing.T) {
	configTestEnv(t)

	captureStdout(t, func() {
		if err := runConfigSet(nil, []string{"weight.body_type", "Bulky"}); err != nil {
			t.Fatalf("runConfigSet: %v", err)
		}
	})

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Weight.BodyType != "bulky" {
		t.Errorf("body type = %q, want bulky", cfg.Weight.BodyType)
	}
}

func TestRunConfigSet_RejectsInvalidValue(t *testing.T) {
	configTestEnv(t)

	if err := runConfigSet(nil, []string{"weight.unit", "stone"}); err == nil {
		t.Fatal("expected error for invalid unit")
	}
	if config.Initialized() {
		t.Error("config file should not be written on a rejected value")
	}
}

func TestRunConfigUnset_RestoresDefault(t *testing.T) {
	configTestEnv(t)

	if err := config.Save(&config.Config{Weight: config.WeightConfig{Unit: "lb", BodyType: "lean"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	captureStdout(t, func() {
		if err := runConfigUnset(nil, []string{"weight.unit"}); err != nil {
			t.Fatalf("runConfigUnset: %v", err)
		}
	})

	cfg, _ := config.Load()
	if cfg.Weight.Unit != "kg" {
		t.Errorf("unit = %q, want kg", cfg.Weight.Unit)
	}
	if cfg.Weight.BodyType != "lean" {
		t.Errorf("unrelated key changed: body type = %q", cfg.Weight.BodyType)
	}
}

func TestRunConfigShow_ListsKeys(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runConfigShow(nil, nil); err != nil {
			t.Fatalf("runConfigShow: %v", err)
		}
	})
	for _, key := range config.ValidKeyNames() {
		if !strings.Contains(out, key) {
			t.Errorf("output missing key %q", key)
		}
	}
}
