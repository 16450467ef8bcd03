package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(Close)

	Info("habit completed", "id", 3)
	Debug("hidden at info level")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "habit completed") || !strings.Contains(out, "id=3") {
		t.Errorf("log missing info line: %q", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("debug line written at info level: %q", out)
	}
}

func TestInit_Debug(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{Dir: dir, Debug: true}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(Close)
	Debug("visible")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), "visible") {
		t.Errorf("debug line missing: %q", data)
	}
}

func TestHelpers_AfterClose(t *testing.T) {
	if err := Init(Config{Dir: t.TempDir()}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Close()
	if Logger != nil {
		t.Fatal("Logger should be nil after Close")
	}
	Debug("a")
	Info("b")
	Warn("c")
	Error("d")
}
