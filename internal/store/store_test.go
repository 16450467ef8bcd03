package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// setupTestXDG sets XDG env vars to a temp directory for isolated testing.
func setupTestXDG(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	return tmpDir
}

func TestOpenAndClose(t *testing.T) {
	tmpDir := setupTestXDG(t)

	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if db.Conn() == nil {
		t.Fatal("Conn() returned nil")
	}

	dbPath := filepath.Join(tmpDir, "momentum", "momentum.db")
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Database file not created at %s: %v", dbPath, err)
	}
}

func TestMigrationsCreateTables(t *testing.T) {
	setupTestXDG(t)

	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"migrations", "habits", "habit_completions", "kv"} {
		var name string
		err := db.Conn().QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	setupTestXDG(t)

	for i := 0; i < 2; i++ {
		db, err := Open()
		if err != nil {
			t.Fatalf("Open #%d failed: %v", i+1, err)
		}
		db.Close()
	}
}

func TestKV_SetGetDelete(t *testing.T) {
	db, err := OpenPath(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer db.Close()

	if _, err := db.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := db.Set("weight_manager_state:default", `{"currentWeight":80}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Set("weight_manager_state:default", `{"currentWeight":79}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err := db.Get("weight_manager_state:default")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != `{"currentWeight":79}` {
		t.Errorf("Get = %q, want overwritten value", got)
	}

	if err := db.Delete("weight_manager_state:default"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Get("weight_manager_state:default"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := db.Delete("never-set"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
}

func TestEntries(t *testing.T) {
	db, err := OpenPath(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	defer db.Close()

	got, err := db.Entries()
	if err != nil {
		t.Fatalf("Entries on empty store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Entries = %v, want empty", got)
	}

	db.Set("badge_slots:default", `{"slot1":null}`)
	db.Set("profile_created_at:default", "2026-01-01T00:00:00Z")
	got, err = db.Entries()
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != 2 || got["profile_created_at:default"] != "2026-01-01T00:00:00Z" {
		t.Errorf("Entries = %v", got)
	}
}
