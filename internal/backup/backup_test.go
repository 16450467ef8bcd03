package backup

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testPassphrase = "test-passphrase-12345"

func testBundle() *Bundle {
	return &Bundle{
		ExportedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		UserID:     "default",
		KV: map[string]string{
			"weight_manager_state:default": `{"currentWeight":80,"targetWeight":72}`,
			"badge_slots:default":          `{"slot1":"account_age:1","slot2":null,"slot3":null}`,
		},
		Habits: []map[string]any{
			{"title": "Read", "goalPeriod": "day", "completedDates": []any{"2026-02-27", "2026-02-28"}},
		},
	}
}

func TestEncryptDecrypt(t *testing.T) {
	raw, err := Encrypt(testBundle(), testPassphrase)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if !bytes.HasPrefix(raw, []byte("-----BEGIN AGE ENCRYPTED FILE-----")) {
		t.Errorf("backup is not armored: %q", raw[:40])
	}
	if bytes.Contains(raw, []byte("weight_manager_state")) {
		t.Error("plaintext leaked into backup")
	}

	b, err := Decrypt(raw, testPassphrase)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if b.Version != FormatVersion || b.UserID != "default" {
		t.Errorf("bundle = %+v", b)
	}
	if b.KV["badge_slots:default"] != testBundle().KV["badge_slots:default"] {
		t.Errorf("kv not preserved: %v", b.KV)
	}
	if len(b.Habits) != 1 || b.Habits[0]["title"] != "Read" {
		t.Errorf("habits = %v", b.Habits)
	}
}

func TestDecrypt_WrongPassphrase(t *testing.T) {
	raw, err := Encrypt(testBundle(), testPassphrase)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	_, err = Decrypt(raw, "not-the-passphrase")
	if !errors.Is(err, ErrWrongPassphrase) {
		t.Errorf("err = %v, want ErrWrongPassphrase", err)
	}
}

func TestDecrypt_Corrupted(t *testing.T) {
	_, err := Decrypt([]byte("this is not an age file"), testPassphrase)
	if !errors.Is(err, ErrCorrupted) {
		t.Errorf("err = %v, want ErrCorrupted", err)
	}
}

func TestEncrypt_EmptyPassphrase(t *testing.T) {
	if _, err := Encrypt(testBundle(), ""); err == nil {
		t.Error("expected an error for an empty passphrase")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "momentum.age")
	if err := WriteFile(path, []byte("first")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := WriteFile(path, []byte("second")); err != nil {
		t.Fatalf("WriteFile overwrite: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want second", got)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}
