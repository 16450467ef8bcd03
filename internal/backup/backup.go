// Package backup exports and imports everything momentum stores locally as
// a single passphrase-encrypted file.
//
// Backups are age scrypt recipients wrapped in ASCII armor, so they survive
// copy and paste. The plaintext is a JSON Bundle.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// FormatVersion is the bundle version written by this build.
const FormatVersion = 1

// ErrWrongPassphrase is returned when decryption fails due to a bad passphrase.
var ErrWrongPassphrase = errors.New("wrong passphrase")

// ErrCorrupted is returned when a backup cannot be decrypted or parsed.
var ErrCorrupted = errors.New("backup file is corrupted or unreadable")

// Bundle is the plaintext inside a backup.
type Bundle struct {
	Version    int               `json:"version"`
	ExportedAt time.Time         `json:"exportedAt"`
	UserID     string            `json:"userId"`
	KV         map[string]string `json:"kv"`
	Habits     []map[string]any  `json:"habits"`
}

// Encrypt serializes b and encrypts it for passphrase.
func Encrypt(b *Bundle, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("passphrase must not be empty")
	}
	if b.Version == 0 {
		b.Version = FormatVersion
	}
	plaintext, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("serializing backup: %w", err)
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age recipient: %w", err)
	}

	var buf bytes.Buffer
	armorWriter := armor.NewWriter(&buf)
	w, err := age.Encrypt(armorWriter, recipient)
	if err != nil {
		return nil, fmt.Errorf("initializing age encryption: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("encrypting backup: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	if err := armorWriter.Close(); err != nil {
		return nil, fmt.Errorf("finalizing armor: %w", err)
	}
	return buf.Bytes(), nil
}

// Decrypt reverses Encrypt.
func Decrypt(raw []byte, passphrase string) (*Bundle, error) {
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating age identity: %w", err)
	}

	r, err := age.Decrypt(armor.NewReader(bytes.NewReader(raw)), identity)
	if err != nil {
		// age has no typed error for a bad passphrase.
		msg := err.Error()
		if strings.Contains(msg, "no identity matched") || strings.Contains(msg, "incorrect") {
			return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading decrypted data: %v", ErrCorrupted, err)
	}

	var b Bundle
	if err := json.Unmarshal(plaintext, &b); err != nil {
		return nil, fmt.Errorf("%w: parsing backup JSON: %v", ErrCorrupted, err)
	}
	if b.Version < 1 || b.Version > FormatVersion {
		return nil, fmt.Errorf("%w: unsupported backup version %d", ErrCorrupted, b.Version)
	}
	if b.KV == nil {
		b.KV = make(map[string]string)
	}
	return &b, nil
}

// WriteFile writes data to path atomically: temp file, fsync, rename.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".momentum-backup-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("setting temp file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsyncing backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("committing backup file: %w", err)
	}

	success = true
	return nil
}
