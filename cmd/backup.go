package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rnwolfe/momentum/internal/backup"
	"github.com/rnwolfe/momentum/internal/config"
	"github.com/rnwolfe/momentum/internal/habit"
	"github.com/rnwolfe/momentum/internal/logging"
	"github.com/rnwolfe/momentum/internal/ui"
)

const passphraseEnv = "MOMENTUM_BACKUP_PASSPHRASE"

var (
	backupOut   string
	backupForce bool
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore an encrypted backup",
	Long: `Export everything momentum stores (habits, completions, weight journeys
and badge slots) into one passphrase-encrypted file, or restore from one.

The passphrase is read from ` + passphraseEnv + ` when set, otherwise
prompted for.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write an encrypted backup",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace local data with a backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func init() {
	backupCmd.AddCommand(backupExportCmd, backupImportCmd)
	backupExportCmd.Flags().StringVarP(&backupOut, "out", "o", "", "Output file (default: data dir)")
	backupImportCmd.Flags().BoolVarP(&backupForce, "force", "f", false, "Skip the overwrite check")
}

func defaultBackupPath() string {
	return filepath.Join(config.GetPaths().DataDir, "momentum-backup.age")
}

func runBackupExport(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	kv, err := a.db.Entries()
	if err != nil {
		return err
	}
	habits, err := a.habits().List()
	if err != nil {
		return err
	}
	bundle := &backup.Bundle{
		ExportedAt: a.now.UTC(),
		UserID:     a.userID,
		KV:         kv,
		Habits:     make([]map[string]any, 0, len(habits)),
	}
	for _, h := range habits {
		bundle.Habits = append(bundle.Habits, habit.ToRecord(h))
	}

	pass, err := readPassphrase(true)
	if err != nil {
		return err
	}
	data, err := backup.Encrypt(bundle, pass)
	if err != nil {
		return err
	}

	out := backupOut
	if out == "" {
		out = defaultBackupPath()
	}
	if err := backup.WriteFile(out, data); err != nil {
		return err
	}
	logging.Info("backup exported", "path", out, "habits", len(habits), "keys", len(kv))
	ui.Ok("Backup written to " + ui.Accent.Render(out))
	return nil
}

func runBackupImport(_ *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading backup: %w", err)
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !backupForce {
		existing, err := a.habits().List()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("local data exists; rerun with --force to replace it")
		}
	}

	pass, err := readPassphrase(false)
	if err != nil {
		return err
	}
	bundle, err := backup.Decrypt(raw, pass)
	if errors.Is(err, backup.ErrWrongPassphrase) {
		return fmt.Errorf("wrong passphrase for %s", args[0])
	}
	if err != nil {
		return err
	}

	habits := habit.FromRecords(bundle.Habits, a.loc)
	if err := a.habits().ReplaceAll(habits); err != nil {
		return err
	}
	for k, v := range bundle.KV {
		if err := a.db.Set(k, v); err != nil {
			return fmt.Errorf("restoring %s: %w", k, err)
		}
	}
	logging.Info("backup imported", "path", args[0], "habits", len(habits), "keys", len(bundle.KV))
	ui.Ok(fmt.Sprintf("Restored %s and %s", plural(len(habits), "habit", "habits"), plural(len(bundle.KV), "stored value", "stored values")))
	return nil
}

func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv(passphraseEnv); p != "" {
		return p, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("backup passphrase required: set %s or run interactively", passphraseEnv)
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  Backup passphrase: "))
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}

	passphrase := strings.TrimSpace(string(passBytes))
	if passphrase == "" {
		return "", fmt.Errorf("passphrase can't be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirm passphrase: "))
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase confirmation: %w", err)
		}
		if string(passBytes) != string(confirmBytes) {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return passphrase, nil
}
