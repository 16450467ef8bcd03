package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsStdoutTTY returns true when stdout is connected to a terminal.
func IsStdoutTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// ColorWanted reports whether output should be colored given the user's
// setting, NO_COLOR and whether stdout is a terminal.
func ColorWanted(noColor bool) bool {
	if noColor {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return IsStdoutTTY()
}

// SetColor switches every style between the detected color profile and
// plain ASCII.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.NewOutput(os.Stdout).EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}
