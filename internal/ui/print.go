package ui

import (
	"fmt"
	"os"
	"strings"
)

// Warn flags something the user should fix, such as a missed check-in or a
// plan that cannot reach its goal date.
func Warn(msg string) {
	fmt.Println(Warning.Render(IconWarn + msg))
}

// Err reports a failed command on stderr so piped output stays clean.
func Err(msg string) {
	fmt.Fprintln(os.Stderr, Error.Bold(true).Render(IconError+msg))
}

// Ok confirms a saved change: a completion, a logged weight, a new habit.
func Ok(msg string) {
	fmt.Println(Success.Render(IconOk + msg))
}

// Inf prints an indented side note under the current section.
func Inf(msg string) {
	fmt.Println(Info.Render("  " + msg))
}

// Header opens a dashboard section with an underlined title.
func Header(s string) {
	fmt.Println()
	fmt.Println(Title.Render(s))
	fmt.Println(Muted.Render(strings.Repeat("─", len([]rune(s))+2)))
}

// Tip suggests the next command to run.
func Tip(msg string) {
	fmt.Println()
	fmt.Println(Muted.Render("  tip: " + msg))
}

// Kv prints one labelled stat row, labels aligned in a fixed column.
func Kv(label, value string) {
	fmt.Printf("%s %s\n", KeyStyle.Render(fmt.Sprintf("  %-14s", label)), ValueStyle.Render(value))
}

// Bar renders a width-cell progress bar for percent in [0, 100].
func Bar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return Accent.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// Greet returns the dashboard greeting.
func Greet(name string) string {
	if name == "" {
		return IconFire + " Keep it going!"
	}
	return fmt.Sprintf("%s Keep it going, %s!", IconFire, name)
}
