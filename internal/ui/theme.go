package ui

import "github.com/charmbracelet/lipgloss"

// momentum's palette: warm flame tones for progress, metal tiers for badges.
var (
	Flame   = lipgloss.Color("#FF7A00")
	Amber   = lipgloss.Color("#FFBF00")
	Bronze  = lipgloss.Color("#CD7F32")
	Silver  = lipgloss.Color("#C0C0C0")
	Gold    = lipgloss.Color("#FFD700")
	Plat    = lipgloss.Color("#9ED8DB")
	Diamond = lipgloss.Color("#7DF9FF")
	Emerald = lipgloss.Color("#50C878")
	Ruby    = lipgloss.Color("#E0115F")
	Azure   = lipgloss.Color("#2F80ED")
	Dim     = lipgloss.Color("#666666")
	Bright  = lipgloss.Color("#FFFFFF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Flame)

	Subtitle = lipgloss.NewStyle().
			Foreground(Amber)

	Success = lipgloss.NewStyle().
		Foreground(Emerald)

	Error = lipgloss.NewStyle().
		Foreground(Ruby)

	Warning = lipgloss.NewStyle().
		Foreground(Amber)

	Info = lipgloss.NewStyle().
		Foreground(Azure)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Flame).
		Bold(true)

	// Component styles
	Banner = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Flame).
		Padding(0, 1)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

// TierColor maps a badge variant name to its color.
func TierColor(variant string) lipgloss.Color {
	switch variant {
	case "bronze":
		return Bronze
	case "silver":
		return Silver
	case "gold":
		return Gold
	case "platinum":
		return Plat
	case "diamond":
		return Diamond
	}
	return Dim
}

// Icon constants.
const (
	IconFire   = "🔥"
	IconBadge  = "🏅"
	IconLock   = "🔒"
	IconScale  = "⚖️ "
	IconTarget = "🎯"
	IconHabit  = "🌱"
	IconKey    = "🔑"
	IconWarn   = "⚠️ "
	IconError  = "✗ "
	IconOk     = "✓ "
	IconArrow  = "→"
	IconDot    = "·"
)
