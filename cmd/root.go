package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/momentum/internal/achievement"
	"github.com/rnwolfe/momentum/internal/config"
	"github.com/rnwolfe/momentum/internal/logging"
	"github.com/rnwolfe/momentum/internal/tips"
	"github.com/rnwolfe/momentum/internal/ui"
	"github.com/rnwolfe/momentum/internal/version"
)

var (
	flagDebug   bool
	flagNoColor bool
)

var rootCmd = &cobra.Command{
	Use:               "momentum",
	Short:             "Habits, streaks, badges and a weight plan that keeps up",
	Long:              `momentum tracks your habits and weight journey locally and turns them into streaks, badges and a daily calorie plan.`,
	RunE:              runDashboard,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) { logging.Close() },
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("command failed", "err", err)
		logging.Close()
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Mirror debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(habitCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(badgesCmd)
	rootCmd.AddCommand(weightCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup applies config-driven logging and color before any command runs.
// A broken config still lets commands like `config path` work.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		ui.SetColor(ui.ColorWanted(flagNoColor))
		return fmt.Errorf("loading config: %w", err)
	}
	ui.SetColor(ui.ColorWanted(flagNoColor || cfg.Display.NoColor))

	paths := config.GetPaths()
	if err := logging.Init(logging.Config{Debug: flagDebug || cfg.Log.Debug, Dir: paths.LogDir}); err != nil {
		fmt.Fprintln(os.Stderr, ui.Muted.Render("  logging disabled: "+err.Error()))
		return nil
	}
	logging.Debug("running", "command", cmd.CommandPath(), "version", version.Get().Version)
	return nil
}

// runDashboard shows the at-a-glance status when you just type `momentum`.
func runDashboard(_ *cobra.Command, _ []string) error {
	if !config.Initialized() {
		fmt.Println(ui.Greet(""))
		fmt.Println()
		fmt.Println("  Looks like this is your first time. Let's set things up!")
		fmt.Println()
		fmt.Printf("  Run %s to get started.\n", ui.Accent.Render("momentum init"))
		fmt.Println()
		return nil
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	fmt.Println(ui.Greet(a.cfg.User.Name))
	fmt.Println()

	metrics, habits, err := a.metrics()
	if err != nil {
		return err
	}
	current := overallStreak(habits, a.now)
	ui.Kv(ui.IconFire+" Streak", fmt.Sprintf("%s  %s", plural(current, "day", "days"), ui.Muted.Render(fmt.Sprintf("(best %d)", metrics.LongestCurrentStreak))))
	ui.Kv(ui.IconHabit+" Habits", fmt.Sprintf("%d tracked, %d done today", len(habits), doneToday(habits, a.now)))

	slots, err := a.loadSlots()
	if err != nil {
		return err
	}
	ui.Kv(ui.IconBadge+" Badges", equippedSummary(slots))

	state, err := a.loadState()
	if err != nil {
		return err
	}
	if p := a.plan(state); p != nil {
		ui.Kv(ui.IconTarget+" Today", fmt.Sprintf("%d kcal  %s", p.TargetCalories, ui.Bar(p.JourneyProgressPercent, 20)))
	}
	ui.Kv("   Version", version.Get().Version)

	switch {
	case len(habits) == 0:
		ui.Tip("`momentum habit add \"Read 10 pages\"` to start your first streak.")
	case doneToday(habits, a.now) < len(habits):
		ui.Tip("`momentum habit done <id>` to keep the streak alive.")
	case state.Ready():
		ui.Tip("`momentum weight log <weight>` to record today's weigh-in.")
	default:
		ui.Tip(tips.Daily(a.now))
	}
	fmt.Println()
	return nil
}

func equippedSummary(slots achievement.Slots) string {
	var names []string
	for _, id := range slots {
		if id.IsZero() {
			continue
		}
		names = append(names, badgeName(id))
	}
	if len(names) == 0 {
		return ui.Muted.Render("none equipped")
	}
	return strings.Join(names, ui.Muted.Render(" · "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
