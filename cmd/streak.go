package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/momentum/internal/streak"
	"github.com/rnwolfe/momentum/internal/ui"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show current and best streaks",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

func runStreak(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	metrics, habits, err := a.metrics()
	if err != nil {
		return err
	}

	ui.Header("Streaks")
	ui.Kv(ui.IconFire+" Overall", fmt.Sprintf("%s  %s",
		plural(overallStreak(habits, a.now), "day", "days"),
		ui.Muted.Render(fmt.Sprintf("(best %d)", metrics.LongestCurrentStreak))))
	ui.Kv("  Best habit", plural(metrics.LongestHabitStreak, "period", "periods"))
	ui.Kv("  Completions", fmt.Sprintf("%d", metrics.TotalHabitCompletions))
	fmt.Println()

	for _, h := range habits {
		info := streak.Compute(h.CompletedDates, h.GoalPeriod, a.now)
		unit := string(h.GoalPeriod)
		fmt.Printf("  %s %-24s %s %s\n",
			ui.Muted.Render(fmt.Sprintf("#%-3d", h.ID)),
			h.Title,
			ui.Accent.Render(plural(max(info.Current, 0), unit, unit+"s")),
			ui.Muted.Render(fmt.Sprintf("best %d", info.Longest)))
	}
	if len(habits) > 0 {
		fmt.Println()
	}
	return nil
}
