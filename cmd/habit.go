package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/momentum/internal/datekey"
	"github.com/rnwolfe/momentum/internal/habit"
	"github.com/rnwolfe/momentum/internal/logging"
	"github.com/rnwolfe/momentum/internal/streak"
	"github.com/rnwolfe/momentum/internal/ui"
)

var (
	habitPeriod = periodValue(datekey.Day)
	habitEnds   dateValue
	habitOn     dateValue
)

var habitCmd = &cobra.Command{
	Use:     "habit",
	Aliases: []string{"h"},
	Short:   "Track habits",
	Args:    cobra.NoArgs,
	RunE:    runHabitList,
}

var habitAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Start tracking a habit",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runHabitAdd,
}

var habitDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Log a completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitDone,
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits with their streaks",
	RunE:    runHabitList,
}

var habitRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Stop tracking a habit and delete its history",
	Args:    cobra.ExactArgs(1),
	RunE:    runHabitRm,
}

func init() {
	habitCmd.AddCommand(habitAddCmd, habitDoneCmd, habitListCmd, habitRmCmd)
	habitAddCmd.Flags().Var(&habitPeriod, "period", "Goal period (day, week, or month)")
	habitAddCmd.Flags().Var(&habitEnds, "ends", "Date the habit is complete (YYYY-MM-DD)")
	habitDoneCmd.Flags().Var(&habitOn, "date", "Day to log (YYYY-MM-DD, default today)")
}

func parseHabitID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid habit id %q", s)
	}
	return id, nil
}

func runHabitAdd(_ *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	title := strings.Join(args, " ")
	id, err := a.habits().Add(title, datekey.Period(habitPeriod), habitEnds.In(a.loc))
	if err != nil {
		return err
	}
	logging.Info("habit added", "id", id, "period", string(habitPeriod))
	ui.Ok(fmt.Sprintf("Tracking #%d %s %s", id, ui.Accent.Render(strings.TrimSpace(title)), ui.Muted.Render("every "+string(habitPeriod))))
	return nil
}

func runHabitDone(_ *cobra.Command, args []string) error {
	id, err := parseHabitID(args[0])
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	at := a.now
	if d := habitOn.In(a.loc); d != nil {
		if d.After(a.now) {
			return fmt.Errorf("can't log a completion in the future")
		}
		at = *d
	}
	h, err := a.habits().Get(id)
	if err != nil {
		return err
	}
	current, err := a.habits().Complete(id, at, a.now)
	if err != nil {
		return err
	}
	logging.Info("habit completed", "id", id, "day", datekey.Key(at), "streak", current)
	unit := string(h.GoalPeriod)
	ui.Ok(fmt.Sprintf("%s done for %s %s", h.Title, datekey.Key(at), ui.Accent.Render(ui.IconFire+" "+plural(current, unit, unit+"s"))))
	return nil
}

func runHabitList(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	habits, err := a.habits().List()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println(ui.Muted.Render("  No habits yet."))
		ui.Tip("`momentum habit add \"Drink water\"` to start one.")
		return nil
	}

	ui.Header("Habits")
	for _, h := range habits {
		info := streak.Compute(h.CompletedDates, h.GoalPeriod, a.now)
		mark := "  "
		if completedOn(h, a.now) {
			mark = ui.Success.Render(ui.IconOk)
		}
		line := fmt.Sprintf("%s%s %s", mark, ui.Muted.Render(fmt.Sprintf("#%-3d", h.ID)), h.Title)
		detail := fmt.Sprintf("%s · %d current · %d best · %d total", h.GoalPeriod, max(info.Current, 0), info.Longest, len(h.CompletedDates))
		if h.EndDate != nil {
			if h.Ended(a.now) {
				detail += " · " + ui.Success.Render("achieved")
			} else {
				detail += " · ends " + datekey.Key(*h.EndDate)
			}
		}
		fmt.Printf("  %s  %s\n", line, ui.Muted.Render(detail))
	}
	fmt.Println()
	return nil
}

func runHabitRm(_ *cobra.Command, args []string) error {
	id, err := parseHabitID(args[0])
	if err != nil {
		return err
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.habits().Remove(id); err != nil {
		return err
	}
	logging.Info("habit removed", "id", id)
	ui.Ok(fmt.Sprintf("Removed habit #%d", id))
	return nil
}

func completedOn(h habit.Habit, now time.Time) bool {
	today := datekey.UTCDayNumber(now)
	for _, d := range h.CompletedDates {
		if datekey.UTCDayNumber(d) == today {
			return true
		}
	}
	return false
}

func doneToday(habits []habit.Habit, now time.Time) int {
	n := 0
	for _, h := range habits {
		if completedOn(h, now) {
			n++
		}
	}
	return n
}
