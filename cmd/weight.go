package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/momentum/internal/datekey"
	"github.com/rnwolfe/momentum/internal/journey"
	"github.com/rnwolfe/momentum/internal/logging"
	"github.com/rnwolfe/momentum/internal/ui"
	"github.com/rnwolfe/momentum/internal/weight"
)

var weightCmd = &cobra.Command{
	Use:     "weight",
	Aliases: []string{"w"},
	Short:   "Show today's calorie and macro plan",
	Args:    cobra.NoArgs,
	RunE:    runWeightShow,
}

var weightSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set weights, body types and the journey goal",
	Long: `Set the inputs the daily plan is computed from. Only the flags you pass
change; everything else keeps its stored value.

Use --weeks for a fixed duration or --by for a goal date. Setting one
switches the goal mode.`,
	Example: `  momentum weight set --current 82 --target 75 --weeks 10
  momentum weight set --unit lb --by 2026-12-31`,
	Args: cobra.NoArgs,
	RunE: runWeightSet,
}

var weightLogCmd = &cobra.Command{
	Use:   "log <weight>",
	Short: "Record a weigh-in",
	Args:  cobra.ExactArgs(1),
	RunE:  runWeightLog,
}

var weightFinishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Close the current journey and archive it",
	Args:  cobra.NoArgs,
	RunE:  runWeightFinish,
}

var weightHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List current and past journeys",
	Args:  cobra.NoArgs,
	RunE:  runWeightHistory,
}

var weightPresetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List body-type presets",
	Args:  cobra.NoArgs,
	RunE:  runWeightPresets,
}

var (
	setStart, setCurrent, setTarget float64
	setUnit                         unitValue
	setBody, setTargetBody          bodyTypeValue
	setWeeks                        int
	setBy                           dateValue

	logUnit      unitValue
	finishReason string
	historyJSON  bool
)

func init() {
	weightCmd.AddCommand(weightSetCmd, weightLogCmd, weightFinishCmd, weightHistoryCmd, weightPresetsCmd)

	f := weightSetCmd.Flags()
	f.Float64Var(&setStart, "start", 0, "Starting weight")
	f.Float64Var(&setCurrent, "current", 0, "Current weight")
	f.Float64Var(&setTarget, "target", 0, "Target weight")
	f.Var(&setUnit, "unit", "Weight unit (kg or lb)")
	f.Var(&setBody, "body", "Current body type")
	f.Var(&setTargetBody, "target-body", "Target body type")
	f.IntVar(&setWeeks, "weeks", 0, "Journey length in weeks")
	f.Var(&setBy, "by", "Goal date (YYYY-MM-DD)")
	weightSetCmd.MarkFlagsMutuallyExclusive("weeks", "by")

	weightLogCmd.Flags().Var(&logUnit, "unit", "Unit of the logged weight (default: journey unit)")
	weightFinishCmd.Flags().StringVar(&finishReason, "reason", journey.ReasonAchieved, "Why the journey ended (achieved or abandoned)")
	weightHistoryCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the history as JSON")
}

func runWeightShow(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.loadState()
	if err != nil {
		return err
	}
	p := a.plan(s)
	if p == nil {
		fmt.Println(ui.Muted.Render("  No weight journey yet."))
		ui.Tip("`momentum weight set --current 82 --target 75 --weeks 10` to start one.")
		return nil
	}
	printPlan(s, p)
	return nil
}

func printPlan(s weight.State, p *weight.Plan) {
	unit := s.Unit.OrDefault()
	ui.Header(fmt.Sprintf("%s %s journey", ui.IconScale, p.Regime()))
	ui.Kv("Weight", fmt.Sprintf("%s %s %s %s", formatWeight(s.CurrentWeight, unit), ui.IconArrow, formatWeight(s.TargetWeight, unit), ui.Muted.Render(fmt.Sprintf("(%s → %s)", s.CurrentBodyType, s.TargetBodyType))))
	ui.Kv("Progress", ui.Bar(p.JourneyProgressPercent, 20))
	fmt.Println()
	ui.Kv("Maintenance", fmt.Sprintf("%d kcal", p.MaintenanceCalories))
	ui.Kv("Target", ui.Accent.Render(fmt.Sprintf("%d kcal", p.TargetCalories))+" "+ui.Muted.Render(fmt.Sprintf("(%+d)", p.DailyCalorieDelta)))
	ui.Kv("Macros", fmt.Sprintf("%dg protein · %dg fat · %dg carbs", p.ProteinGrams, p.FatGrams, p.CarbsGrams))
	weekly := weight.FromKg(p.WeeklyWeightChangeKg, unit)
	ui.Kv("Per week", fmt.Sprintf("%+.2f %s", weekly, unit))
	fmt.Println()
	switch {
	case s.AtTarget():
		ui.Kv("Estimate", ui.Success.Render("at target"))
	case p.EstimatedDays > 0:
		ui.Kv("Estimate", fmt.Sprintf("%s, around %s", plural(p.EstimatedDays, "day", "days"), p.ProjectedEndDate))
		if (p.DailyCalorieDelta > 0) != (s.TargetWeight > s.CurrentWeight) {
			ui.Warn("The calorie limits push away from your target at this weight.")
		}
	default:
		ui.Kv("Estimate", ui.Warning.Render("no change at this intake"))
	}
	if p.TimelineTargetDays != nil {
		verdict := ui.Success.Render(ui.IconOk + " on track")
		if !p.TimelineGoalMet {
			verdict = ui.Warning.Render(ui.IconWarn + " beyond the safe pace")
		}
		ui.Kv("Goal", fmt.Sprintf("%s  %s", plural(*p.TimelineTargetDays, "day", "days"), verdict))
	}
	fmt.Println()
}

func maxWeight(u weight.Unit) float64 {
	return math.Floor(weight.FromKg(weight.MaxWeightKg, u))
}

func formatWeight(v float64, u weight.Unit) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + string(u)
}

func runWeightSet(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.loadState()
	if err != nil {
		return err
	}
	s, err = applyWeightFlags(s, a)
	if err != nil {
		return err
	}
	if err := a.saveState(s); err != nil {
		return err
	}
	logging.Info("weight state updated", "unit", string(s.Unit), "mode", string(s.GoalMode))

	if p := a.plan(s); p != nil {
		printPlan(s, p)
		return nil
	}
	ui.Ok("Saved. Set both --current and --target to get a plan.")
	return nil
}

// applyWeightFlags merges the set flags into s. Changing the unit converts
// the stored weights first so they keep their meaning.
func applyWeightFlags(s weight.State, a *app) (weight.State, error) {
	if setUnit != "" && weight.Unit(setUnit) != s.Unit.OrDefault() {
		from, to := s.Unit.OrDefault(), weight.Unit(setUnit)
		for _, w := range []*float64{&s.StartingWeight, &s.CurrentWeight, &s.TargetWeight} {
			if *w > 0 {
				*w = math.Round(weight.Convert(*w, from, to)*10) / 10
			}
		}
		s.Unit = to
	}
	s.Unit = s.Unit.OrDefault()

	for _, f := range []struct {
		name string
		v    float64
		dst  *float64
	}{
		{"start", setStart, &s.StartingWeight},
		{"current", setCurrent, &s.CurrentWeight},
		{"target", setTarget, &s.TargetWeight},
	} {
		if f.v == 0 {
			continue
		}
		if !weight.ValidWeight(f.v, s.Unit) {
			return s, fmt.Errorf("--%s must be between 0 and %s", f.name, formatWeight(maxWeight(s.Unit), s.Unit))
		}
		*f.dst = f.v
	}
	if s.StartingWeight == 0 && s.CurrentWeight > 0 {
		s.StartingWeight = s.CurrentWeight
	}

	if setBody != "" {
		s.CurrentBodyType = string(setBody)
	}
	if setTargetBody != "" {
		s.TargetBodyType = string(setTargetBody)
	}

	switch {
	case setWeeks < 0:
		return s, fmt.Errorf("--weeks must be positive")
	case setWeeks > 0:
		s.GoalMode = weight.GoalDuration
		s.DurationWeeks = setWeeks
		s.GoalDate = nil
	case setBy.In(a.loc) != nil:
		d := setBy.In(a.loc)
		if datekey.DaysBetween(a.now, *d) <= 0 {
			return s, fmt.Errorf("--by must be after today")
		}
		s.GoalMode = weight.GoalDate
		s.GoalDate = d
	}
	if s.GoalMode == "" {
		s.GoalMode = weight.GoalDuration
	}
	return s, nil
}

func runWeightLog(_ *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return fmt.Errorf("invalid weight %q", args[0])
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.loadState()
	if err != nil {
		return err
	}
	unit := s.Unit.OrDefault()
	from := unit
	if logUnit != "" {
		from = weight.Unit(logUnit)
	}
	if !weight.ValidWeight(value, from) {
		return fmt.Errorf("invalid weight %q: must be between 0 and %s", args[0], formatWeight(maxWeight(from), from))
	}

	logs, err := a.loadCheckIns(unit)
	if err != nil {
		return err
	}
	entry := weight.NewCheckIn(weight.Convert(value, from, unit), unit, a.now)
	logs = weight.NormalizeCheckIns(append(logs, entry), unit)
	if err := a.saveCheckIns(logs); err != nil {
		return err
	}

	s.CurrentWeight = entry.Weight
	if s.StartingWeight == 0 {
		s.StartingWeight = entry.Weight
	}
	if err := a.saveState(s); err != nil {
		return err
	}
	logging.Info("weight logged", "weight", entry.Weight, "unit", string(unit))
	ui.Ok(fmt.Sprintf("Logged %s for %s", formatWeight(entry.Weight, unit), entry.DateKey))

	if p := a.plan(s); p != nil {
		ui.Kv("Target", fmt.Sprintf("%d kcal", p.TargetCalories))
		ui.Kv("Progress", ui.Bar(p.JourneyProgressPercent, 20))
	}
	return nil
}

func runWeightFinish(_ *cobra.Command, _ []string) error {
	reason := strings.ToLower(strings.TrimSpace(finishReason))
	if reason != journey.ReasonAchieved && reason != journey.ReasonAbandoned {
		return fmt.Errorf("reason must be %q or %q", journey.ReasonAchieved, journey.ReasonAbandoned)
	}
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	s, err := a.loadState()
	if err != nil {
		return err
	}
	if !journey.HasJourneyState(s) {
		return fmt.Errorf("no active journey to finish")
	}
	logs, err := a.loadCheckIns(s.Unit.OrDefault())
	if err != nil {
		return err
	}
	history, err := a.loadHistory()
	if err != nil {
		return err
	}

	entry := journey.CreateCompletedEntry(s, a.plan(s), logs, a.now, reason)
	history = journey.NormalizeHistory(append([]journey.Entry{entry}, history...))
	if err := a.saveHistory(history); err != nil {
		return err
	}
	if err := a.clearState(); err != nil {
		return err
	}
	if err := a.db.Delete(journey.CheckInsKey(a.userID)); err != nil {
		return err
	}
	logging.Info("journey finished", "id", entry.ID, "reason", reason)
	ui.Ok(fmt.Sprintf("Journey archived (%s)", reason))
	return nil
}

func runWeightHistory(_ *cobra.Command, _ []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	entries, err := a.journeys()
	if err != nil {
		return err
	}
	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Println(ui.Muted.Render("  No journeys yet."))
		return nil
	}

	ui.Header("Journeys")
	for _, e := range entries {
		status := ui.Accent.Render(string(e.Status))
		when := datekey.Key(e.CreatedAt.In(a.loc))
		if e.CompletedAt != nil {
			status = ui.Muted.Render(e.CompletedReason)
			when += " " + ui.IconArrow + " " + datekey.Key(e.CompletedAt.In(a.loc))
		}
		fmt.Printf("  %-10s %s  %s %s %s  %s\n",
			status, when,
			formatWeight(e.StartingWeight, e.Unit), ui.IconArrow, formatWeight(e.TargetWeight, e.Unit),
			ui.Muted.Render(fmt.Sprintf("%d kcal · %s", e.TargetCalories, plural(len(e.CheckIns), "check-in", "check-ins"))))
	}
	fmt.Println()
	return nil
}

// journeys returns the active journey, if any, followed by the archive.
func (a *app) journeys() ([]journey.Entry, error) {
	history, err := a.loadHistory()
	if err != nil {
		return nil, err
	}
	s, err := a.loadState()
	if err != nil {
		return nil, err
	}
	logs, err := a.loadCheckIns(s.Unit.OrDefault())
	if err != nil {
		return nil, err
	}
	out := make([]journey.Entry, 0, len(history)+1)
	if cur := journey.BuildCurrentEntry(s, a.plan(s), logs, a.now); cur != nil {
		out = append(out, *cur)
	}
	return append(out, journey.NormalizeHistory(history)...), nil
}

func runWeightPresets(_ *cobra.Command, _ []string) error {
	ui.Header("Body types")
	for _, p := range weight.Presets() {
		name := p.Label
		if p.Key == weight.DefaultBodyType {
			name += " " + ui.Muted.Render("(default)")
		}
		fmt.Printf("  %-10s %s  %s\n", ui.Accent.Render(p.Key), name,
			ui.Muted.Render(fmt.Sprintf("%.0f kcal/kg · %.1f g protein/kg · %.0f%% fat", p.MaintenanceMultiplier, p.ProteinMultiplier, p.FatRatio*100)))
	}
	fmt.Println()
	return nil
}
