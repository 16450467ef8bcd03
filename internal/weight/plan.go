package weight

import (
	"math"
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
)

// Tuning constants. These are product defaults, not physiological derivations.
const (
	KcalPerKg = 7700.0

	currentMaintenanceShare = 0.75
	targetMaintenanceShare  = 0.25

	minTargetCalories = 1200.0
	maxTargetCalories = 5000.0

	onTargetKg = 0.05

	lossDeltaMin          = 120.0
	lossDeltaMax          = 1100.0
	lossMaintenanceShare  = 0.35
	gainDeltaMin          = 80.0
	gainDeltaMax          = 650.0
	gainMaintenanceShare  = 0.20
	regimeThresholdKcal   = 10.0
	lossRateBase          = 0.25
	lossRatePerKg         = 0.08
	lossRateProgressShare = 0.05
	lossRateMin           = 0.25
	lossRateMax           = 0.9
	gainRateBase          = 0.15
	gainRatePerKg         = 0.06
	gainRateMin           = 0.1
	gainRateMax           = 0.45

	proteinFloorCut     = 1.8
	proteinFloor        = 1.6
	proteinCutBase      = 2.2
	proteinCutTaper     = 0.15
	proteinBulk         = 2.0
	proteinMaintenance  = 1.8
	fatFloorPerKg       = 0.55
	fatCutPerKg         = 0.8
	fatBulkPerKg        = 0.9
	fatMaintenancePerKg = 0.85
	kcalPerGramProtein  = 4
	kcalPerGramCarbs    = 4
	kcalPerGramFat      = 9
)

// Inputs is a snapshot of everything ComputePlan reads. Weights are in Unit;
// zero, negative or non-finite weights count as missing.
type Inputs struct {
	StartingWeight  float64
	CurrentWeight   float64
	TargetWeight    float64
	Unit            Unit
	CurrentBodyType string
	TargetBodyType  string
	DurationDays    int        // explicit timeline; wins over EndDate
	EndDate         *time.Time // used only when strictly after Now's day
	Now             time.Time
}

// Plan is the calorie, macro and timeline plan derived from Inputs.
type Plan struct {
	MaintenanceCalories    int     `json:"maintenanceCalories"`
	TargetCalories         int     `json:"targetCalories"`
	ProteinGrams           int     `json:"proteinGrams"`
	CarbsGrams             int     `json:"carbsGrams"`
	FatGrams               int     `json:"fatGrams"`
	DailyCalorieDelta      int     `json:"dailyCalorieDelta"`
	WeeklyWeightChangeKg   float64 `json:"weeklyWeightChangeKg"`
	EstimatedDays          int     `json:"estimatedDays"`
	TimelineTargetDays     *int    `json:"timelineTargetDays"`
	TimelineGoalMet        bool    `json:"timelineGoalMet"`
	ProjectedEndDate       string  `json:"projectedEndDateISO"`
	JourneyProgressPercent int     `json:"journeyProgressPercent"`
}

// Regime is the direction a plan's calorie delta pushes in.
type Regime string

const (
	RegimeCut         Regime = "cut"
	RegimeMaintenance Regime = "maintenance"
	RegimeBulk        Regime = "bulk"
)

// Regime classifies the plan by its applied daily delta.
func (p Plan) Regime() Regime {
	return regimeFor(float64(p.DailyCalorieDelta))
}

func regimeFor(delta float64) Regime {
	switch {
	case delta < -regimeThresholdKcal:
		return RegimeCut
	case delta > regimeThresholdKcal:
		return RegimeBulk
	default:
		return RegimeMaintenance
	}
}

// ComputePlan derives the plan for in, or nil when the current or target
// weight is missing or out of range.
func ComputePlan(in Inputs) *Plan {
	unit := in.Unit.OrDefault()
	if !ValidWeight(in.CurrentWeight, unit) || !ValidWeight(in.TargetWeight, unit) {
		return nil
	}
	currentKg := ToKg(in.CurrentWeight, unit)
	targetKg := ToKg(in.TargetWeight, unit)
	startingKg := currentKg
	if ValidWeight(in.StartingWeight, unit) {
		startingKg = ToKg(in.StartingWeight, unit)
	}

	currentPreset := ResolvePreset(in.CurrentBodyType)
	targetPreset := ResolvePreset(in.TargetBodyType)
	maintenance := math.Round(currentKg*currentPreset.MaintenanceMultiplier*currentMaintenanceShare +
		targetKg*targetPreset.MaintenanceMultiplier*targetMaintenanceShare)

	direction := sign(targetKg - currentKg)
	remainingKg := math.Abs(targetKg - currentKg)
	progress := journeyProgress(startingKg, currentKg, targetKg)
	timeline := timelineDays(in)

	var requested float64
	switch {
	case direction == 0 || remainingKg < onTargetKg:
		requested = 0
	case timeline != nil:
		requested = clampDelta(remainingKg*KcalPerKg/float64(*timeline), direction, maintenance)
	default:
		requested = clampDelta(adaptiveWeeklyRate(remainingKg, progress, direction)*KcalPerKg/7, direction, maintenance)
	}

	target := math.Round(clamp(maintenance+requested, minTargetCalories, maxTargetCalories))
	delta := target - maintenance

	protein, fat, carbs := splitMacros(target, delta, currentKg, progress)

	estimated := 0
	if direction != 0 && remainingKg >= onTargetKg && math.Abs(delta) > regimeThresholdKcal {
		estimated = int(math.Round(remainingKg * KcalPerKg / math.Abs(delta)))
	}
	met := true
	if timeline != nil {
		met = estimated <= *timeline
	}

	return &Plan{
		MaintenanceCalories:    int(maintenance),
		TargetCalories:         int(target),
		ProteinGrams:           protein,
		CarbsGrams:             carbs,
		FatGrams:               fat,
		DailyCalorieDelta:      int(delta),
		WeeklyWeightChangeKg:   round2(delta * 7 / KcalPerKg),
		EstimatedDays:          estimated,
		TimelineTargetDays:     timeline,
		TimelineGoalMet:        met,
		ProjectedEndDate:       datekey.Key(datekey.StartOfLocalDay(in.Now).AddDate(0, 0, estimated)),
		JourneyProgressPercent: int(math.Round(progress * 100)),
	}
}

// journeyProgress is the share of the start-to-target distance already
// covered, in [0, 1]. A journey with no distance counts as complete.
func journeyProgress(startingKg, currentKg, targetKg float64) float64 {
	total := targetKg - startingKg
	if math.Abs(total) < onTargetKg {
		return 1
	}
	return clamp((currentKg-startingKg)/total, 0, 1)
}

func timelineDays(in Inputs) *int {
	if in.DurationDays > 0 {
		d := in.DurationDays
		return &d
	}
	if in.EndDate == nil || in.EndDate.IsZero() || in.Now.IsZero() {
		return nil
	}
	days := datekey.DaysBetween(in.Now, *in.EndDate)
	if days <= 0 {
		return nil
	}
	return &days
}

func adaptiveWeeklyRate(remainingKg, progress, direction float64) float64 {
	if direction < 0 {
		return clamp(lossRateBase+remainingKg*lossRatePerKg+(1-progress)*lossRateProgressShare, lossRateMin, lossRateMax)
	}
	return clamp(gainRateBase+remainingKg*gainRatePerKg, gainRateMin, gainRateMax)
}

// clampDelta bounds the magnitude of a requested daily delta to the band for
// direction and gives it direction's sign.
func clampDelta(magnitude, direction, maintenance float64) float64 {
	lo, hi := gainDeltaMin, math.Min(gainDeltaMax, maintenance*gainMaintenanceShare)
	if direction < 0 {
		lo, hi = lossDeltaMin, math.Min(lossDeltaMax, maintenance*lossMaintenanceShare)
	}
	if hi < lo {
		hi = lo
	}
	return direction * clamp(math.Abs(magnitude), lo, hi)
}

// splitMacros returns protein, fat and carb grams for target calories. When
// protein and fat alone exceed the target, fat and then protein give way down
// to their floors; carbs never go below zero.
func splitMacros(target, delta, kg, progress float64) (protein, fat, carbs int) {
	minProtein, regimeProtein, regimeFat := proteinFloor, proteinMaintenance, fatMaintenancePerKg
	switch regimeFor(delta) {
	case RegimeCut:
		minProtein, regimeProtein, regimeFat = proteinFloorCut, proteinCutBase-progress*proteinCutTaper, fatCutPerKg
	case RegimeBulk:
		regimeProtein, regimeFat = proteinBulk, fatBulkPerKg
	}
	protein = int(math.Round(kg * math.Max(minProtein, regimeProtein)))
	fat = int(math.Round(kg * math.Max(fatFloorPerKg, regimeFat)))
	proteinMin := int(math.Round(kg * minProtein))
	fatMin := int(math.Round(kg * fatFloorPerKg))

	remaining := int(target) - protein*kcalPerGramProtein - fat*kcalPerGramFat
	if remaining < 0 {
		cut := min(fat-fatMin, ceilDiv(-remaining, kcalPerGramFat))
		fat -= cut
		remaining += cut * kcalPerGramFat
	}
	if remaining < 0 {
		cut := min(protein-proteinMin, ceilDiv(-remaining, kcalPerGramProtein))
		protein -= cut
		remaining += cut * kcalPerGramProtein
	}
	carbs = max(0, int(math.Round(float64(remaining)/kcalPerGramCarbs)))
	return protein, max(0, fat), carbs
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
