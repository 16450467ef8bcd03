package weight

import (
	"math"
	"strings"
)

// Unit is a body-weight unit.
type Unit string

const (
	Kilograms Unit = "kg"
	Pounds    Unit = "lb"
)

// PoundsPerKilogram converts between the two units.
const PoundsPerKilogram = 2.20462

// ParseUnit accepts kg/lb and the common spellings of each.
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kg", "kgs", "kilogram", "kilograms":
		return Kilograms, true
	case "lb", "lbs", "pound", "pounds":
		return Pounds, true
	}
	return "", false
}

// OrDefault returns u, or kilograms when u is not a known unit.
func (u Unit) OrDefault() Unit {
	if parsed, ok := ParseUnit(string(u)); ok {
		return parsed
	}
	return Kilograms
}

// ToKg converts value in unit u to kilograms. Unknown units are treated as kg.
func ToKg(value float64, u Unit) float64 {
	if u.OrDefault() == Pounds {
		return value / PoundsPerKilogram
	}
	return value
}

// FromKg converts kilograms to unit u.
func FromKg(kg float64, u Unit) float64 {
	if u.OrDefault() == Pounds {
		return kg * PoundsPerKilogram
	}
	return kg
}

// Convert moves value from one unit to another.
func Convert(value float64, from, to Unit) float64 {
	if from.OrDefault() == to.OrDefault() {
		return value
	}
	return FromKg(ToKg(value, from), to)
}

// MaxWeightKg is the heaviest body weight accepted, in kilograms.
const MaxWeightKg = 1000

// ValidWeight reports whether w, in unit u, is usable as a body weight:
// finite, positive and at most MaxWeightKg.
func ValidWeight(w float64, u Unit) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w > 0 && ToKg(w, u) <= MaxWeightKg
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
