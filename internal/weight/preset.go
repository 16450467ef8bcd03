package weight

import "strings"

// Preset describes a body type used to estimate energy needs.
type Preset struct {
	Key                   string  `json:"key"`
	Label                 string  `json:"label"`
	MaintenanceMultiplier float64 `json:"maintenanceMultiplier"` // kcal per kg
	ProteinMultiplier     float64 `json:"proteinMultiplier"`     // g per kg
	FatRatio              float64 `json:"fatRatio"`              // share of calories
	CalorieBias           float64 `json:"calorieBias"`
}

// DefaultBodyType is used when a body-type key is not recognized.
const DefaultBodyType = "muscular"

var presets = [...]Preset{
	{Key: "lean", Label: "Lean", MaintenanceMultiplier: 30, ProteinMultiplier: 1.8, FatRatio: 0.25, CalorieBias: -0.05},
	{Key: "muscular", Label: "Muscular", MaintenanceMultiplier: 33, ProteinMultiplier: 2.2, FatRatio: 0.25, CalorieBias: 0},
	{Key: "bulky", Label: "Bulky", MaintenanceMultiplier: 35, ProteinMultiplier: 2.0, FatRatio: 0.30, CalorieBias: 0.05},
}

// Presets returns the body-type catalog in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets[:])
	return out
}

// LookupPreset finds a preset by key, ignoring case.
func LookupPreset(key string) (Preset, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// ResolvePreset is LookupPreset with the muscular fallback.
func ResolvePreset(key string) Preset {
	if p, ok := LookupPreset(key); ok {
		return p
	}
	p, _ := LookupPreset(DefaultBodyType)
	return p
}

// PresetKeys lists the valid body-type keys.
func PresetKeys() []string {
	keys := make([]string, len(presets))
	for i, p := range presets {
		keys[i] = p.Key
	}
	return keys
}
