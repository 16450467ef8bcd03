package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeBool   KeyType = "bool"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type.
	Type KeyType
	// Desc is a human-readable description shown in `momentum config`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the registry of all settable config keys. Keys use
// dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:  KeyTypeString,
		Desc:  "Display name",
		get:   func(cfg *Config) string { return cfg.User.Name },
		set:   func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset: func(cfg *Config) { cfg.User.Name = "" },
	},
	"user.id": {
		Type:  KeyTypeString,
		Desc:  "User id used to namespace stored journeys and badges",
		get:   func(cfg *Config) string { return cfg.User.ID },
		set:   func(cfg *Config, v string) error { cfg.User.ID = strings.TrimSpace(v); return nil },
		unset: func(cfg *Config) { cfg.User.ID = "" },
	},
	"user.timezone": {
		Type: KeyTypeString,
		Desc: "IANA timezone for day boundaries (empty = system local)",
		get:  func(cfg *Config) string { return cfg.User.Timezone },
		set: func(cfg *Config, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if _, err := time.LoadLocation(v); err != nil {
					return fmt.Errorf("unknown timezone %q: %w", v, err)
				}
			}
			cfg.User.Timezone = v
			return nil
		},
		unset: func(cfg *Config) { cfg.User.Timezone = "" },
	},
	"weight.unit": {
		Type:       KeyTypeString,
		Desc:       "Default weight unit (kg or lb)",
		DefaultStr: "kg",
		get:        func(cfg *Config) string { return cfg.Weight.Unit },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "kg" && v != "lb" {
				return fmt.Errorf("invalid unit %q (use kg or lb)", v)
			}
			cfg.Weight.Unit = v
			return nil
		},
		unset: func(cfg *Config) { cfg.Weight.Unit = "kg" },
	},
	"weight.body_type": {
		Type:       KeyTypeString,
		Desc:       "Default body type preset (lean, muscular, bulky)",
		DefaultStr: "muscular",
		get:        func(cfg *Config) string { return cfg.Weight.BodyType },
		set: func(cfg *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			switch v {
			case "lean", "muscular", "bulky":
				cfg.Weight.BodyType = v
				return nil
			}
			return fmt.Errorf("invalid body type %q (use lean, muscular, or bulky)", v)
		},
		unset: func(cfg *Config) { cfg.Weight.BodyType = "muscular" },
	},
	"log.debug": {
		Type:       KeyTypeBool,
		Desc:       "Mirror debug logs to stderr",
		DefaultStr: "false",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.Log.Debug) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for log.debug: %w", v, err)
			}
			cfg.Log.Debug = b
			return nil
		},
		unset: func(cfg *Config) { cfg.Log.Debug = false },
	},
	"display.no_color": {
		Type:       KeyTypeBool,
		Desc:       "Disable colored output",
		DefaultStr: "false",
		get:        func(cfg *Config) string { return fmt.Sprintf("%t", cfg.Display.NoColor) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for display.no_color: %w", v, err)
			}
			cfg.Display.NoColor = b
			return nil
		},
		unset: func(cfg *Config) { cfg.Display.NoColor = false },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}
