package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// AppName names the XDG subdirectories and the database file.
const AppName = "momentum"

// Config holds the top-level momentum configuration.
type Config struct {
	User    UserConfig    `toml:"user"`
	Weight  WeightConfig  `toml:"weight"`
	Log     LogConfig     `toml:"log"`
	Display DisplayConfig `toml:"display"`
}

type UserConfig struct {
	Name string `toml:"name"`
	// ID namespaces per-user storage keys. Empty falls back to "default".
	ID string `toml:"id"`
	// Timezone is an IANA name. Empty means the system local zone.
	Timezone string `toml:"timezone"`
}

// WeightConfig holds defaults for new weight journeys.
type WeightConfig struct {
	Unit     string `toml:"unit"`
	BodyType string `toml:"body_type"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

type DisplayConfig struct {
	NoColor bool `toml:"no_color"`
}

// Location resolves the configured timezone, falling back to time.Local when
// it is empty or unknown.
func (c *Config) Location() *time.Location {
	tz := strings.TrimSpace(c.User.Timezone)
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Local
	}
	return loc
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	LogDir     string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	appConfig := filepath.Join(configDir, AppName)
	appData := filepath.Join(dataDir, AppName)
	appState := filepath.Join(stateDir, AppName)

	return Paths{
		ConfigDir:  appConfig,
		DataDir:    appData,
		CacheDir:   filepath.Join(cacheDir, AppName),
		StateDir:   appState,
		LogDir:     filepath.Join(appState, "logs"),
		ConfigFile: filepath.Join(appConfig, "config.toml"),
		DBFile:     filepath.Join(appData, AppName+".db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir, p.LogDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found. Keys missing
// from the file keep their default values.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if momentum has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

func defaultConfig() *Config {
	return &Config{
		Weight: WeightConfig{
			Unit:     "kg",
			BodyType: "muscular",
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
