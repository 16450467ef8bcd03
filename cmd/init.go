package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rnwolfe/momentum/internal/config"
	"github.com/rnwolfe/momentum/internal/logging"
	"github.com/rnwolfe/momentum/internal/ui"
	"github.com/rnwolfe/momentum/internal/weight"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up momentum for the first time",
	Long:  `Initialize momentum with your preferences. Creates config and data directories.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithReader(bufio.NewReader(os.Stdin))
}

func runInitWithReader(reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconFire + " Welcome to momentum!"))
	fmt.Println()
	ui.Inf("A few questions and you're ready to build streaks.")
	fmt.Println()

	existing, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := *existing

	defaultName := cfg.User.Name
	if defaultName == "" {
		defaultName = guessName()
	}
	cfg.User.Name = prompt(reader, "  What should I call you?", defaultName)

	for {
		answer := prompt(reader, "  Weigh in kg or lb?", cfg.Weight.Unit)
		if u, ok := weight.ParseUnit(answer); ok {
			cfg.Weight.Unit = string(u)
			break
		}
		ui.Warn(fmt.Sprintf("%q isn't a unit I know; try kg or lb.", answer))
	}

	for {
		answer := prompt(reader, fmt.Sprintf("  Body type? %s", ui.Muted.Render("("+strings.Join(weight.PresetKeys(), ", ")+")")), cfg.Weight.BodyType)
		if p, ok := weight.LookupPreset(answer); ok {
			cfg.Weight.BodyType = p.Key
			break
		}
		ui.Warn(fmt.Sprintf("%q isn't a body type; pick one of %s.", answer, strings.Join(weight.PresetKeys(), ", ")))
	}

	for {
		answer := prompt(reader, "  Timezone?", localZoneName(cfg.User.Timezone))
		if answer == "" || answer == "Local" {
			cfg.User.Timezone = ""
			break
		}
		if _, err := time.LoadLocation(answer); err == nil {
			cfg.User.Timezone = answer
			break
		}
		ui.Warn(fmt.Sprintf("%q isn't an IANA timezone (e.g. Europe/Berlin).", answer))
	}
	fmt.Println()

	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return fmt.Errorf("creating directories: %w", err)
	}
	if err := config.Save(&cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	if _, err := a.ensureProfile(); err != nil {
		return err
	}
	logging.Info("initialized", "unit", cfg.Weight.Unit, "body_type", cfg.Weight.BodyType)

	if cfg.User.Name != "" {
		ui.Ok("All set, " + cfg.User.Name + "! " + ui.IconFire)
	} else {
		ui.Ok("All set! " + ui.IconFire)
	}
	fmt.Println()
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	fmt.Println()
	ui.Tip("`momentum habit add \"Read 10 pages\"` to start your first streak.")
	fmt.Println()
	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// localZoneName suggests the configured zone, then TZ, then the system zone.
func localZoneName(configured string) string {
	if configured != "" {
		return configured
	}
	if tz := os.Getenv("TZ"); tz != "" {
		return tz
	}
	return time.Local.String()
}

func guessName() string {
	if name := gitUserName(); name != "" {
		return name
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}

// gitUserName reads user.name from ~/.gitconfig without shelling out.
func gitUserName() string {
	home, _ := os.UserHomeDir()
	data, err := os.ReadFile(filepath.Join(home, ".gitconfig"))
	if err != nil {
		return ""
	}

	inUser := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "[user]" {
			inUser = true
			continue
		}
		if strings.HasPrefix(line, "[") {
			inUser = false
			continue
		}
		if inUser && strings.HasPrefix(line, "name") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				return strings.Trim(strings.TrimSpace(parts[1]), `"`)
			}
		}
	}
	return ""
}
