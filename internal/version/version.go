// Package version reports build metadata.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set at build time via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the build metadata shown by `momentum version`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go"`
	Platform  string `json:"platform"`
}

// Get returns the current build's metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s) %s", i.Version, i.Commit, i.Date)
}

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		backfill(info)
	}
}

// backfill fills values still at their ldflags defaults from the module
// build info, so `go install` builds report something useful.
func backfill(info *debug.BuildInfo) {
	if info == nil {
		return
	}
	if v := info.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		if s.Value == "" {
			continue
		}
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value[:min(7, len(s.Value))]
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}
