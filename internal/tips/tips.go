// Package tips rotates short hints about momentum commands.
package tips

import (
	"time"

	"github.com/rnwolfe/momentum/internal/datekey"
)

var all = []string{
	"`momentum habit done <id> --date 2026-01-31` to backfill a day you forgot to log.",
	"`momentum habit add \"Long run\" --period week` for habits that only need to happen weekly.",
	"`momentum habit add \"Couch to 5k\" --ends 2026-06-01` to mark a habit achieved on its end date.",
	"`momentum streak` to compare each habit's current run with its best.",
	"`momentum badges --all` to see every milestone, locked ones included.",
	"`momentum badges equip 1` to pick a badge for your profile interactively.",
	"`momentum weight set --by 2026-12-31` to plan towards a date instead of a duration.",
	"`momentum weight log 81.4` after each weigh-in keeps the plan adapting.",
	"`momentum weight presets` to see how body types change maintenance calories.",
	"`momentum weight history --json` to export every journey for a spreadsheet.",
	"`momentum weight finish --reason abandoned` closes a journey without calling it a win.",
	"`momentum backup export` writes an encrypted copy of everything.",
	"`momentum config set user.timezone Europe/Berlin` if your days roll over at the wrong hour.",
	"`momentum config set weight.unit lb` to default new journeys to pounds.",
	"`momentum --debug` mirrors the log file to stderr.",
}

// All returns all tips in the pool.
func All() []string {
	return all
}

// Daily returns a deterministic tip for the day containing t. The same tip is
// returned all day; it changes each day.
func Daily(t time.Time) string {
	n := datekey.UTCDayNumber(t) % len(all)
	if n < 0 {
		n += len(all)
	}
	return all[n]
}
