package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/rnwolfe/momentum/internal/datekey"
	"github.com/rnwolfe/momentum/internal/weight"
)

// Typed flag values validate at parse time so commands only see valid input.

type unitValue weight.Unit

var _ pflag.Value = (*unitValue)(nil)

func (u *unitValue) String() string { return string(*u) }
func (u *unitValue) Type() string   { return "kg|lb" }
func (u *unitValue) Set(s string) error {
	parsed, ok := weight.ParseUnit(s)
	if !ok {
		return fmt.Errorf("unknown unit %q (use kg or lb)", s)
	}
	*u = unitValue(parsed)
	return nil
}

type bodyTypeValue string

func (b *bodyTypeValue) String() string { return string(*b) }
func (b *bodyTypeValue) Type() string   { return strings.Join(weight.PresetKeys(), "|") }
func (b *bodyTypeValue) Set(s string) error {
	p, ok := weight.LookupPreset(s)
	if !ok {
		return fmt.Errorf("unknown body type %q (use %s)", s, strings.Join(weight.PresetKeys(), ", "))
	}
	*b = bodyTypeValue(p.Key)
	return nil
}

type periodValue datekey.Period

func (p *periodValue) String() string { return string(*p) }
func (p *periodValue) Type() string   { return "day|week|month" }
func (p *periodValue) Set(s string) error {
	period := datekey.Period(strings.ToLower(strings.TrimSpace(s)))
	if !period.Valid() {
		return fmt.Errorf("unknown period %q (use day, week, or month)", s)
	}
	*p = periodValue(period)
	return nil
}

// dateValue is a YYYY-MM-DD flag resolved in the local zone at parse time.
type dateValue struct {
	t   *time.Time
	raw string
}

func (d *dateValue) String() string { return d.raw }
func (d *dateValue) Type() string   { return "YYYY-MM-DD" }
func (d *dateValue) Set(s string) error {
	t, err := time.ParseInLocation(datekey.KeyLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	d.t, d.raw = &t, s
	return nil
}

// In re-anchors the parsed calendar date in loc.
func (d *dateValue) In(loc *time.Location) *time.Time {
	if d.t == nil {
		return nil
	}
	y, m, day := d.t.Date()
	t := time.Date(y, m, day, 0, 0, 0, 0, loc)
	return &t
}

func (d *dateValue) reset() { d.t, d.raw = nil, "" }
