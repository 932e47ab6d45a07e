package praytimes

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"cloudeng.io/errors"

	"github.com/thurmanmarka/praytimes/internal/julian"
)

// Timezone is the civil time offset the results are expressed in.
type Timezone struct {
	Offset float64 // hours east of UTC
	DST    bool    // add one hour of daylight saving time
	Auto   bool    // derive Offset from longitude; Offset and DST are ignored
}

// AutoTimezone estimates the zone from longitude.
func AutoTimezone() Timezone { return Timezone{Auto: true} }

// FixedTimezone returns an explicit offset in hours east of UTC.
func FixedTimezone(hours float64) Timezone { return Timezone{Offset: hours} }

// hours returns the total offset from UTC for loc.
//
// Auto mode rounds longitude/15 to the nearest hour and never applies
// DST. Real zone boundaries follow politics, not meridians, so this can
// be off by an hour or more; pass an explicit offset when it matters.
func (tz Timezone) hours(loc Location) float64 {
	if tz.Auto {
		return math.Round(loc.Lon / 15)
	}
	if tz.DST {
		return tz.Offset + 1
	}
	return tz.Offset
}

func (tz Timezone) String() string {
	if tz.Auto {
		return "auto"
	}
	s := strconv.FormatFloat(tz.Offset, 'f', -1, 64)
	if tz.DST {
		s += "+dst"
	}
	return s
}

// TimezoneIn returns the offset of loc on date at local noon. A shift of
// exactly one hour over the standard offset, the smaller of the January
// and July offsets, is reported as DST. Any other shift, such as Lord
// Howe's half hour, is folded into Offset.
func TimezoneIn(loc *time.Location, date Date) Timezone {
	offsetAt := func(m time.Month, d int) float64 {
		_, sec := time.Date(date.Year, m, d, 12, 0, 0, 0, loc).Zone()
		return float64(sec) / 3600
	}
	std := math.Min(offsetAt(time.January, 1), offsetAt(time.July, 1))
	now := offsetAt(date.Month, date.Day)
	if now-std == 1 {
		return Timezone{Offset: std, DST: true}
	}
	return Timezone{Offset: now}
}

// ParseTimezone accepts "auto" (or ""), a numeric offset such as "3.5"
// or "-5", or an IANA zone name resolved for date. Anything else returns
// AutoTimezone with an error wrapping ErrUnknownTimezone.
func ParseTimezone(s string, date Date) (Timezone, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return AutoTimezone(), nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if !finite(v) || v < -12 || v > 14 {
			return AutoTimezone(), fmt.Errorf("%w: offset %v out of range", ErrUnknownTimezone, v)
		}
		return FixedTimezone(v), nil
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		return AutoTimezone(), fmt.Errorf("%w: %q: %v", ErrUnknownTimezone, s, err)
	}
	return TimezoneIn(loc, date), nil
}

// Format selects how Times are rendered as strings.
type Format int

const (
	Format24h   Format = iota // "16:45"
	Format12h                 // "4:45 pm"
	Format12hNS               // "4:45", no suffix
	FormatFloat               // "16.7500"
)

var formatNames = map[Format]string{
	Format24h:   "24h",
	Format12h:   "12h",
	Format12hNS: "12hNS",
	FormatFloat: "Float",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses a format name case-insensitively. Unknown names
// return Format24h with an error wrapping ErrUnknownFormat.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return Format24h, nil
	}
	for f, s := range formatNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return Format24h, fmt.Errorf("%w: %q, using 24h", ErrUnknownFormat, name)
}

// Adjustments are per-prayer minute offsets applied after everything
// else. Missing entries are zero.
type Adjustments map[Prayer]float64

// ParseAdjustments parses "fajr=2,isha=-3" style lists.
func ParseAdjustments(s string) (Adjustments, error) {
	adj := Adjustments{}
	for _, kv := range strings.Split(s, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("adjustment %q: expected name=minutes", kv)
		}
		p, err := ParsePrayer(name)
		if err != nil {
			return nil, err
		}
		m, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("adjustment %q: %w", kv, err)
		}
		if !finite(m) {
			return nil, fmt.Errorf("%w: adjustment %q", ErrInvalidSettings, kv)
		}
		adj[p] = m
	}
	return adj, nil
}

// Settings is the full configuration for one computation. The zero value
// is not useful; start from DefaultSettings.
type Settings struct {
	Method      Method
	Imsak       Param // relative to Fajr when in minutes
	Dhuhr       Param // minutes after solar noon; angles are not supported
	Asr         AsrMethod
	HighLats    HighLatRule
	Timezone    Timezone
	Adjustments Adjustments
	Format      Format
	Iterations  int // passes re-evaluating the Sun at each event's own time
}

// Validate reports every non-finite number in s.
func (s Settings) Validate() error {
	errs := &errors.M{}
	if !s.Timezone.Auto && !finite(s.Timezone.Offset) {
		errs.Append(fmt.Errorf("%w: timezone offset %v", ErrInvalidSettings, s.Timezone.Offset))
	}
	for _, p := range []struct {
		name  string
		param Param
	}{
		{"imsak", s.Imsak},
		{"fajr", s.Method.Fajr},
		{"dhuhr", s.Dhuhr},
		{"maghrib", s.Method.Maghrib},
		{"isha", s.Method.Isha},
	} {
		if !finite(p.param.Value) {
			errs.Append(fmt.Errorf("%w: %s %v", ErrInvalidSettings, p.name, p.param.Value))
		}
	}
	for _, p := range Prayers() {
		if v, ok := s.Adjustments[p]; ok && !finite(v) {
			errs.Append(fmt.Errorf("%w: %s adjustment %v", ErrInvalidSettings, p, v))
		}
	}
	return errs.Err()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// DefaultSettings returns the MWL method, Standard Asr, NightMiddle, auto
// timezone, 24h format, Imsak 10 minutes before Fajr.
func DefaultSettings() Settings {
	return Settings{
		Method:     MethodByName(DefaultMethod),
		Imsak:      Minutes(10),
		Dhuhr:      Minutes(0),
		Asr:        AsrStandard,
		HighLats:   DefaultHighLatRule,
		Timezone:   AutoTimezone(),
		Format:     Format24h,
		Iterations: 1,
	}
}

// Options are Settings expressed as names, the way they arrive from a
// config file or a tool call.
type Options struct {
	Method      string
	Asr         string
	HighLats    string
	Timezone    string
	Format      string
	Adjustments string
}

// ParseSettings resolves opts for date. Unknown names fall back to their
// defaults; the returned error then only carries warnings (see
// IsWarning) and the Settings are usable. Malformed adjustments are a
// hard error.
func ParseSettings(opts Options, date Date) (Settings, error) {
	s := DefaultSettings()
	warnings := &errors.M{}

	var err error
	s.Method, err = ParseMethod(opts.Method)
	warnings.Append(err)
	s.Asr, err = ParseAsrMethod(opts.Asr)
	warnings.Append(err)
	s.HighLats, err = ParseHighLatRule(opts.HighLats)
	warnings.Append(err)
	s.Timezone, err = ParseTimezone(opts.Timezone, date)
	warnings.Append(err)
	s.Format, err = ParseFormat(opts.Format)
	warnings.Append(err)

	if opts.Adjustments != "" {
		adj, err := ParseAdjustments(opts.Adjustments)
		if err != nil {
			return Settings{}, err
		}
		s.Adjustments = adj
	}
	return s, warnings.Err()
}

// ParseDate parses an ISO 8601 calendar date, YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q: expected YYYY-MM-DD", ErrInvalidDate, s)
	}
	d := julian.FromTime(t)
	return d, d.Validate()
}
