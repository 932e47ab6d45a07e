// Package praytimes computes daily Islamic prayer times from solar
// geometry for any location and date.
//
// A computation is a pure function of its inputs:
//
//	date, _ := praytimes.ParseDate("2025-06-21")
//	s := praytimes.DefaultSettings()
//	s.Method = praytimes.MethodByName("Tehran")
//	s.Timezone = praytimes.FixedTimezone(3.5)
//	times, err := praytimes.Compute(date, praytimes.Location{Lat: 35.69, Lon: 51.42}, s)
//
// Times keeps each prayer as fractional hours of local civil time and
// renders them in 24h, 12h or float form. Prayers whose defining solar
// angle is never reached (polar day or night) are left unresolved rather
// than failing the whole computation; see Times.Err.
//
// The method registry is fixed at compile time and read-only, so Compute
// is safe for concurrent use.
package praytimes

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	"cloudeng.io/errors"

	"github.com/thurmanmarka/praytimes/internal/julian"
)

// Date is a proleptic Gregorian calendar date.
type Date = julian.CivilDate

// Location is an observer's position.
type Location struct {
	Lat       float64 // degrees, north positive
	Lon       float64 // degrees, east positive (west negative, e.g. -74 for 74°W)
	Elevation float64 // meters above the surrounding horizon
}

// Validate checks the coordinate ranges. All violations are reported.
func (l Location) Validate() error {
	errs := &errors.M{}
	if math.IsNaN(l.Lat) || l.Lat < -90 || l.Lat > 90 {
		errs.Append(fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidLocation, l.Lat))
	}
	if math.IsNaN(l.Lon) || l.Lon < -180 || l.Lon > 180 {
		errs.Append(fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidLocation, l.Lon))
	}
	if math.IsNaN(l.Elevation) || l.Elevation < 0 {
		errs.Append(fmt.Errorf("%w: elevation %v must not be negative", ErrInvalidLocation, l.Elevation))
	}
	return errs.Err()
}

// Prayer names one of the times of the day.
type Prayer int

const (
	Imsak Prayer = iota
	Fajr
	Sunrise
	Dhuhr
	Asr
	Sunset
	Maghrib
	Isha
	Midnight

	numPrayers
)

var prayerNames = [numPrayers]string{
	"imsak", "fajr", "sunrise", "dhuhr", "asr", "sunset", "maghrib", "isha", "midnight",
}

func (p Prayer) String() string {
	if p < 0 || p >= numPrayers {
		return fmt.Sprintf("Prayer(%d)", int(p))
	}
	return prayerNames[p]
}

// Title returns the capitalised name, e.g. "Fajr".
func (p Prayer) Title() string {
	s := p.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePrayer parses a prayer name case-insensitively.
func ParsePrayer(name string) (Prayer, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range prayerNames {
		if n == name {
			return Prayer(i), nil
		}
	}
	return 0, fmt.Errorf("unknown prayer %q", name)
}

// Prayers returns every prayer in canonical order.
func Prayers() []Prayer {
	out := make([]Prayer, numPrayers)
	for i := range out {
		out[i] = Prayer(i)
	}
	return out
}

// Time is one computed time of day.
type Time struct {
	Hours float64 // fractional hours of local civil time; may fall outside [0, 24)
	OK    bool    // false if the time could not be resolved
}

// On returns the time as an instant on date in loc. Times past midnight
// (e.g. Midnight itself) roll over to the next day.
func (t Time) On(date Date, loc *time.Location) time.Time {
	base := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, loc)
	return base.Add(time.Duration(math.Round(t.Hours*3600)) * time.Second)
}

// Entry is one formatted line of a result.
type Entry struct {
	Prayer Prayer
	Value  string
}

// Times is the result of one computation.
type Times struct {
	Date     Date
	Location Location
	Settings Settings
	times    [numPrayers]Time
}

// Get returns the time for p.
func (t Times) Get(p Prayer) Time {
	if p < 0 || p >= numPrayers {
		return Time{}
	}
	return t.times[p]
}

// Unresolved returns the prayers that could not be computed, in order.
func (t Times) Unresolved() []Prayer {
	var out []Prayer
	for i, v := range t.times {
		if !v.OK {
			out = append(out, Prayer(i))
		}
	}
	return out
}

// Err returns an *UnreachableError if any prayer is unresolved.
func (t Times) Err() error {
	if u := t.Unresolved(); len(u) > 0 {
		return &UnreachableError{Date: t.Date, Location: t.Location, Prayers: u}
	}
	return nil
}

// Format renders every prayer in canonical order.
func (t Times) Format(f Format) []Entry {
	out := make([]Entry, numPrayers)
	for i, v := range t.times {
		out[i] = Entry{Prayer: Prayer(i), Value: FormatTime(v, f)}
	}
	return out
}

func (t Times) String() string {
	var b strings.Builder
	for _, e := range t.Format(t.Settings.Format) {
		fmt.Fprintf(&b, "%s: %s\n", e.Prayer.Title(), e.Value)
	}
	return b.String()
}

// Compute returns the prayer times for date at loc. Invalid dates or
// locations, or non-finite settings, fail before any solar computation.
// Prayers the Sun makes impossible are reported through Times.Err, not
// the returned error.
func Compute(date Date, loc Location, s Settings) (Times, error) {
	if err := errors.NewM(date.Validate(), loc.Validate(), s.Validate()); err != nil {
		return Times{}, err
	}
	s.Adjustments = maps.Clone(s.Adjustments)
	return Times{
		Date:     date,
		Location: loc,
		Settings: s,
		times:    computeDay(date, loc, s),
	}, nil
}

// TimesFor is Compute for the calendar date of t, in t's location.
func TimesFor(loc Location, t time.Time, s Settings) (Times, error) {
	return Compute(julian.FromTime(t), loc, s)
}
