// Package julian converts between proleptic Gregorian calendar dates and
// Julian Day numbers.
package julian

import (
	"fmt"
	"math"
	"time"

	"cloudeng.io/datetime"
	"cloudeng.io/errors"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// ErrInvalidDate is returned by Validate for dates that do not exist in
// the proleptic Gregorian calendar.
var ErrInvalidDate = errors.New("invalid calendar date")

// CivilDate is a proleptic Gregorian calendar date.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Validate reports whether d names a real day. Years before 1 are
// rejected.
func (d CivilDate) Validate() error {
	if d.Year < 1 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidDate, d.Year)
	}
	if d.Month < time.January || d.Month > time.December {
		return fmt.Errorf("%w: month %d out of range", ErrInvalidDate, int(d.Month))
	}
	if n := datetime.DaysInMonth(d.Year, datetime.Month(d.Month)); d.Day < 1 || d.Day > n {
		return fmt.Errorf("%w: day %d out of range for %04d-%02d", ErrInvalidDate, d.Day, d.Year, int(d.Month))
	}
	return nil
}

// ToJulian returns the Julian Day at 0h UT on d.
func ToJulian(d CivilDate) float64 {
	y := d.Year
	m := int(d.Month)

	if m <= 2 {
		y -= 1
		m += 12
	}

	A := math.Floor(float64(y) / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(d.Day) + B - 1524.5
}

// FromJulian returns the calendar date containing jd. The Gregorian
// correction is applied for all dates so that FromJulian inverts
// ToJulian across the whole supported range.
func FromJulian(jd float64) CivilDate {
	z := math.Floor(jd + 0.5)

	alpha := math.Floor((z - 1867216.25) / 36524.25)
	a := z + 1 + alpha - math.Floor(alpha/4)

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	dd := math.Floor(365.25 * c)
	e := math.Floor((b - dd) / 30.6001)

	day := int(b - dd - math.Floor(30.6001*e))

	month := int(e) - 1
	if e >= 14 {
		month = int(e) - 13
	}

	year := int(c) - 4716
	if month <= 2 {
		year = int(c) - 4715
	}

	return CivilDate{Year: year, Month: time.Month(month), Day: day}
}

// DaysSinceJ2000 returns the number of days between jd and J2000.0.
func DaysSinceJ2000(jd float64) float64 {
	return jd - J2000
}
