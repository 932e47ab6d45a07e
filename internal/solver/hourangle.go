// Package solver turns solar geometry into clock times.
//
// All times are fractional hours. Whether they are local civil time or
// solar time depends on the noon value the caller supplies.
package solver

import (
	"math"

	"github.com/thurmanmarka/praytimes/internal/sun"
	"github.com/thurmanmarka/praytimes/internal/timeutil"
)

// Result is a solved time, or a marker that the event does not happen.
type Result struct {
	Hours float64 // fractional hours
	OK    bool    // false if the Sun never reaches the requested angle
}

// Unreachable is the zero Result.
var Unreachable = Result{}

// At wraps a known time as a Result.
func At(h float64) Result {
	return Result{Hours: h, OK: true}
}

// Dhuhr returns solar noon as clock time:
//
//	12 + tz - lon/15 - eqt/60
//
// tz is in hours east of UTC, lon in degrees east positive and eqt in
// minutes.
func Dhuhr(tz, lon, eqtMinutes float64) float64 {
	return 12 + tz - lon/15 - eqtMinutes/60
}

// HourAngle returns the Sun's hour angle (degrees) when its center is
// angle degrees below the horizon. Negative angles are altitudes above
// the horizon. ok is false when the Sun never gets there on this day.
func HourAngle(angle, decl, lat float64) (h float64, ok bool) {
	num := -timeutil.SinD(angle) - timeutil.SinD(lat)*timeutil.SinD(decl)
	den := timeutil.CosD(lat) * timeutil.CosD(decl)
	x := num / den
	if math.IsNaN(x) || x < -1 || x > 1 {
		return 0, false
	}
	return timeutil.AcosD(x), true
}

// TimeForSunAngle returns the time on either side of noon at which the
// Sun is angle degrees below the horizon.
func TimeForSunAngle(angle float64, afterNoon bool, decl, lat, noon float64) Result {
	h, ok := HourAngle(angle, decl, lat)
	if !ok {
		return Unreachable
	}
	t := h / 15
	if afterNoon {
		return At(noon + t)
	}
	return At(noon - t)
}

// TimeForMinutesOffset returns base shifted by minutes, forwards when
// afterNoon is set and backwards otherwise. An unreachable base stays
// unreachable.
func TimeForMinutesOffset(base Result, minutes float64, afterNoon bool) Result {
	if !base.OK {
		return Unreachable
	}
	if afterNoon {
		return At(base.Hours + minutes/60)
	}
	return At(base.Hours - minutes/60)
}

// AsrAngle returns the depression angle (negative, so above the horizon)
// at which an object's shadow equals factor times its height plus its
// noon shadow.
func AsrAngle(factor, lat, decl float64) float64 {
	return -timeutil.AcotD(factor + timeutil.TanD(math.Abs(lat-decl)))
}

// RiseSetAngle returns the depression of the Sun's center at apparent
// sunrise and sunset for an observer at elevationM meters.
func RiseSetAngle(elevationM float64) float64 {
	return sun.HorizonDip + sun.ElevationDip(elevationM)
}

// NightPortion returns fraction of a night lasting night hours.
func NightPortion(fraction, night float64) float64 {
	return fraction * night
}
