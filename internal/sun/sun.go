// Package sun models the apparent position of the Sun.
package sun

import (
	"math"

	"github.com/thurmanmarka/praytimes/internal/julian"
	"github.com/thurmanmarka/praytimes/internal/timeutil"
)

// HorizonDip is the depression (in degrees) of the Sun's center when its
// upper limb touches a sea-level horizon: 34' of refraction plus 16' of
// semi-diameter.
const HorizonDip = 0.833

// ElevationDip returns the extra horizon depression (degrees) seen by an
// observer elevationM meters above the surrounding terrain.
func ElevationDip(elevationM float64) float64 {
	if elevationM <= 0 {
		return 0
	}
	return 0.0347 * math.Sqrt(elevationM)
}

// AltitudeAt returns the Sun's geometric altitude (degrees) at Julian Day
// jd (UT) for an observer at lat, lon (degrees, east positive).
//
// It uses Greenwich mean sidereal time rather than the equation of time,
// so it is an independent route to the same geometry the prayer time
// formulas solve in closed form.
func AltitudeAt(jd, lat, lon float64) float64 {
	pos := PositionAt(jd)

	d := julian.DaysSinceJ2000(jd)
	gmst := 280.46061837 + 360.98564736629*d
	lst := timeutil.Normalize360(gmst + lon)

	// Hour angle H = LST - RA, folded to [-180, 180)
	H := timeutil.Normalize360(lst-pos.RightAscension+180) - 180

	sinAlt := timeutil.SinD(lat)*timeutil.SinD(pos.Declination) +
		timeutil.CosD(lat)*timeutil.CosD(pos.Declination)*timeutil.CosD(H)

	return timeutil.AsinD(sinAlt)
}
