package sun

import (
	"github.com/soniakeys/unit"

	"github.com/thurmanmarka/praytimes/internal/julian"
	"github.com/thurmanmarka/praytimes/internal/timeutil"
)

// Position is the Sun's apparent place at an instant, reduced to what
// the prayer time formulas need.
type Position struct {
	Declination    float64 // degrees, north positive
	RightAscension float64 // degrees [0, 360)
	EquationOfTime float64 // minutes, apparent minus mean solar time
	Distance       float64 // astronomical units
}

// PositionAt returns the Sun's position at Julian Day jd.
//
// This is the same low-precision model astronomical almanacs publish for
// rise/set work (about one minute of time between 1950 and 2050):
//
//	g   = mean anomaly of the Sun
//	q   = mean longitude of the Sun
//	L   = ecliptic longitude of the Sun
//	eps = obliquity of the ecliptic
func PositionAt(jd float64) Position {
	d := julian.DaysSinceJ2000(jd)

	g := timeutil.Normalize360(357.529 + 0.98560028*d)
	q := timeutil.Normalize360(280.459 + 0.98564736*d)

	gA := unit.AngleFromDeg(g)

	// Ecliptic longitude with equation of center
	L := timeutil.Normalize360(q + 1.915*gA.Sin() + 0.020*(2*gA).Sin())

	R := 1.00014 - 0.01671*gA.Cos() - 0.00014*(2*gA).Cos()

	eps := 23.439 - 0.00000036*d

	ra := timeutil.Normalize360(timeutil.Atan2D(timeutil.CosD(eps)*timeutil.SinD(L), timeutil.CosD(L)))
	dec := timeutil.AsinD(timeutil.SinD(eps) * timeutil.SinD(L))

	// q and RA straddle 0h around the March equinox; fold the
	// difference back into [-12h, 12h).
	eqtHours := timeutil.Normalize24(q/15-ra/15+12) - 12

	return Position{
		Declination:    dec,
		RightAscension: ra,
		EquationOfTime: eqtHours * 60,
		Distance:       R,
	}
}
