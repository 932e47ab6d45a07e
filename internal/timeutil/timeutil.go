package timeutil

import (
	"math"

	"github.com/soniakeys/unit"
)

// -----------------------------
// Degree-based trig.
// -----------------------------

func SinD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Sin()
}

func CosD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Cos()
}

func TanD(deg float64) float64 {
	return unit.AngleFromDeg(deg).Tan()
}

// AsinD returns the arcsine of x in degrees.
func AsinD(x float64) float64 {
	return unit.Angle(math.Asin(x)).Deg()
}

// AcosD returns the arccosine of x in degrees. Callers are expected to
// have checked that x is within [-1, 1].
func AcosD(x float64) float64 {
	return unit.Angle(math.Acos(x)).Deg()
}

// AcotD returns the arccotangent of x in degrees.
func AcotD(x float64) float64 {
	return unit.Angle(math.Atan(1 / x)).Deg()
}

// Atan2D returns atan2(y, x) in degrees.
func Atan2D(y, x float64) float64 {
	return unit.Angle(math.Atan2(y, x)).Deg()
}

// -----------------------------
// Range reduction.
// -----------------------------

func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	return d
}

func Normalize24(h float64) float64 {
	h = math.Mod(h, 24.0)
	if h < 0 {
		h += 24.0
	}
	return h
}

// TimeDiff returns the clockwise distance in hours from a to b on a
// 24-hour dial, in [0, 24).
func TimeDiff(a, b float64) float64 {
	return Normalize24(b - a)
}

// SplitHours breaks fractional hours [0,24) into whole hours and whole
// minutes, truncating seconds.
func SplitHours(h float64) (hours, minutes int) {
	hours = int(math.Floor(h))
	minutes = int(math.Floor((h - float64(hours)) * 60))
	return hours, minutes
}
