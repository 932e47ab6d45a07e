package solver

import (
	"math"
	"testing"

	"github.com/thurmanmarka/praytimes/internal/timeutil"
)

func TestDhuhr(t *testing.T) {
	// Greenwich with no equation of time is exactly noon.
	if got := Dhuhr(0, 0, 0); got != 12 {
		t.Errorf("Dhuhr(0,0,0) = %v, want 12", got)
	}
	// 15 degrees east is one hour earlier; +16.4 min of EqT is earlier still.
	if got, want := Dhuhr(0, 15, 16.4), 11-16.4/60; math.Abs(got-want) > 1e-12 {
		t.Errorf("Dhuhr = %v, want %v", got, want)
	}
	// Moving 1 degree west at a fixed zone delays noon by 4 minutes.
	if d := (Dhuhr(3.5, 50, -3) - Dhuhr(3.5, 51, -3)) * 60; math.Abs(d-4) > 1e-9 {
		t.Errorf("shift per degree = %v min, want 4", d)
	}
}

func TestHourAngleEquatorEquinox(t *testing.T) {
	h, ok := HourAngle(0, 0, 0)
	if !ok || math.Abs(h-90) > 1e-9 {
		t.Fatalf("HourAngle(0,0,0) = %v, %v; want 90, true", h, ok)
	}

	rise := TimeForSunAngle(0, false, 0, 0, 12)
	set := TimeForSunAngle(0, true, 0, 0, 12)
	if !rise.OK || !set.OK {
		t.Fatal("expected sunrise and sunset at the equator")
	}
	if math.Abs(rise.Hours-6) > 1e-9 || math.Abs(set.Hours-18) > 1e-9 {
		t.Errorf("rise/set = %v/%v, want 6/18", rise.Hours, set.Hours)
	}
}

func TestTimeForSunAngleUnreachable(t *testing.T) {
	tests := []struct {
		name             string
		angle, decl, lat float64
	}{
		{"midnight sun", 0.833, 23.4, 75},
		{"polar night", 0.833, -23.4, 75},
		{"no astronomical night", 18, 23.4, 55},
		{"pole", 18, 10, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := TimeForSunAngle(tt.angle, false, tt.decl, tt.lat, 12); r.OK {
				t.Errorf("expected unreachable, got %v", r.Hours)
			}
		})
	}
}

func TestTimeForMinutesOffset(t *testing.T) {
	base := At(19.5)
	if r := TimeForMinutesOffset(base, 90, true); !r.OK || r.Hours != 21 {
		t.Errorf("after: got %+v, want 21", r)
	}
	if r := TimeForMinutesOffset(base, 30, false); !r.OK || r.Hours != 19 {
		t.Errorf("before: got %+v, want 19", r)
	}
	if r := TimeForMinutesOffset(Unreachable, 90, true); r.OK {
		t.Errorf("offset from unreachable base should stay unreachable")
	}
}

func TestAsrAngle(t *testing.T) {
	// Sun overhead at noon: shadow length equals height at 45 degrees.
	if got := AsrAngle(1, 20, 20); math.Abs(got+45) > 1e-9 {
		t.Errorf("AsrAngle(1, 20, 20) = %v, want -45", got)
	}
	// Hanafi shadow is longer so the Sun is lower.
	if std, han := AsrAngle(1, 35.7, 23), AsrAngle(2, 35.7, 23); !(han > std) {
		t.Errorf("Hanafi angle %v should be a shallower altitude than standard %v", han, std)
	}
}

func TestRiseSetAngle(t *testing.T) {
	if got := RiseSetAngle(0); got != 0.833 {
		t.Errorf("RiseSetAngle(0) = %v", got)
	}
	if got := RiseSetAngle(400); math.Abs(got-(0.833+0.694)) > 1e-12 {
		t.Errorf("RiseSetAngle(400) = %v", got)
	}
}

func TestNightPortion(t *testing.T) {
	if got := NightPortion(1.0/7, 7); math.Abs(got-1) > 1e-12 {
		t.Errorf("NightPortion = %v, want 1", got)
	}
}

// altitude at solar time h for a fixed declination.
func fixedAltitude(lat, decl float64) AltitudeFunc {
	return func(h float64) float64 {
		H := 15 * (h - 12)
		return timeutil.AsinD(timeutil.SinD(lat)*timeutil.SinD(decl) +
			timeutil.CosD(lat)*timeutil.CosD(decl)*timeutil.CosD(H))
	}
}

func TestClosedFormMatchesBisection(t *testing.T) {
	tests := []struct {
		name      string
		lat, decl float64
		angle     float64
		afterNoon bool
	}{
		{"fajr 18 deg", 35.7, 20, 18, false},
		{"isha 17 deg", 51.5, -10, 17, true},
		{"sunrise", -33.9, -23, 0.833, false},
		{"sunset", 0, 5, 0.833, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closed := TimeForSunAngle(tt.angle, tt.afterNoon, tt.decl, tt.lat, 12)
			if !closed.OK {
				t.Fatal("closed form unreachable")
			}

			f := fixedAltitude(tt.lat, tt.decl)
			var numeric Result
			if tt.afterNoon {
				numeric = FindAltitudeEvent(f, 12, 24, -tt.angle, CrossingDown, 48, 1e-6)
			} else {
				numeric = FindAltitudeEvent(f, 0, 12, -tt.angle, CrossingUp, 48, 1e-6)
			}
			if !numeric.OK {
				t.Fatal("bisection found no crossing")
			}

			if diff := math.Abs(closed.Hours-numeric.Hours) * 60; diff > 0.01 {
				t.Errorf("closed %.5f vs bisection %.5f (%.3f min)", closed.Hours, numeric.Hours, diff)
			}
		})
	}
}

func TestFindAltitudeEventNoCrossing(t *testing.T) {
	f := fixedAltitude(80, 20) // never below -18
	if r := FindAltitudeEvent(f, 0, 12, -18, CrossingUp, 48, 1e-4); r.OK {
		t.Errorf("expected no crossing, got %v", r.Hours)
	}
	if r := FindAltitudeEvent(f, 12, 12, 0, CrossingUp, 48, 1e-4); r.OK {
		t.Errorf("empty interval should not find a crossing")
	}
}
