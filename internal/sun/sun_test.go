package sun

import (
	"math"
	"testing"
	"time"

	"github.com/thurmanmarka/praytimes/internal/julian"
)

func jdNoon(y int, m time.Month, d int) float64 {
	return julian.ToJulian(julian.CivilDate{Year: y, Month: m, Day: d}) + 0.5
}

func TestDeclinationSolsticesAndEquinoxes(t *testing.T) {
	tests := []struct {
		name    string
		jd      float64
		wantDec float64
		tol     float64
	}{
		{"June solstice", jdNoon(2025, time.June, 21), 23.44, 0.05},
		{"December solstice", jdNoon(2025, time.December, 21), -23.44, 0.05},
		{"March equinox", jdNoon(2025, time.March, 20), 0, 0.4},
		{"September equinox", jdNoon(2025, time.September, 22), 0, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PositionAt(tt.jd).Declination
			if math.Abs(got-tt.wantDec) > tt.tol {
				t.Errorf("declination = %.4f, want %.2f ± %.2f", got, tt.wantDec, tt.tol)
			}
		})
	}
}

func TestEquationOfTime(t *testing.T) {
	// Almanac values (minutes), good to a few tenths.
	tests := []struct {
		name string
		jd   float64
		want float64
	}{
		{"February minimum", jdNoon(2025, time.February, 11), -14.2},
		{"May maximum", jdNoon(2025, time.May, 14), 3.7},
		{"July minimum", jdNoon(2025, time.July, 26), -6.5},
		{"November maximum", jdNoon(2025, time.November, 3), 16.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PositionAt(tt.jd).EquationOfTime
			if math.Abs(got-tt.want) > 0.6 {
				t.Errorf("equation of time = %.2f min, want %.1f", got, tt.want)
			}
		})
	}
}

func TestEquationOfTimeContinuousAtEquinox(t *testing.T) {
	// RA and mean longitude cross 0h on different days near the March
	// equinox; the folded difference must not jump by a day.
	prev := PositionAt(jdNoon(2025, time.March, 10)).EquationOfTime
	for d := 11; d <= 31; d++ {
		cur := PositionAt(jdNoon(2025, time.March, d)).EquationOfTime
		if math.Abs(cur-prev) > 1 {
			t.Fatalf("March %d: equation of time jumped from %.2f to %.2f", d, prev, cur)
		}
		prev = cur
	}
}

func TestDistance(t *testing.T) {
	if r := PositionAt(jdNoon(2025, time.January, 4)).Distance; math.Abs(r-0.9833) > 0.001 {
		t.Errorf("perihelion distance = %.4f AU", r)
	}
	if r := PositionAt(jdNoon(2025, time.July, 4)).Distance; math.Abs(r-1.0167) > 0.001 {
		t.Errorf("aphelion distance = %.4f AU", r)
	}
}

func TestPositionDeterministic(t *testing.T) {
	jd := jdNoon(2031, time.August, 17) + 0.123456789
	a, b := PositionAt(jd), PositionAt(jd)
	if a != b {
		t.Fatalf("PositionAt not deterministic: %+v vs %+v", a, b)
	}
}

func TestAltitudeAtNoon(t *testing.T) {
	// At local apparent noon the altitude is 90 - |lat - dec|.
	lat, lon := 33.4484, -112.0740
	jd := jdNoon(2025, time.June, 21)
	pos := PositionAt(jd)

	noonUT := 12 - lon/15 - pos.EquationOfTime/60
	alt := AltitudeAt(jdNoon(2025, time.June, 21)-0.5+noonUT/24, lat, lon)
	want := 90 - math.Abs(lat-pos.Declination)

	if math.Abs(alt-want) > 0.1 {
		t.Errorf("noon altitude = %.3f, want %.3f", alt, want)
	}
}

func TestElevationDip(t *testing.T) {
	if got := ElevationDip(0); got != 0 {
		t.Errorf("ElevationDip(0) = %v", got)
	}
	if got := ElevationDip(-10); got != 0 {
		t.Errorf("ElevationDip(-10) = %v", got)
	}
	if got := ElevationDip(100); math.Abs(got-0.347) > 1e-12 {
		t.Errorf("ElevationDip(100) = %v, want 0.347", got)
	}
}
