package praytimes

import (
	"math"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/praytimes/internal/julian"
	"github.com/thurmanmarka/praytimes/internal/solver"
	"github.com/thurmanmarka/praytimes/internal/sun"
)

// diffMinutes is the absolute difference between two instants in minutes.
func diffMinutes(a, b time.Time) float64 {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d.Minutes()
}

func utcSettings(method string) Settings {
	s := DefaultSettings()
	s.Method = MethodByName(method)
	s.Timezone = FixedTimezone(0)
	s.Iterations = 2
	return s
}

// TestAltitudeAtSolvedTimes checks each solved time by evaluating the
// Sun's altitude there with the sidereal-time model.
func TestAltitudeAtSolvedTimes(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
		date Date
	}{
		{"Tehran summer", Location{Lat: 35.6892, Lon: 51.3890}, Date{Year: 2025, Month: time.June, Day: 21}},
		{"New York winter", Location{Lat: 40.7128, Lon: -74.0060}, Date{Year: 2025, Month: time.December, Day: 21}},
		{"Jakarta", Location{Lat: -6.2088, Lon: 106.8456}, Date{Year: 2025, Month: time.March, Day: 3}},
	}

	s := utcSettings("MWL")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			times, err := Compute(tc.date, tc.loc, s)
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			jd0 := julian.ToJulian(tc.date)

			want := map[Prayer]float64{
				Fajr:    -s.Method.Fajr.Value,
				Sunrise: -0.833,
				Sunset:  -0.833,
				Isha:    -s.Method.Isha.Value,
			}
			for p, alt := range want {
				tm := times.Get(p)
				if !tm.OK {
					t.Fatalf("%s unresolved", p)
				}
				got := sun.AltitudeAt(jd0+tm.Hours/24, tc.loc.Lat, tc.loc.Lon)
				if math.Abs(got-alt) > 0.25 {
					t.Errorf("%s at %.4fh: altitude %.3f°, want %.3f°", p, tm.Hours, got, alt)
				}
			}

			// Dhuhr is the highest point of the day.
			dhuhr := jd0 + times.Get(Dhuhr).Hours/24
			top := sun.AltitudeAt(dhuhr, tc.loc.Lat, tc.loc.Lon)
			for _, off := range []float64{-10, 10} {
				if a := sun.AltitudeAt(dhuhr+off/1440, tc.loc.Lat, tc.loc.Lon); a > top {
					t.Errorf("altitude %+.0f min from dhuhr is %.4f > %.4f", off, a, top)
				}
			}
		})
	}
}

// TestSunriseSunsetAgainstGoSunrise compares against an independent
// implementation of the NOAA sunrise algorithm.
func TestSunriseSunsetAgainstGoSunrise(t *testing.T) {
	cases := []struct {
		name string
		loc  Location
		date Date
	}{
		{"New York equinox", Location{Lat: 40.7128, Lon: -74.0060}, Date{Year: 2025, Month: time.March, Day: 20}},
		{"London midsummer", Location{Lat: 51.5074, Lon: -0.1278}, Date{Year: 2025, Month: time.June, Day: 21}},
		{"London midwinter", Location{Lat: 51.5074, Lon: -0.1278}, Date{Year: 2025, Month: time.December, Day: 21}},
		{"Quito", Location{Lat: -0.1807, Lon: -78.4678}, Date{Year: 2025, Month: time.September, Day: 1}},
		{"Cairo", Location{Lat: 30.0444, Lon: 31.2357}, Date{Year: 2025, Month: time.May, Day: 15}},
	}

	const maxErr = 3.0 // minutes

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			times, err := Compute(tc.date, tc.loc, utcSettings("MWL"))
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}

			rise, set := sunrise.SunriseSunset(tc.loc.Lat, tc.loc.Lon, tc.date.Year, tc.date.Month, tc.date.Day)

			gotRise := times.Get(Sunrise).On(tc.date, time.UTC)
			gotSet := times.Get(Sunset).On(tc.date, time.UTC)

			if e := diffMinutes(gotRise, rise); e > maxErr {
				t.Errorf("sunrise %s vs go-sunrise %s (%.2f min)", gotRise.Format(time.RFC3339), rise.Format(time.RFC3339), e)
			}
			if e := diffMinutes(gotSet, set); e > maxErr {
				t.Errorf("sunset %s vs go-sunrise %s (%.2f min)", gotSet.Format(time.RFC3339), set.Format(time.RFC3339), e)
			}
		})
	}
}

func TestIterationsConverge(t *testing.T) {
	loc := Location{Lat: 48.8566, Lon: 2.3522}
	d := Date{Year: 2025, Month: time.April, Day: 2}

	s := utcSettings("MWL")
	s.Iterations = 5
	ref, _ := Compute(d, loc, s)

	s.Iterations = 1
	one, _ := Compute(d, loc, s)

	for _, p := range Prayers() {
		if diff := math.Abs(one.Get(p).Hours-ref.Get(p).Hours) * 60; diff > 1 {
			t.Errorf("%s: single pass is %.2f min off the converged value", p, diff)
		}
	}

	// Zero is treated as one pass.
	s.Iterations = 0
	zero, _ := Compute(d, loc, s)
	if zero.Get(Fajr) != one.Get(Fajr) {
		t.Errorf("Iterations=0 should behave like 1")
	}
}

func TestAdjustHighLatsClampsLongTwilight(t *testing.T) {
	// Reachable but far: Fajr 3h before a 6h-night sunrise with a 1/7 cap.
	var d dayTimes
	d[Sunrise] = solver.At(4)
	d[Sunset] = solver.At(22)
	d[Fajr] = solver.At(1)
	d[Isha] = solver.At(22.5)

	s := DefaultSettings()
	s.HighLats = HighLatOneSeventh

	out := adjustHighLats(d, s)
	if got, want := out[Fajr].Hours, 4-6.0/7; math.Abs(got-want) > 1e-12 {
		t.Errorf("fajr = %v, want %v", got, want)
	}
	if got := out[Isha].Hours; got != 22.5 {
		t.Errorf("isha within the cap moved to %v", got)
	}
}
