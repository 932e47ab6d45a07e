package praytimes

import (
	"github.com/thurmanmarka/praytimes/internal/julian"
	"github.com/thurmanmarka/praytimes/internal/solver"
	"github.com/thurmanmarka/praytimes/internal/sun"
	"github.com/thurmanmarka/praytimes/internal/timeutil"
)

// dayTimes holds one value per prayer, indexed by Prayer.
type dayTimes [numPrayers]solver.Result

// initialGuess seeds each event's approximate local solar time so the
// Sun can be evaluated near the moment it happens.
var initialGuess = [numPrayers]float64{
	Imsak:    5,
	Fajr:     5,
	Sunrise:  6,
	Dhuhr:    12,
	Asr:      13,
	Sunset:   18,
	Maghrib:  18,
	Isha:     18,
	Midnight: 0,
}

// observer is everything the solar stage needs about one day at one
// place.
type observer struct {
	jd  float64 // Julian Day of local mean midnight
	lat float64
}

func (o observer) sunAt(hours float64) sun.Position {
	return sun.PositionAt(o.jd + hours/24)
}

// noon returns local apparent noon in local mean solar time.
func (o observer) noon(hours float64) float64 {
	return solver.Dhuhr(0, 0, o.sunAt(hours).EquationOfTime)
}

func (o observer) sunAngleTime(angle, hours float64, afterNoon bool) solver.Result {
	decl := o.sunAt(hours).Declination
	return solver.TimeForSunAngle(angle, afterNoon, decl, o.lat, o.noon(hours))
}

func (o observer) asrTime(factor, hours float64) solver.Result {
	decl := o.sunAt(hours).Declination
	return o.sunAngleTime(solver.AsrAngle(factor, o.lat, decl), hours, true)
}

// solarTimes solves every angle-defined event in local mean solar time,
// evaluating the Sun at the matching entry of guess. Minute-defined
// events are left unresolved for applyOffsets.
func solarTimes(o observer, loc Location, s Settings, guess [numPrayers]float64) dayTimes {
	var t dayTimes
	riseSet := solver.RiseSetAngle(loc.Elevation)
	m := s.Method

	if !s.Imsak.Minutes {
		t[Imsak] = o.sunAngleTime(s.Imsak.Value, guess[Imsak], false)
	}
	t[Fajr] = o.sunAngleTime(m.Fajr.Value, guess[Fajr], false)
	t[Sunrise] = o.sunAngleTime(riseSet, guess[Sunrise], false)
	t[Dhuhr] = solver.At(o.noon(guess[Dhuhr]))
	t[Asr] = o.asrTime(s.Asr.ShadowFactor(), guess[Asr])
	t[Sunset] = o.sunAngleTime(riseSet, guess[Sunset], true)
	if !m.Maghrib.Minutes {
		t[Maghrib] = o.sunAngleTime(m.Maghrib.Value, guess[Maghrib], true)
	}
	if !m.Isha.Minutes {
		t[Isha] = o.sunAngleTime(m.Isha.Value, guess[Isha], true)
	}
	return t
}

// refine replaces each guess with the solved time where there is one.
func refine(guess [numPrayers]float64, t dayTimes) [numPrayers]float64 {
	for i, r := range t {
		if r.OK {
			guess[i] = r.Hours
		}
	}
	return guess
}

// toCivil shifts local mean solar time to the civil zone.
func toCivil(t dayTimes, loc Location, tz Timezone) dayTimes {
	shift := tz.hours(loc) - loc.Lon/15
	for i := range t {
		if t[i].OK {
			t[i].Hours += shift
		}
	}
	return t
}

// adjustHighLats moves twilight events that are unreachable, or further
// from sunrise/sunset than the rule allows, to the rule's share of the
// night. Without both sunrise and sunset there is no night to share and
// the events are left as they are.
func adjustHighLats(t dayTimes, s Settings) dayTimes {
	if s.HighLats == HighLatNone || !t[Sunrise].OK || !t[Sunset].OK {
		return t
	}
	night := timeutil.TimeDiff(t[Sunset].Hours, t[Sunrise].Hours)

	adjust := func(r solver.Result, base float64, angle float64, afterNoon bool) solver.Result {
		portion := solver.NightPortion(s.HighLats.nightFraction(angle), night)
		if afterNoon {
			if !r.OK || timeutil.TimeDiff(base, r.Hours) > portion {
				return solver.At(base + portion)
			}
			return r
		}
		if !r.OK || timeutil.TimeDiff(r.Hours, base) > portion {
			return solver.At(base - portion)
		}
		return r
	}

	m := s.Method
	if !s.Imsak.Minutes {
		t[Imsak] = adjust(t[Imsak], t[Sunrise].Hours, s.Imsak.Value, false)
	}
	t[Fajr] = adjust(t[Fajr], t[Sunrise].Hours, m.Fajr.Value, false)
	if !m.Maghrib.Minutes {
		t[Maghrib] = adjust(t[Maghrib], t[Sunset].Hours, m.Maghrib.Value, true)
	}
	if !m.Isha.Minutes {
		t[Isha] = adjust(t[Isha], t[Sunset].Hours, m.Isha.Value, true)
	}
	return t
}

// applyOffsets resolves the minute-defined events from their anchors.
func applyOffsets(t dayTimes, s Settings) dayTimes {
	m := s.Method
	if s.Imsak.Minutes {
		t[Imsak] = solver.TimeForMinutesOffset(t[Fajr], s.Imsak.Value, false)
	}
	if m.Maghrib.Minutes {
		t[Maghrib] = solver.TimeForMinutesOffset(t[Sunset], m.Maghrib.Value, true)
	}
	if m.Isha.Minutes {
		t[Isha] = solver.TimeForMinutesOffset(t[Maghrib], m.Isha.Value, true)
	}
	t[Dhuhr] = solver.TimeForMinutesOffset(t[Dhuhr], s.Dhuhr.Value, true)
	return t
}

// midnight is halfway from sunset to sunrise, or to Fajr for Jafari.
func midnight(t dayTimes, mode MidnightMode) solver.Result {
	end := t[Sunrise]
	if mode == MidnightJafari {
		end = t[Fajr]
	}
	if !t[Sunset].OK || !end.OK {
		return solver.Unreachable
	}
	return solver.At(t[Sunset].Hours + timeutil.TimeDiff(t[Sunset].Hours, end.Hours)/2)
}

func applyAdjustments(t dayTimes, adj Adjustments) dayTimes {
	for p, minutes := range adj {
		if p >= 0 && p < numPrayers && t[p].OK {
			t[p].Hours += minutes / 60
		}
	}
	return t
}

func computeDay(date Date, loc Location, s Settings) [numPrayers]Time {
	o := observer{
		jd:  julian.ToJulian(date) - loc.Lon/360,
		lat: loc.Lat,
	}

	iterations := s.Iterations
	if iterations < 1 {
		iterations = 1
	}

	guess := initialGuess
	var t dayTimes
	for i := 0; i < iterations; i++ {
		t = solarTimes(o, loc, s, guess)
		guess = refine(guess, t)
	}

	t = toCivil(t, loc, s.Timezone)
	t = adjustHighLats(t, s)
	t = applyOffsets(t, s)
	t[Midnight] = midnight(t, s.Method.Midnight)
	t = applyAdjustments(t, s.Adjustments)

	var out [numPrayers]Time
	for i, r := range t {
		out[i] = Time{Hours: r.Hours, OK: r.OK}
	}
	return out
}
