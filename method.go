package praytimes

import (
	"fmt"
	"strconv"
	"strings"
)

// Param is either a Sun depression angle in degrees or a fixed number of
// minutes relative to a neighbouring prayer.
type Param struct {
	Value   float64
	Minutes bool
}

// Degrees returns an angle-based Param.
func Degrees(v float64) Param { return Param{Value: v} }

// Minutes returns a minute-offset Param.
func Minutes(v float64) Param { return Param{Value: v, Minutes: true} }

func (p Param) String() string {
	v := strconv.FormatFloat(p.Value, 'f', -1, 64)
	if p.Minutes {
		return v + " min"
	}
	return v + "°"
}

// ParseParam parses "18", "18°", "18deg" as degrees and "90 min" or
// "90min" as minutes.
func ParseParam(s string) (Param, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	minutes := false
	switch {
	case strings.HasSuffix(s, "min"):
		s, minutes = strings.TrimSpace(strings.TrimSuffix(s, "min")), true
	case strings.HasSuffix(s, "deg"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "deg"))
	case strings.HasSuffix(s, "°"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "°"))
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Param{}, fmt.Errorf("invalid angle or minutes %q: %w", s, err)
	}
	if !finite(v) {
		return Param{}, fmt.Errorf("%w: angle or minutes %q", ErrInvalidSettings, s)
	}
	return Param{Value: v, Minutes: minutes}, nil
}

// MidnightMode selects how the middle of the night is measured.
type MidnightMode int

const (
	// MidnightStandard is the midpoint between sunset and sunrise.
	MidnightStandard MidnightMode = iota

	// MidnightJafari is the midpoint between sunset and Fajr.
	MidnightJafari
)

func (m MidnightMode) String() string {
	if m == MidnightJafari {
		return "Jafari"
	}
	return "Standard"
}

// Method is a named calculation convention.
type Method struct {
	Name        string
	Description string
	Fajr        Param
	Isha        Param
	Maghrib     Param // Minutes(0) means Maghrib is sunset
	Midnight    MidnightMode
}

// DefaultMethod is used when no method, or an unknown one, is selected.
const DefaultMethod = "MWL"

var methods = []Method{
	{
		Name:        "MWL",
		Description: "Muslim World League",
		Fajr:        Degrees(18),
		Isha:        Degrees(17),
		Maghrib:     Minutes(0),
	},
	{
		Name:        "ISNA",
		Description: "Islamic Society of North America",
		Fajr:        Degrees(15),
		Isha:        Degrees(15),
		Maghrib:     Minutes(0),
	},
	{
		Name:        "Egypt",
		Description: "Egyptian General Authority of Survey",
		Fajr:        Degrees(19.5),
		Isha:        Degrees(17.5),
		Maghrib:     Minutes(0),
	},
	{
		Name:        "Makkah",
		Description: "Umm Al-Qura University, Makkah",
		Fajr:        Degrees(18.5),
		Isha:        Minutes(90),
		Maghrib:     Minutes(0),
	},
	{
		Name:        "Karachi",
		Description: "University of Islamic Sciences, Karachi",
		Fajr:        Degrees(18),
		Isha:        Degrees(18),
		Maghrib:     Minutes(0),
	},
	{
		Name:        "Tehran",
		Description: "Institute of Geophysics, University of Tehran",
		Fajr:        Degrees(17.7),
		Isha:        Degrees(14),
		Maghrib:     Degrees(4.5),
		Midnight:    MidnightJafari,
	},
	{
		Name:        "Jafari",
		Description: "Shia Ithna-Ashari, Leva Institute, Qum",
		Fajr:        Degrees(16),
		Isha:        Degrees(14),
		Maghrib:     Degrees(4),
		Midnight:    MidnightJafari,
	},
}

// Methods returns a copy of the method registry in a stable order.
func Methods() []Method {
	out := make([]Method, len(methods))
	copy(out, methods)
	return out
}

// ParseMethod looks up a method by case-insensitive name. Unknown names
// return the default method along with an error wrapping
// ErrUnknownMethod. An empty name selects the default without error.
func ParseMethod(name string) (Method, error) {
	if name == "" {
		return MethodByName(DefaultMethod), nil
	}
	for _, m := range methods {
		if strings.EqualFold(m.Name, name) {
			return m, nil
		}
	}
	return MethodByName(DefaultMethod), fmt.Errorf("%w: %q, using %s", ErrUnknownMethod, name, DefaultMethod)
}

// MethodByName is ParseMethod without the warning.
func MethodByName(name string) Method {
	for _, m := range methods {
		if strings.EqualFold(m.Name, name) {
			return m
		}
	}
	return methods[0]
}

// AsrMethod is the juristic convention for the Asr shadow length.
type AsrMethod int

const (
	// AsrStandard (Shafi'i, Maliki, Hanbali, Jafari): shadow factor 1.
	AsrStandard AsrMethod = iota
	// AsrHanafi: shadow factor 2.
	AsrHanafi
)

// ShadowFactor returns the multiple of an object's height its shadow
// must exceed the noon shadow by.
func (a AsrMethod) ShadowFactor() float64 {
	if a == AsrHanafi {
		return 2
	}
	return 1
}

func (a AsrMethod) String() string {
	if a == AsrHanafi {
		return "Hanafi"
	}
	return "Standard"
}

// ParseAsrMethod parses "Standard" or "Hanafi". Unknown names return
// AsrStandard with an error wrapping ErrUnknownAsrMethod.
func ParseAsrMethod(name string) (AsrMethod, error) {
	switch strings.ToLower(name) {
	case "", "standard", "shafii":
		return AsrStandard, nil
	case "hanafi":
		return AsrHanafi, nil
	}
	return AsrStandard, fmt.Errorf("%w: %q, using Standard", ErrUnknownAsrMethod, name)
}

// HighLatRule decides how Fajr and Isha are placed when the Sun does not
// get far enough below the horizon, or stays there too long.
type HighLatRule int

const (
	// HighLatNone leaves unreachable times unresolved.
	HighLatNone HighLatRule = iota
	// HighLatNightMiddle caps the twilight at half the night.
	HighLatNightMiddle
	// HighLatOneSeventh caps the twilight at a seventh of the night.
	HighLatOneSeventh
	// HighLatAngleBased caps the twilight at angle/60 of the night.
	HighLatAngleBased
)

// DefaultHighLatRule is used when no rule, or an unknown one, is selected.
const DefaultHighLatRule = HighLatNightMiddle

var highLatNames = map[HighLatRule]string{
	HighLatNone:        "None",
	HighLatNightMiddle: "NightMiddle",
	HighLatOneSeventh:  "OneSeventh",
	HighLatAngleBased:  "AngleBased",
}

func (r HighLatRule) String() string {
	if s, ok := highLatNames[r]; ok {
		return s
	}
	return fmt.Sprintf("HighLatRule(%d)", int(r))
}

// ParseHighLatRule parses a rule name case-insensitively. Unknown names
// return DefaultHighLatRule with an error wrapping
// ErrUnknownHighLatitudeRule.
func ParseHighLatRule(name string) (HighLatRule, error) {
	if name == "" {
		return DefaultHighLatRule, nil
	}
	for r, s := range highLatNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return DefaultHighLatRule, fmt.Errorf("%w: %q, using %s", ErrUnknownHighLatitudeRule, name, DefaultHighLatRule)
}

// nightFraction returns the share of the night the rule allows between
// base (sunrise or sunset) and an event at angle degrees.
func (r HighLatRule) nightFraction(angle float64) float64 {
	switch r {
	case HighLatOneSeventh:
		return 1.0 / 7
	case HighLatAngleBased:
		return angle / 60
	default:
		return 0.5
	}
}
