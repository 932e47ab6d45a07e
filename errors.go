package praytimes

import (
	"fmt"
	"strings"

	"cloudeng.io/errors"

	"github.com/thurmanmarka/praytimes/internal/julian"
)

var (
	// ErrInvalidDate is returned when a date does not exist in the
	// proleptic Gregorian calendar or cannot be parsed.
	ErrInvalidDate = julian.ErrInvalidDate

	// ErrInvalidLocation is returned for coordinates outside the valid
	// latitude/longitude range or a negative elevation.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrUnreachableSolarEvent marks prayers whose defining Sun angle is
	// never reached on the requested date and location.
	ErrUnreachableSolarEvent = errors.New("solar event does not occur on this date")

	// ErrInvalidSettings is returned for settings carrying a non-finite
	// offset, angle or adjustment.
	ErrInvalidSettings = errors.New("invalid settings")

	// The following are warnings: the lookup that produced them fell back
	// to the documented default and the returned value is usable.

	// ErrUnknownMethod is returned when a method name is not in the registry.
	ErrUnknownMethod = errors.New("unknown calculation method")

	// ErrUnknownAsrMethod is returned for an unrecognised Asr convention.
	ErrUnknownAsrMethod = errors.New("unknown asr method")

	// ErrUnknownHighLatitudeRule is returned for an unrecognised
	// high-latitude rule.
	ErrUnknownHighLatitudeRule = errors.New("unknown high latitude rule")

	// ErrUnknownFormat is returned for an unrecognised output format.
	ErrUnknownFormat = errors.New("unknown time format")

	// ErrUnknownTimezone is returned for a timezone that is neither
	// "auto", a numeric offset, nor a known IANA zone name.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// UnreachableError lists the prayers that could not be resolved for a
// date and location.
type UnreachableError struct {
	Date     Date
	Location Location
	Prayers  []Prayer
}

func (e *UnreachableError) Error() string {
	names := make([]string, len(e.Prayers))
	for i, p := range e.Prayers {
		names[i] = p.String()
	}
	return fmt.Sprintf("%s at %.4f,%.4f: %v: %s",
		e.Date, e.Location.Lat, e.Location.Lon, ErrUnreachableSolarEvent, strings.Join(names, ", "))
}

func (e *UnreachableError) Unwrap() error {
	return ErrUnreachableSolarEvent
}

// IsWarning reports whether err only carries fallback warnings, that is
// every error it wraps is one of the ErrUnknown* values.
func IsWarning(err error) bool {
	if err == nil {
		return false
	}
	if m, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range m.Unwrap() {
			if !IsWarning(e) {
				return false
			}
		}
		return true
	}
	for _, w := range []error{ErrUnknownMethod, ErrUnknownAsrMethod, ErrUnknownHighLatitudeRule, ErrUnknownFormat, ErrUnknownTimezone} {
		if errors.Is(err, w) {
			return true
		}
	}
	return false
}
