package solver

// AltitudeFunc returns the Sun's altitude in degrees at fractional hour h.
type AltitudeFunc func(h float64) float64

// EventType describes whether we are looking for a rising or setting event.
type EventType int

const (
	// CrossingUp means altitude is increasing through the target value (rise).
	CrossingUp EventType = iota
	// CrossingDown means altitude is decreasing through the target value (set).
	CrossingDown
)

// FindAltitudeEvent searches [start, end] hours for the time where f
// crosses targetDeg in the direction given by eventType. It samples the
// interval in steps, then bisects the first bracket down to tol hours.
//
// The closed-form solver above is what the prayer pipeline uses; this is
// the brute-force check against it.
func FindAltitudeEvent(f AltitudeFunc, start, end, targetDeg float64, eventType EventType, steps int, tol float64) Result {
	if !(start < end) {
		return Unreachable
	}
	if steps < 2 {
		steps = 2
	}

	interval := (end - start) / float64(steps-1)

	var (
		prevT   = start
		prevAlt = f(prevT) - targetDeg
	)

	for i := 1; i < steps; i++ {
		t := start + float64(i)*interval
		alt := f(t) - targetDeg

		if hasCrossing(prevAlt, alt, eventType) {
			return bisect(f, prevT, t, targetDeg, eventType, tol)
		}

		prevT, prevAlt = t, alt
	}

	return Unreachable
}

func hasCrossing(a1, a2 float64, eventType EventType) bool {
	switch eventType {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		return a1*a2 <= 0
	}
}

func bisect(f AltitudeFunc, a, b, targetDeg float64, eventType EventType, tol float64) Result {
	altA := f(a) - targetDeg
	altB := f(b) - targetDeg

	if !hasCrossing(altA, altB, eventType) {
		return Unreachable
	}

	for b-a > tol {
		mid := a + (b-a)/2
		altM := f(mid) - targetDeg

		if hasCrossing(altA, altM, eventType) {
			b = mid
		} else {
			a = mid
			altA = altM
		}
	}

	return At(a + (b-a)/2)
}
