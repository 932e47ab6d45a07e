package timeutil

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want360, want24 float64
	}{
		{0, 0, 0},
		{-1, 359, 23},
		{361, 1, 1},
		{24.5, 24.5, 0.5},
		{-730, 350, 2},
	}
	for _, tt := range tests {
		if got := Normalize360(tt.in); math.Abs(got-tt.want360) > 1e-9 {
			t.Errorf("Normalize360(%v) = %v, want %v", tt.in, got, tt.want360)
		}
		if got := Normalize24(tt.in); math.Abs(got-tt.want24) > 1e-9 {
			t.Errorf("Normalize24(%v) = %v, want %v", tt.in, got, tt.want24)
		}
	}
}

func TestTimeDiff(t *testing.T) {
	// Sunset 18:00 to sunrise 06:00 is a 12 hour night.
	if got := TimeDiff(18, 6); got != 12 {
		t.Errorf("TimeDiff(18, 6) = %v, want 12", got)
	}
	if got := TimeDiff(5, 6); got != 1 {
		t.Errorf("TimeDiff(5, 6) = %v, want 1", got)
	}
}

func TestInverseTrig(t *testing.T) {
	for _, deg := range []float64{-60, -17.7, 0, 4.5, 45, 89} {
		if got := AsinD(SinD(deg)); math.Abs(got-deg) > 1e-9 {
			t.Errorf("AsinD(SinD(%v)) = %v", deg, got)
		}
	}
	if got := AcotD(1); math.Abs(got-45) > 1e-9 {
		t.Errorf("AcotD(1) = %v, want 45", got)
	}
	if got := AcosD(0); math.Abs(got-90) > 1e-9 {
		t.Errorf("AcosD(0) = %v, want 90", got)
	}
	if got := Atan2D(1, -1); math.Abs(got-135) > 1e-9 {
		t.Errorf("Atan2D(1, -1) = %v, want 135", got)
	}
}

func TestSplitHours(t *testing.T) {
	h, m := SplitHours(13.75)
	if h != 13 || m != 45 {
		t.Errorf("SplitHours(13.75) = %d:%d, want 13:45", h, m)
	}
}
