package praytimes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thurmanmarka/praytimes"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		hours float64
		f     praytimes.Format
		want  string
	}{
		{13.75, praytimes.Format24h, "13:45"},
		{13.75, praytimes.Format12h, "1:45 pm"},
		{13.75, praytimes.Format12hNS, "1:45"},
		{13.75, praytimes.FormatFloat, "13.7500"},
		{0, praytimes.Format24h, "00:00"},
		{0, praytimes.Format12h, "12:00 am"},
		{11.9999, praytimes.Format12h, "12:00 pm"},
		{5.1, praytimes.Format24h, "05:06"},
		{5 + 29.6/60, praytimes.Format24h, "05:30"},
		{5 + 29.4/60, praytimes.Format24h, "05:29"},
		{23.999, praytimes.Format24h, "00:00"},
		{24.5, praytimes.Format24h, "00:30"},
		{-0.5, praytimes.Format24h, "23:30"},
		{25.25, praytimes.FormatFloat, "1.2500"},
	}
	for _, tt := range tests {
		got := praytimes.FormatTime(praytimes.Time{Hours: tt.hours, OK: true}, tt.f)
		assert.Equal(t, tt.want, got, "%v as %s", tt.hours, tt.f)
	}

	for _, f := range []praytimes.Format{praytimes.Format24h, praytimes.Format12h, praytimes.FormatFloat} {
		assert.Equal(t, praytimes.InvalidTime, praytimes.FormatTime(praytimes.Time{Hours: 12}, f))
	}
}

func TestTimesFormatOrder(t *testing.T) {
	times := mustCompute(t, date(2025, 5, 5), tehran, settings("MWL", 3.5))
	entries := times.Format(praytimes.Format24h)

	assert.Len(t, entries, len(praytimes.Prayers()))
	for i, e := range entries {
		assert.Equal(t, praytimes.Prayers()[i], e.Prayer)
	}
	assert.Equal(t, praytimes.Imsak, entries[0].Prayer)
	assert.Equal(t, praytimes.Midnight, entries[len(entries)-1].Prayer)
	assert.Contains(t, times.String(), "Fajr: ")
}
