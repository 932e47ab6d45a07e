package praytimes

import (
	"fmt"
	"strconv"

	"github.com/thurmanmarka/praytimes/internal/timeutil"
)

// InvalidTime is printed for prayers that could not be resolved.
const InvalidTime = "-----"

// FormatTime renders t. Clock formats round to the nearest minute.
func FormatTime(t Time, f Format) string {
	if !t.OK {
		return InvalidTime
	}
	if f == FormatFloat {
		return strconv.FormatFloat(timeutil.Normalize24(t.Hours), 'f', 4, 64)
	}

	hours, minutes := timeutil.SplitHours(timeutil.Normalize24(t.Hours + 0.5/60))

	switch f {
	case Format12h, Format12hNS:
		h12 := (hours+11)%12 + 1
		if f == Format12hNS {
			return fmt.Sprintf("%d:%02d", h12, minutes)
		}
		suffix := "am"
		if hours >= 12 {
			suffix = "pm"
		}
		return fmt.Sprintf("%d:%02d %s", h12, minutes, suffix)
	default:
		return fmt.Sprintf("%02d:%02d", hours, minutes)
	}
}
