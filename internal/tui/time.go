package tui

import (
	"fmt"
	"time"

	"github.com/mrz1836/gitsync/internal/clock"
)

// RelativeTime formats t relative to the clock's now, e.g. "5 minutes ago".
// The zero time renders as "never".
func RelativeTime(t time.Time, c clock.Clock) string {
	if t.IsZero() {
		return "never"
	}
	if c == nil {
		c = clock.RealClock{}
	}
	diff := c.Now().Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return plural(int(diff.Hours()/24/7), "week")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
