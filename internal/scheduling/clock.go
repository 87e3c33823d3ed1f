package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime is a time of day expressed as minutes since midnight (0-1439).
// Quote windows are compared on a 24-hour clock, so an "end" that is
// numerically before its "start" means the event crosses midnight.
type ClockTime int

// ParseClock parses a "HH:MM" string into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q: expected HH:MM", s)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q: out of range", s)
	}

	return ClockTime(h*60 + m), nil
}

// MustClock parses a "HH:MM" string and panics on failure. For tests and
// package-level defaults only.
func MustClock(s string) ClockTime {
	ct, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return ct
}

// Hour returns the hour-of-day component (0-23).
func (c ClockTime) Hour() int {
	return int(c) / 60
}

// Minute returns the minute component (0-59).
func (c ClockTime) Minute() int {
	return int(c) % 60
}

// Minutes returns the raw minutes-since-midnight value.
func (c ClockTime) Minutes() int {
	return int(c)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
