package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Legal booking window: events start at 10:00 or later, and an event that
// runs past midnight must end by 02:00.
var (
	earliestStart = MustClock("10:00")
	latestLateEnd = MustClock("02:00")
)

// ErrIllegalScheduleWindow is returned when a requested start/end pair falls
// outside the legal booking window.
var ErrIllegalScheduleWindow = errors.New("illegal schedule window")

// ErrPackageWindow is returned when a window is legal but incompatible with
// the restrictions of a specific package (weekday-only, latest end time).
var ErrPackageWindow = errors.New("package not available for this window")

var minutesPerHour = decimal.NewFromInt(60)

// EventDuration returns the event length in hours as a decimal. An end time
// numerically before the start time is interpreted as crossing midnight.
func EventDuration(start, end ClockTime) decimal.Decimal {
	minutes := end.Minutes() - start.Minutes()
	if minutes < 0 {
		minutes += 24 * 60
	}
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}

// ExtraUnits returns the number of extra-duration units that must be
// purchased when the requested window exceeds the package's included
// duration. Fractional overage of any size rounds up to a full unit.
func ExtraUnits(start, end ClockTime, includedHours decimal.Decimal) int {
	overage := EventDuration(start, end).Sub(includedHours)
	if overage.Sign() <= 0 {
		return 0
	}
	return int(overage.Ceil().IntPart())
}

// ValidateWindow checks the legal booking window. Callers validate before
// running availability or pricing; this function performs no I/O.
func ValidateWindow(start, end ClockTime) error {
	if start < earliestStart {
		return fmt.Errorf("%w: start time %s is before %s", ErrIllegalScheduleWindow, start, earliestStart)
	}
	if end == start {
		return fmt.Errorf("%w: start and end time are both %s", ErrIllegalScheduleWindow, start)
	}

	crossesMidnight := end < start
	if crossesMidnight && end > latestLateEnd {
		return fmt.Errorf("%w: end time %s is past %s on the following day", ErrIllegalScheduleWindow, end, latestLateEnd)
	}

	return nil
}

// CrossesMidnight reports whether a window wraps past midnight.
func CrossesMidnight(start, end ClockTime) bool {
	return end < start
}

// ValidatePackageWindow checks package-specific window restrictions on top
// of the legal window: some packages are weekday-only, and some must end by
// a fixed hour (a zero latestEnd means unbounded).
func ValidatePackageWindow(weekdaysOnly bool, latestEnd ClockTime, weekday time.Weekday, start, end ClockTime) error {
	if weekdaysOnly && (weekday == time.Saturday || weekday == time.Sunday) {
		return fmt.Errorf("%w: only offered Monday through Friday", ErrPackageWindow)
	}

	if latestEnd > 0 {
		if CrossesMidnight(start, end) {
			return fmt.Errorf("%w: must end by %s", ErrPackageWindow, latestEnd)
		}
		if end > latestEnd {
			return fmt.Errorf("%w: must end by %s, requested %s", ErrPackageWindow, latestEnd, end)
		}
		if start > latestEnd {
			return fmt.Errorf("%w: must start before %s", ErrPackageWindow, latestEnd)
		}
	}

	return nil
}
