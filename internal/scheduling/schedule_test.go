package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseClock(t *testing.T) {
	t.Parallel()

	t.Run("parses valid times", func(t *testing.T) {
		cases := map[string]int{
			"00:00": 0,
			"10:00": 600,
			"23:59": 1439,
			"01:30": 90,
		}
		for in, want := range cases {
			got, err := ParseClock(in)
			if err != nil {
				t.Fatalf("ParseClock(%q): unexpected error %v", in, err)
			}
			if got.Minutes() != want {
				t.Fatalf("ParseClock(%q) = %d minutes, want %d", in, got.Minutes(), want)
			}
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"", "10", "24:00", "10:60", "aa:bb", "-1:00"} {
			if _, err := ParseClock(in); err == nil {
				t.Fatalf("ParseClock(%q): expected error", in)
			}
		}
	})
}

func TestEventDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"same day", "18:00", "23:00", "5"},
		{"fractional", "18:00", "23:30", "5.5"},
		{"crosses midnight", "20:00", "02:00", "6"},
		{"crosses midnight fractional", "22:30", "01:00", "2.5"},
		{"zero length", "12:00", "12:00", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EventDuration(MustClock(tc.start), MustClock(tc.end))
			want := decimal.RequireFromString(tc.want)
			if !got.Equal(want) {
				t.Fatalf("EventDuration(%s, %s) = %s, want %s", tc.start, tc.end, got, want)
			}
		})
	}
}

func TestExtraUnits(t *testing.T) {
	t.Parallel()

	five := decimal.NewFromInt(5)

	t.Run("no overage", func(t *testing.T) {
		if got := ExtraUnits(MustClock("18:00"), MustClock("23:00"), five); got != 0 {
			t.Fatalf("expected 0 extra units, got %d", got)
		}
	})

	t.Run("shorter than included", func(t *testing.T) {
		if got := ExtraUnits(MustClock("18:00"), MustClock("21:00"), five); got != 0 {
			t.Fatalf("expected 0 extra units, got %d", got)
		}
	})

	t.Run("fractional overage rounds up", func(t *testing.T) {
		// 18:00-23:30 is 5.5h against 5h included
		if got := ExtraUnits(MustClock("18:00"), MustClock("23:30"), five); got != 1 {
			t.Fatalf("expected 1 extra unit, got %d", got)
		}
	})

	t.Run("two full extra hours", func(t *testing.T) {
		if got := ExtraUnits(MustClock("18:00"), MustClock("01:00"), five); got != 2 {
			t.Fatalf("expected 2 extra units, got %d", got)
		}
	})

	t.Run("monotonic in end time", func(t *testing.T) {
		start := MustClock("18:00")
		prev := 0
		// Walk the end time forward in 30-minute steps through midnight
		for minutes := 19 * 60; minutes <= 26*60; minutes += 30 {
			end := ClockTime(minutes % (24 * 60))
			got := ExtraUnits(start, end, five)
			if got < prev {
				t.Fatalf("extra units decreased from %d to %d at end %s", prev, got, end)
			}
			prev = got
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		start, end := MustClock("18:00"), MustClock("23:30")
		first := ExtraUnits(start, end, five)
		second := ExtraUnits(start, end, five)
		if first != second {
			t.Fatalf("expected identical results, got %d then %d", first, second)
		}
	})
}

func TestValidateWindow(t *testing.T) {
	t.Parallel()

	t.Run("accepts standard evening window", func(t *testing.T) {
		if err := ValidateWindow(MustClock("18:00"), MustClock("23:00")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("accepts midnight crossing up to 02:00", func(t *testing.T) {
		if err := ValidateWindow(MustClock("20:00"), MustClock("02:00")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("rejects start before 10:00", func(t *testing.T) {
		err := ValidateWindow(MustClock("09:30"), MustClock("14:00"))
		if !errors.Is(err, ErrIllegalScheduleWindow) {
			t.Fatalf("expected ErrIllegalScheduleWindow, got %v", err)
		}
	})

	t.Run("rejects late end past 02:00", func(t *testing.T) {
		err := ValidateWindow(MustClock("20:00"), MustClock("03:00"))
		if !errors.Is(err, ErrIllegalScheduleWindow) {
			t.Fatalf("expected ErrIllegalScheduleWindow, got %v", err)
		}
	})

	t.Run("rejects zero-length window", func(t *testing.T) {
		err := ValidateWindow(MustClock("18:00"), MustClock("18:00"))
		if !errors.Is(err, ErrIllegalScheduleWindow) {
			t.Fatalf("expected ErrIllegalScheduleWindow, got %v", err)
		}
	})
}

func TestValidatePackageWindow(t *testing.T) {
	t.Parallel()

	fivePM := MustClock("17:00")

	t.Run("daytime package inside bound", func(t *testing.T) {
		err := ValidatePackageWindow(false, fivePM, time.Saturday, MustClock("11:00"), MustClock("16:00"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("daytime package ending too late", func(t *testing.T) {
		err := ValidatePackageWindow(false, fivePM, time.Saturday, MustClock("12:00"), MustClock("18:00"))
		if !errors.Is(err, ErrPackageWindow) {
			t.Fatalf("expected ErrPackageWindow, got %v", err)
		}
	})

	t.Run("daytime package crossing midnight", func(t *testing.T) {
		err := ValidatePackageWindow(false, fivePM, time.Friday, MustClock("22:00"), MustClock("01:00"))
		if !errors.Is(err, ErrPackageWindow) {
			t.Fatalf("expected ErrPackageWindow, got %v", err)
		}
	})

	t.Run("weekday-only package on a weekend", func(t *testing.T) {
		err := ValidatePackageWindow(true, 0, time.Sunday, MustClock("12:00"), MustClock("16:00"))
		if !errors.Is(err, ErrPackageWindow) {
			t.Fatalf("expected ErrPackageWindow, got %v", err)
		}
	})

	t.Run("unbounded package crossing midnight", func(t *testing.T) {
		err := ValidatePackageWindow(false, 0, time.Saturday, MustClock("20:00"), MustClock("02:00"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
