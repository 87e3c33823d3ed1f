package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"offerly/internal/calendar"
	"offerly/internal/catalog"
	"offerly/internal/scheduling"
	"offerly/pkg/logger"

	"github.com/google/uuid"
)

type fakeBookings struct {
	windows []BookedWindow
	err     error
}

func (f *fakeBookings) FindBookedWindows(ctx context.Context, venueID uuid.UUID, date time.Time) ([]BookedWindow, error) {
	return f.windows, f.err
}

type fakeFeed struct {
	events []calendar.Event
	err    error
}

func (f *fakeFeed) EventsForMonth(ctx context.Context, venueLabel string, month time.Month, year int) ([]calendar.Event, error) {
	return f.events, f.err
}

func booked(label, start, end string) BookedWindow {
	return BookedWindow{
		Source: SourceContract,
		Label:  label,
		Start:  scheduling.MustClock(start),
		End:    scheduling.MustClock(end),
	}
}

func TestNormalizeVenueLabel(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Grand Hall":    "grand hall",
		"Grand Hall 2":  "grand hall",
		"  Terrace 10 ": "terrace",
		"Loft3":         "loft",
		"Atrium":        "atrium",
	}
	for in, want := range cases {
		if got := NormalizeVenueLabel(in); got != want {
			t.Errorf("NormalizeVenueLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHourRange(t *testing.T) {
	t.Parallel()

	t.Run("inclusive boundary intersects", func(t *testing.T) {
		a := NewHourRange(scheduling.MustClock("10:00"), scheduling.MustClock("13:00"))
		b := NewHourRange(scheduling.MustClock("13:00"), scheduling.MustClock("16:00"))
		if !a.Intersects(b) {
			t.Fatal("windows sharing hour 13 must conflict")
		}
	})

	t.Run("adjacent hours do not intersect", func(t *testing.T) {
		a := NewHourRange(scheduling.MustClock("10:00"), scheduling.MustClock("13:00"))
		b := NewHourRange(scheduling.MustClock("14:00"), scheduling.MustClock("16:00"))
		if a.Intersects(b) {
			t.Fatal("windows ending at 13 and starting at 14 must not conflict")
		}
	})

	t.Run("midnight crossing extends past 23", func(t *testing.T) {
		r := NewHourRange(scheduling.MustClock("20:00"), scheduling.MustClock("02:00"))
		if r.End != 26 {
			t.Fatalf("End = %d, want virtual 26", r.End)
		}
		if !r.Contains(1) {
			t.Fatal("range must contain folded hour 1")
		}
		early := NewHourRange(scheduling.MustClock("01:00"), scheduling.MustClock("03:00"))
		if !r.Intersects(early) {
			t.Fatal("wrapped window must conflict with early-morning window")
		}
	})

	t.Run("zero-length window collapses to its start hour", func(t *testing.T) {
		r := NewHourRange(scheduling.MustClock("14:00"), scheduling.MustClock("14:00"))
		if r.Start != 14 || r.End != 14 {
			t.Fatalf("range = [%d, %d], want [14, 14]", r.Start, r.End)
		}
		other := NewHourRange(scheduling.MustClock("16:00"), scheduling.MustClock("18:00"))
		if r.Intersects(other) {
			t.Fatal("degenerate window must not block unrelated hours")
		}
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	log := logger.New()
	venue := catalog.Venue{ID: uuid.New(), Name: "Grand Hall", MaxCapacity: 200}
	date := time.Date(2026, time.December, 12, 0, 0, 0, 0, time.UTC)

	check := func(t *testing.T, c *Checker, start, end string) *Result {
		t.Helper()
		res, err := c.Check(context.Background(), venue, date,
			scheduling.MustClock(start), scheduling.MustClock(end), Token(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return res
	}

	t.Run("overlapping booking blocks", func(t *testing.T) {
		c := NewChecker(&fakeBookings{windows: []BookedWindow{booked("Smith wedding", "13:00", "16:00")}}, nil, log)
		res := check(t, c, "10:00", "14:00")

		if res.Available {
			t.Fatal("expected unavailable")
		}
		if len(res.Conflicts) != 1 || res.Conflicts[0].Label != "Smith wedding" {
			t.Fatalf("unexpected conflicts: %+v", res.Conflicts)
		}
	})

	t.Run("disjoint booking passes", func(t *testing.T) {
		c := NewChecker(&fakeBookings{windows: []BookedWindow{booked("Smith wedding", "14:00", "16:00")}}, nil, log)
		res := check(t, c, "10:00", "13:00")

		if !res.Available || len(res.Conflicts) != 0 {
			t.Fatalf("expected clean pass, got %+v", res)
		}
	})

	t.Run("shared boundary hour blocks", func(t *testing.T) {
		c := NewChecker(&fakeBookings{windows: []BookedWindow{booked("corporate dinner", "13:00", "16:00")}}, nil, log)
		res := check(t, c, "10:00", "13:00")

		if res.Available {
			t.Fatal("hour 13 is shared, expected conflict")
		}
	})

	t.Run("midnight-crossing booking blocks early morning", func(t *testing.T) {
		c := NewChecker(&fakeBookings{windows: []BookedWindow{booked("new year party", "20:00", "02:00")}}, nil, log)
		res, err := c.Check(context.Background(), venue, date,
			scheduling.MustClock("01:00"), scheduling.MustClock("03:00"), Token(1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Available {
			t.Fatal("expected conflict with wrapped booking")
		}
	})

	t.Run("all-day calendar event is advisory only", func(t *testing.T) {
		feed := &fakeFeed{events: []calendar.Event{{
			Title:      "maintenance",
			Date:       date,
			AllDay:     true,
			VenueLabel: "Grand Hall 2",
		}}}
		c := NewChecker(&fakeBookings{}, feed, log)
		res := check(t, c, "10:00", "14:00")

		if !res.Available {
			t.Fatal("advisory conflicts must not flip availability")
		}
		if len(res.Advisories) != 1 || res.Advisories[0].Source != SourceCalendar {
			t.Fatalf("unexpected advisories: %+v", res.Advisories)
		}
	})

	t.Run("calendar event for another venue family is ignored", func(t *testing.T) {
		feed := &fakeFeed{events: []calendar.Event{{
			Title:      "gala",
			Date:       date,
			StartTime:  "10:00",
			EndTime:    "14:00",
			VenueLabel: "Terrace",
		}}}
		c := NewChecker(&fakeBookings{}, feed, log)
		res := check(t, c, "10:00", "14:00")

		if len(res.Advisories) != 0 {
			t.Fatalf("unexpected advisories: %+v", res.Advisories)
		}
	})

	t.Run("feed failure degrades to no advisory data", func(t *testing.T) {
		feed := &fakeFeed{err: errors.New("connection refused")}
		c := NewChecker(&fakeBookings{}, feed, log)
		res := check(t, c, "10:00", "14:00")

		if !res.Available || len(res.Advisories) != 0 {
			t.Fatalf("expected degraded pass, got %+v", res)
		}
	})

	t.Run("booking store failure is a real error", func(t *testing.T) {
		c := NewChecker(&fakeBookings{err: errors.New("db down")}, nil, log)
		_, err := c.Check(context.Background(), venue, date,
			scheduling.MustClock("10:00"), scheduling.MustClock("14:00"), Token(1))
		if err == nil {
			t.Fatal("expected error when the authoritative source is unreachable")
		}
	})

	t.Run("result carries the request token", func(t *testing.T) {
		c := NewChecker(&fakeBookings{}, nil, log)
		res, err := c.Check(context.Background(), venue, date,
			scheduling.MustClock("10:00"), scheduling.MustClock("14:00"), Token(7))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Token != Token(7) {
			t.Fatalf("Token = %d, want 7", res.Token)
		}
	})
}

func TestTokenSource(t *testing.T) {
	t.Parallel()

	var src TokenSource
	first := src.Next()
	second := src.Next()
	if second <= first {
		t.Fatalf("tokens must increase, got %d then %d", first, second)
	}
	if src.Latest() != second {
		t.Fatalf("Latest = %d, want %d", src.Latest(), second)
	}
}
