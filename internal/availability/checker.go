package availability

import (
	"context"
	"fmt"
	"time"

	"offerly/internal/calendar"
	"offerly/internal/catalog"
	"offerly/internal/scheduling"
	"offerly/pkg/logger"

	"github.com/google/uuid"
)

// Conflict sources in diagnostics.
const (
	SourceContract = "contract"
	SourceOffer    = "offer"
	SourceCalendar = "calendar"
)

// Conflict is one overlapping booking or calendar entry, labeled for
// user-facing diagnostics.
type Conflict struct {
	Source string `json:"source"`
	Label  string `json:"label"`
	Hours  []int  `json:"hours"`
}

// BookedWindow is one authoritative booking window on the queried date.
type BookedWindow struct {
	Source string
	Label  string
	Start  scheduling.ClockTime
	End    scheduling.ClockTime
}

// BookingsSource supplies the authoritative occupied windows: confirmed
// contracts plus accepted offers.
type BookingsSource interface {
	FindBookedWindows(ctx context.Context, venueID uuid.UUID, date time.Time) ([]BookedWindow, error)
}

// Feed is the advisory external calendar source.
type Feed interface {
	EventsForMonth(ctx context.Context, venueLabel string, month time.Month, year int) ([]calendar.Event, error)
}

// Result is one availability check outcome. Advisories never flip Available;
// only authoritative conflicts do. The token identifies the request
// generation this result answers.
type Result struct {
	Available  bool       `json:"available"`
	Conflicts  []Conflict `json:"conflicts"`
	Advisories []Conflict `json:"advisories"`
	Token      Token      `json:"token"`
}

// Checker resolves a venue's availability for a requested window. It reads
// from the booking store and the external feed; it never mutates either.
type Checker struct {
	bookings BookingsSource
	feed     Feed // nil disables the advisory pass
	log      *logger.Logger
}

func NewChecker(bookings BookingsSource, feed Feed, log *logger.Logger) *Checker {
	return &Checker{bookings: bookings, feed: feed, log: log}
}

// Check evaluates the requested window against both sources. A feed failure
// degrades to "no advisory data"; a booking-store failure is a real error
// since the authoritative answer is unknown.
func (c *Checker) Check(ctx context.Context, venue catalog.Venue, date time.Time, start, end scheduling.ClockTime, token Token) (*Result, error) {
	requested := NewHourRange(start, end)

	windows, err := c.bookings.FindBookedWindows(ctx, venue.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to read booked windows: %w", err)
	}

	result := &Result{Available: true, Token: token}
	for _, w := range windows {
		r := NewHourRange(w.Start, w.End)
		if requested.Intersects(r) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Source: w.Source,
				Label:  w.Label,
				Hours:  overlap(requested, r),
			})
		}
	}
	if len(result.Conflicts) > 0 {
		result.Available = false
		c.log.LogAvailabilityConflict(ctx, venue.ID.String(), date.Format("2006-01-02"), len(result.Conflicts))
	}

	result.Advisories = c.advisories(ctx, venue, date, requested)
	return result, nil
}

// advisories runs the best-effort calendar pass. Events match by normalized
// venue label or raw venue ID; all-day events block every hour.
func (c *Checker) advisories(ctx context.Context, venue catalog.Venue, date time.Time, requested HourRange) []Conflict {
	if c.feed == nil {
		return nil
	}

	label := NormalizeVenueLabel(venue.Name)
	events, err := c.feed.EventsForMonth(ctx, label, date.Month(), date.Year())
	if err != nil {
		c.log.LogCalendarFeedDegraded(ctx, label, err)
		return nil
	}

	var advisories []Conflict
	for _, ev := range events {
		if !ev.OnDate(date) {
			continue
		}
		if NormalizeVenueLabel(ev.VenueLabel) != label && ev.VenueLabel != venue.ID.String() {
			continue
		}

		r, ok := eventRange(ev)
		if !ok || !requested.Intersects(r) {
			continue
		}
		advisories = append(advisories, Conflict{
			Source: SourceCalendar,
			Label:  ev.Title,
			Hours:  overlap(requested, r),
		})
	}
	return advisories
}

// eventRange converts a feed event to its inclusive hour span. Open-ended
// events block only their start hour; malformed times are dropped.
func eventRange(ev calendar.Event) (HourRange, bool) {
	if ev.AllDay {
		return HourRange{Start: 0, End: 23}, true
	}

	start, err := scheduling.ParseClock(ev.StartTime)
	if err != nil {
		return HourRange{}, false
	}
	if ev.EndTime == "" {
		h := start.Hour()
		return HourRange{Start: h, End: h}, true
	}

	end, err := scheduling.ParseClock(ev.EndTime)
	if err != nil {
		return HourRange{}, false
	}
	return NewHourRange(start, end), true
}

// overlap lists the requested window's markers blocked by the other range.
func overlap(requested, other HourRange) []int {
	set := make(OccupiedHours)
	set.AddRange(other)
	return set.Blocking(requested)
}
