package calendar

import "time"

// Event is one entry from the external venue calendar feed. The feed is an
// advisory source: its entries warn, they never block.
type Event struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"` // "HH:MM", empty for all-day entries
	EndTime    string    `json:"end_time"`   // "HH:MM", empty when open-ended
	AllDay     bool      `json:"all_day"`
	VenueLabel string    `json:"venue_label"`
}

// OnDate reports whether the event falls on the given calendar day.
func (e Event) OnDate(date time.Time) bool {
	y1, m1, d1 := e.Date.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
