package notifications

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Quote event types.
const (
	EventQuoteFinalized = "quote.finalized"
)

// QuoteEvent is the message published for a quote lifecycle transition.
// Partitioned by client reference so one client's events stay ordered.
type QuoteEvent struct {
	Type      string          `json:"type"`
	QuoteID   string          `json:"quote_id"`
	OfferCode string          `json:"offer_code"`
	ClientRef string          `json:"client_ref"`
	VenueID   string          `json:"venue_id,omitempty"`
	EventDate string          `json:"event_date"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

func (e *QuoteEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all of one client's events to the same partition.
func (e *QuoteEvent) PartitionKey() string {
	return e.ClientRef
}
