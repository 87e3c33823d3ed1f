package quotes

import (
	"time"

	"offerly/internal/scheduling"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectedService is one add-on line in the configuration. AutoRequired
// marks lines the builder maintains itself to cover extra-duration units;
// user-added lines are never auto-removed.
type SelectedService struct {
	ServiceID         uuid.UUID        `json:"service_id"`
	Quantity          int              `json:"quantity"`
	UnitPriceOverride *decimal.Decimal `json:"unit_price_override,omitempty"`
	AutoRequired      bool             `json:"auto_required,omitempty"`
}

// QuoteConfiguration is the single source of truth for one wizard session.
// It is owned by its Builder and mutated only through Builder methods; the
// finalize snapshot is a deep copy.
type QuoteConfiguration struct {
	SessionID  string `json:"session_id"`
	ClientRef  string `json:"client_ref"`
	ClientName string `json:"client_name"`

	EventDate            time.Time            `json:"event_date"`
	StartTime            scheduling.ClockTime `json:"start_time"`
	EndTime              scheduling.ClockTime `json:"end_time"`
	GuestCount           int                  `json:"guest_count"`
	VenueID              *uuid.UUID           `json:"venue_id,omitempty"`
	ExternalVenueLabel   string               `json:"external_venue_label,omitempty"`
	CapacityAcknowledged bool                 `json:"capacity_acknowledged,omitempty"`

	PackageID                *uuid.UUID            `json:"package_id,omitempty"`
	NegotiatedBase           *decimal.Decimal      `json:"negotiated_base,omitempty"`
	ExclusionOverrides       map[string]uuid.UUID  `json:"exclusion_overrides,omitempty"`
	AdditionalServices       []SelectedService     `json:"additional_services"`
	SeasonAdjustmentOverride *decimal.Decimal      `json:"season_adjustment_override,omitempty"`

	Discount       decimal.Decimal  `json:"discount"`
	ServiceFeeRate *decimal.Decimal `json:"service_fee_rate,omitempty"`

	Stage Stage `json:"stage"`
}

// ExternalVenue reports whether the event runs outside the house venues.
func (c *QuoteConfiguration) ExternalVenue() bool {
	return c.VenueID == nil && c.ExternalVenueLabel != ""
}

// Clone deep-copies the configuration, including maps and slices, so a
// snapshot cannot alias live session state.
func (c *QuoteConfiguration) Clone() QuoteConfiguration {
	out := *c

	if c.VenueID != nil {
		id := *c.VenueID
		out.VenueID = &id
	}
	if c.PackageID != nil {
		id := *c.PackageID
		out.PackageID = &id
	}
	out.NegotiatedBase = cloneDecimal(c.NegotiatedBase)
	out.ServiceFeeRate = cloneDecimal(c.ServiceFeeRate)
	out.SeasonAdjustmentOverride = cloneDecimal(c.SeasonAdjustmentOverride)

	if c.ExclusionOverrides != nil {
		out.ExclusionOverrides = make(map[string]uuid.UUID, len(c.ExclusionOverrides))
		for k, v := range c.ExclusionOverrides {
			out.ExclusionOverrides[k] = v
		}
	}
	if c.AdditionalServices != nil {
		out.AdditionalServices = make([]SelectedService, len(c.AdditionalServices))
		for i, s := range c.AdditionalServices {
			s.UnitPriceOverride = cloneDecimal(s.UnitPriceOverride)
			out.AdditionalServices[i] = s
		}
	}
	return out
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
