package quotes

import (
	"fmt"
	"time"

	"offerly/internal/scheduling"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest starts a wizard session for a client.
type OpenSessionRequest struct {
	ClientRef  string `json:"client_ref" binding:"required"`
	ClientName string `json:"client_name"`
}

// EventDetailsRequest carries the event-details gate fields. Either venue_id
// or external_venue_label must be set, never both; the builder enforces that.
type EventDetailsRequest struct {
	Date                string  `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime           string  `json:"start_time" binding:"required,clocktime"`
	EndTime             string  `json:"end_time" binding:"required,clocktime"`
	GuestCount          int     `json:"guest_count" binding:"required,min=1"`
	VenueID             *string `json:"venue_id" binding:"omitempty,uuid"`
	ExternalVenueLabel  string  `json:"external_venue_label"`
	AcknowledgeCapacity bool    `json:"acknowledge_capacity"`
}

// ToInput converts the validated request to the builder input.
func (r *EventDetailsRequest) ToInput() (EventDetailsInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return EventDetailsInput{}, fmt.Errorf("%w: %v", ErrInvalidEventDetails, err)
	}
	start, err := scheduling.ParseClock(r.StartTime)
	if err != nil {
		return EventDetailsInput{}, err
	}
	end, err := scheduling.ParseClock(r.EndTime)
	if err != nil {
		return EventDetailsInput{}, err
	}

	in := EventDetailsInput{
		Date:                date,
		Start:               start,
		End:                 end,
		GuestCount:          r.GuestCount,
		ExternalVenueLabel:  r.ExternalVenueLabel,
		AcknowledgeCapacity: r.AcknowledgeCapacity,
	}
	if r.VenueID != nil {
		id, err := uuid.Parse(*r.VenueID)
		if err != nil {
			return EventDetailsInput{}, fmt.Errorf("%w: %v", ErrInvalidEventDetails, err)
		}
		in.VenueID = &id
	}
	return in, nil
}

// SelectPackageRequest carries the package gate fields.
type SelectPackageRequest struct {
	PackageID      string           `json:"package_id" binding:"required,uuid"`
	NegotiatedBase *decimal.Decimal `json:"negotiated_base"`
}

// Service mutation actions.
const (
	ServiceActionAdd      = "add"
	ServiceActionRemove   = "remove"
	ServiceActionOverride = "override"
)

// ServiceMutationRequest is one add-on mutation: add or remove a line, or
// switch an exclusion-group slot. override with a null service_id clears the
// group back to its shipped default.
type ServiceMutationRequest struct {
	Action            string           `json:"action" binding:"required,oneof=add remove override"`
	ServiceID         *string          `json:"service_id" binding:"omitempty,uuid"`
	Quantity          int              `json:"quantity"`
	UnitPriceOverride *decimal.Decimal `json:"unit_price_override"`
	GroupID           string           `json:"group_id"`
}

// DiscountRequest carries the discount gate fields.
type DiscountRequest struct {
	Discount         decimal.Decimal  `json:"discount"`
	ServiceFeeRate   *decimal.Decimal `json:"service_fee_rate"`
	SeasonAdjustment *decimal.Decimal `json:"season_adjustment"`
}

// CalculateRequest drives the stateless price preview.
type CalculateRequest struct {
	PackageID        string                    `json:"package_id" binding:"required,uuid"`
	VenueID          *string                   `json:"venue_id" binding:"omitempty,uuid"`
	ExternalVenue    bool                      `json:"external_venue"`
	Date             string                    `json:"date" binding:"required,datetime=2006-01-02"`
	GuestCount       int                       `json:"guest_count" binding:"required,min=1"`
	NegotiatedBase   *decimal.Decimal          `json:"negotiated_base"`
	SeasonAdjustment *decimal.Decimal          `json:"season_adjustment"`
	Services         []CalculateServiceRequest `json:"services" binding:"dive"`
	Discount         decimal.Decimal           `json:"discount"`
	ServiceFeeRate   *decimal.Decimal          `json:"service_fee_rate"`
}

type CalculateServiceRequest struct {
	ServiceID         string           `json:"service_id" binding:"required,uuid"`
	Quantity          int              `json:"quantity" binding:"required,min=1"`
	UnitPriceOverride *decimal.Decimal `json:"unit_price_override"`
}

// ToInput converts the validated request to the service input.
func (r *CalculateRequest) ToInput() (CalculateInput, error) {
	pkgID, err := uuid.Parse(r.PackageID)
	if err != nil {
		return CalculateInput{}, fmt.Errorf("%w: %v", ErrInvalidEventDetails, err)
	}
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return CalculateInput{}, fmt.Errorf("%w: %v", ErrInvalidEventDetails, err)
	}

	in := CalculateInput{
		PackageID:                pkgID,
		ExternalVenue:            r.ExternalVenue,
		EventDate:                date,
		GuestCount:               r.GuestCount,
		NegotiatedBase:           r.NegotiatedBase,
		SeasonAdjustmentOverride: r.SeasonAdjustment,
		Discount:                 r.Discount,
		ServiceFeeRate:           r.ServiceFeeRate,
	}
	if r.VenueID != nil {
		id, err := uuid.Parse(*r.VenueID)
		if err != nil {
			return CalculateInput{}, fmt.Errorf("%w: %v", ErrInvalidEventDetails, err)
		}
		in.VenueID = &id
	}
	for _, svc := range r.Services {
		id, err := uuid.Parse(svc.ServiceID)
		if err != nil {
			return CalculateInput{}, fmt.Errorf("%w: %v", ErrInvalidEventDetails, err)
		}
		in.Services = append(in.Services, SelectedService{
			ServiceID:         id,
			Quantity:          svc.Quantity,
			UnitPriceOverride: svc.UnitPriceOverride,
		})
	}
	return in, nil
}
