package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"offerly/internal/bookings"
	"offerly/internal/catalog"
	"offerly/internal/exclusions"
	"offerly/internal/notifications"
	"offerly/internal/pricing"
	"offerly/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service orchestrates wizard sessions: builder access through the session
// manager, the finalize handoff to the booking store, and event publishing.
type Service interface {
	OpenSession(ctx context.Context, clientRef, clientName string) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	SetEventDetails(ctx context.Context, id string, in EventDetailsInput) (*SessionView, error)
	SelectPackage(ctx context.Context, id string, packageID uuid.UUID, negotiatedBase *decimal.Decimal) (*SessionView, error)
	AddService(ctx context.Context, id string, serviceID uuid.UUID, quantity int, priceOverride *decimal.Decimal) (*SessionView, error)
	RemoveService(ctx context.Context, id string, serviceID uuid.UUID) (*SessionView, error)
	SetExclusionOverride(ctx context.Context, id, groupID string, serviceID *uuid.UUID) (*SessionView, error)
	ApplyDiscount(ctx context.Context, id string, discount decimal.Decimal, serviceFeeRate, seasonAdjustment *decimal.Decimal) (*SessionView, error)
	Finalize(ctx context.Context, id string) (*FinalizeResult, error)
	Calculate(ctx context.Context, in CalculateInput) (*pricing.Breakdown, error)
}

// FinalizeResult is the outcome of a successful finalize.
type FinalizeResult struct {
	OfferID   uuid.UUID `json:"offer_id"`
	OfferCode string    `json:"offer_code"`
	Snapshot  *Snapshot `json:"snapshot"`
}

// CalculateInput drives the stateless price preview endpoint.
type CalculateInput struct {
	PackageID                uuid.UUID
	VenueID                  *uuid.UUID
	ExternalVenue            bool
	EventDate                time.Time
	GuestCount               int
	NegotiatedBase           *decimal.Decimal
	SeasonAdjustmentOverride *decimal.Decimal
	Services                 []SelectedService
	Discount                 decimal.Decimal
	ServiceFeeRate           *decimal.Decimal
}

type service struct {
	manager     *Manager
	builderDeps Deps
	bookings    bookings.Service
	producer    notifications.Producer
	log         *logger.Logger
}

func NewService(manager *Manager, builderDeps Deps, bookingStore bookings.Service, producer notifications.Producer, log *logger.Logger) Service {
	return &service{
		manager:     manager,
		builderDeps: builderDeps,
		bookings:    bookingStore,
		producer:    producer,
		log:         log,
	}
}

func (s *service) OpenSession(ctx context.Context, clientRef, clientName string) (*SessionView, error) {
	id := uuid.NewString()
	builder := NewBuilder(id, clientRef, clientName, s.builderDeps)
	s.manager.Put(id, builder)

	s.log.InfoWithContext(ctx, "quote session opened", map[string]interface{}{
		"session_id": id,
		"client_ref": clientRef,
	})
	return viewOf(builder), nil
}

func (s *service) GetSession(ctx context.Context, id string) (*SessionView, error) {
	return s.withView(id, func(b *Builder) error { return nil })
}

func (s *service) SetEventDetails(ctx context.Context, id string, in EventDetailsInput) (*SessionView, error) {
	return s.withView(id, func(b *Builder) error { return b.SetEventDetails(ctx, in) })
}

func (s *service) SelectPackage(ctx context.Context, id string, packageID uuid.UUID, negotiatedBase *decimal.Decimal) (*SessionView, error) {
	return s.withView(id, func(b *Builder) error { return b.SelectPackage(ctx, packageID, negotiatedBase) })
}

func (s *service) AddService(ctx context.Context, id string, serviceID uuid.UUID, quantity int, priceOverride *decimal.Decimal) (*SessionView, error) {
	return s.withView(id, func(b *Builder) error { return b.AddService(ctx, serviceID, quantity, priceOverride) })
}

func (s *service) RemoveService(ctx context.Context, id string, serviceID uuid.UUID) (*SessionView, error) {
	return s.withView(id, func(b *Builder) error { return b.RemoveService(ctx, serviceID) })
}

func (s *service) SetExclusionOverride(ctx context.Context, id, groupID string, serviceID *uuid.UUID) (*SessionView, error) {
	return s.withView(id, func(b *Builder) error { return b.SetExclusionOverride(ctx, groupID, serviceID) })
}

func (s *service) ApplyDiscount(ctx context.Context, id string, discount decimal.Decimal, serviceFeeRate, seasonAdjustment *decimal.Decimal) (*SessionView, error) {
	return s.withView(id, func(b *Builder) error {
		return b.ApplyDiscount(ctx, discount, serviceFeeRate, seasonAdjustment)
	})
}

// Finalize snapshots the session, persists the draft offer and publishes the
// lifecycle event. Publishing is best-effort: a down broker never rolls back
// a persisted offer.
func (s *service) Finalize(ctx context.Context, id string) (*FinalizeResult, error) {
	var result *FinalizeResult

	err := s.manager.With(id, func(b *Builder) error {
		snapshot, err := b.Finalize(ctx)
		if err != nil {
			return err
		}

		offer, err := offerFromSnapshot(snapshot)
		if err != nil {
			return err
		}
		if err := s.bookings.CreateOffer(ctx, offer); err != nil {
			return err
		}
		// Seal only after the offer is on disk; a failed persist above
		// leaves the session open for a retry.
		b.MarkFinalized()

		event := &notifications.QuoteEvent{
			Type:      notifications.EventQuoteFinalized,
			QuoteID:   offer.ID.String(),
			OfferCode: offer.Code,
			ClientRef: offer.ClientRef,
			EventDate: offer.EventDate.Format("2006-01-02"),
			Total:     offer.Total,
			CreatedAt: time.Now(),
		}
		if offer.VenueID != nil {
			event.VenueID = offer.VenueID.String()
		}
		if err := s.producer.PublishQuoteEvent(ctx, event); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish quote event", err, map[string]interface{}{
				"session_id": id,
				"offer_code": offer.Code,
			})
		}

		s.log.LogQuoteFinalized(ctx, id, offer.Code, offer.ClientRef)
		result = &FinalizeResult{OfferID: offer.ID, OfferCode: offer.Code, Snapshot: snapshot}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.manager.Delete(id)
	return result, nil
}

// Calculate is the stateless price preview: no session, no persistence.
func (s *service) Calculate(ctx context.Context, in CalculateInput) (*pricing.Breakdown, error) {
	cat := s.builderDeps.Catalog

	pkg, err := cat.GetPackage(ctx, in.PackageID)
	if err != nil {
		return nil, err
	}
	season, err := cat.GetSeasonForDate(ctx, in.EventDate)
	if err != nil {
		return nil, err
	}

	var venuePricing *catalog.PackageVenuePricing
	if in.VenueID != nil {
		venuePricing, err = cat.GetPackageVenuePricing(ctx, pkg.ID, *in.VenueID)
		if err != nil {
			return nil, err
		}
	}

	inputs := make([]pricing.ServiceInput, 0, len(in.Services))
	for _, line := range in.Services {
		svc, err := cat.GetService(ctx, line.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", exclusions.ErrUnknownService, line.ServiceID)
		}
		inputs = append(inputs, pricing.ServiceInput{
			Service:       *svc,
			Quantity:      line.Quantity,
			PriceOverride: line.UnitPriceOverride,
		})
	}

	return s.builderDeps.Calculator.Calculate(pricing.Input{
		Package:                  *pkg,
		VenuePricing:             venuePricing,
		NegotiatedBase:           in.NegotiatedBase,
		Season:                   season,
		SeasonAdjustmentOverride: in.SeasonAdjustmentOverride,
		ExternalVenue:            in.ExternalVenue,
		GuestCount:               in.GuestCount,
		Services:                 inputs,
		Discount:                 in.Discount,
		ServiceFeeRate:           in.ServiceFeeRate,
	})
}

func (s *service) withView(id string, fn func(*Builder) error) (*SessionView, error) {
	var view *SessionView
	err := s.manager.With(id, func(b *Builder) error {
		if err := fn(b); err != nil {
			return err
		}
		view = viewOf(b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func offerFromSnapshot(snapshot *Snapshot) (*bookings.Offer, error) {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize quote snapshot: %w", err)
	}

	cfg := snapshot.Configuration
	offer := &bookings.Offer{
		ClientRef:  cfg.ClientRef,
		ClientName: cfg.ClientName,
		VenueID:    cfg.VenueID,
		VenueLabel: cfg.ExternalVenueLabel,
		PackageID:  *cfg.PackageID,
		EventDate:  cfg.EventDate,
		StartTime:  cfg.StartTime.String(),
		EndTime:    cfg.EndTime.String(),
		GuestCount: cfg.GuestCount,
		Total:      snapshot.Breakdown.Total,
		Snapshot:   string(raw),
		Status:     bookings.OfferDraft,
	}
	return offer, nil
}
