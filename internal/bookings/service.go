package bookings

import (
	"context"
	"fmt"
	"time"

	"offerly/internal/availability"
	"offerly/internal/scheduling"

	"github.com/google/uuid"
)

// Service is the booking-store collaborator: the authoritative source of
// occupied venue hours and the write side of the finalize handoff. It
// implements availability.BookingsSource.
type Service interface {
	FindBookedWindows(ctx context.Context, venueID uuid.UUID, date time.Time) ([]availability.BookedWindow, error)
	GetVenueBookedHours(ctx context.Context, venueID uuid.UUID, date time.Time) ([]int, error)
	CreateOffer(ctx context.Context, offer *Offer) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// FindBookedWindows unions confirmed contracts and accepted offers for the
// venue and date, each labeled for diagnostics.
func (s *service) FindBookedWindows(ctx context.Context, venueID uuid.UUID, date time.Time) ([]availability.BookedWindow, error) {
	contracts, err := s.repo.GetConfirmedContracts(ctx, venueID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts: %w", err)
	}
	offers, err := s.repo.GetAcceptedOffers(ctx, venueID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load offers: %w", err)
	}

	windows := make([]availability.BookedWindow, 0, len(contracts)+len(offers))
	for _, c := range contracts {
		w, err := window(availability.SourceContract, c.Code+" "+c.ClientName, c.StartTime, c.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	for _, o := range offers {
		w, err := window(availability.SourceOffer, o.Code+" "+o.ClientName, o.StartTime, o.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// GetVenueBookedHours flattens the booked windows to occupied hour markers.
func (s *service) GetVenueBookedHours(ctx context.Context, venueID uuid.UUID, date time.Time) ([]int, error) {
	windows, err := s.FindBookedWindows(ctx, venueID, date)
	if err != nil {
		return nil, err
	}

	occupied := make(availability.OccupiedHours)
	for _, w := range windows {
		occupied.AddRange(availability.NewHourRange(w.Start, w.End))
	}
	return occupied.Markers(), nil
}

func (s *service) CreateOffer(ctx context.Context, offer *Offer) error {
	if err := s.repo.CreateOffer(ctx, offer); err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

func window(source, label, start, end string) (availability.BookedWindow, error) {
	startClock, err := scheduling.ParseClock(start)
	if err != nil {
		return availability.BookedWindow{}, fmt.Errorf("corrupt start time %q on %s: %w", start, label, err)
	}
	endClock, err := scheduling.ParseClock(end)
	if err != nil {
		return availability.BookedWindow{}, fmt.Errorf("corrupt end time %q on %s: %w", end, label, err)
	}
	return availability.BookedWindow{Source: source, Label: label, Start: startClock, End: endClock}, nil
}
