package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the storage contract for contracts and offers.
type Repository interface {
	GetConfirmedContracts(ctx context.Context, venueID uuid.UUID, date time.Time) ([]Contract, error)
	GetAcceptedOffers(ctx context.Context, venueID uuid.UUID, date time.Time) ([]Offer, error)
	CreateOffer(ctx context.Context, offer *Offer) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetConfirmedContracts(ctx context.Context, venueID uuid.UUID, date time.Time) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND event_date = ? AND status = ?", venueID, dateOnly(date), ContractConfirmed).
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) GetAcceptedOffers(ctx context.Context, venueID uuid.UUID, date time.Time) ([]Offer, error) {
	var offers []Offer
	err := r.db.WithContext(ctx).
		Where("venue_id = ? AND event_date = ? AND status = ?", venueID, dateOnly(date), OfferAccepted).
		Find(&offers).Error
	return offers, err
}

// CreateOffer assigns the yearly sequential code inside the insert
// transaction so concurrent finalizations cannot collide on a code.
func (r *repository) CreateOffer(ctx context.Context, offer *Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		year := time.Now().Year()

		var count int64
		if err := tx.Model(&Offer{}).
			Where("EXTRACT(YEAR FROM created_at) = ?", year).
			Count(&count).Error; err != nil {
			return err
		}

		offer.Code = offerCode(year, int(count)+1)
		if offer.Status == "" {
			offer.Status = OfferDraft
		}
		return tx.Create(offer).Error
	})
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
