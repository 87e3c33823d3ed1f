package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Contract is a signed event booking. Times are stored as "HH:MM" strings to
// match the clock-time domain; the date carries no time component.
type Contract struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code       string         `gorm:"uniqueIndex;not null" json:"code"`
	ClientName string         `gorm:"not null" json:"client_name"`
	VenueID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_contract_venue_date" json:"venue_id"`
	EventDate  time.Time      `gorm:"type:date;not null;index:idx_contract_venue_date" json:"event_date"`
	StartTime  string         `gorm:"not null" json:"start_time"`
	EndTime    string         `gorm:"not null" json:"end_time"`
	GuestCount int            `json:"guest_count"`
	Status     ContractStatus `gorm:"not null;default:'CONFIRMED'" json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

// Offer is a finalized quote handed to the client. VenueID is nil for
// external venues; VenueLabel then carries the free-text location. Snapshot
// holds the immutable configuration and price breakdown as JSON.
type Offer struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Code       string          `gorm:"uniqueIndex;not null" json:"code"`
	ClientRef  string          `gorm:"not null" json:"client_ref"`
	ClientName string          `json:"client_name"`
	VenueID    *uuid.UUID      `gorm:"type:uuid;index:idx_offer_venue_date" json:"venue_id,omitempty"`
	VenueLabel string          `json:"venue_label"`
	PackageID  uuid.UUID       `gorm:"type:uuid;not null" json:"package_id"`
	EventDate  time.Time       `gorm:"type:date;not null;index:idx_offer_venue_date" json:"event_date"`
	StartTime  string          `gorm:"not null" json:"start_time"`
	EndTime    string          `gorm:"not null" json:"end_time"`
	GuestCount int             `json:"guest_count"`
	Total      decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
	Snapshot   string          `gorm:"type:jsonb" json:"snapshot"`
	Status     OfferStatus     `gorm:"not null;default:'DRAFT'" json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
