package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venue is an internal event hall. Immutable reference data from the
// engine's point of view.
type Venue struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	MaxCapacity int       `gorm:"not null" json:"max_capacity"`
	Active      bool      `gorm:"default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Season is a named set of months carrying a price adjustment. A date maps
// to at most one active season.
type Season struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name            string          `gorm:"uniqueIndex;not null" json:"name"`
	Tier            SeasonTier      `gorm:"not null" json:"tier"`
	Months          string          `gorm:"not null" json:"months"` // comma-separated lowercase month names
	PriceAdjustment decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_adjustment"`
	Active          bool            `gorm:"default:true" json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ContainsMonth reports whether the season covers the given month.
func (s *Season) ContainsMonth(m time.Month) bool {
	name := strings.ToLower(m.String())
	for _, part := range strings.Split(s.Months, ",") {
		if strings.TrimSpace(part) == name {
			return true
		}
	}
	return false
}

// Service is a bookable add-on (or a package inclusion). Services sharing an
// ExclusionGroupID are mutually exclusive alternatives; ExclusionRank orders
// the group's upgrade path (a higher rank dominates a lower one).
type Service struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name             string          `gorm:"uniqueIndex;not null" json:"name"`
	Category         string          `json:"category"`
	BasePrice        decimal.Decimal `gorm:"type:numeric(12,2)" json:"base_price"`
	ChargeType       ChargeType      `gorm:"not null;default:'FIXED'" json:"charge_type"`
	ExclusionGroupID *string         `gorm:"index" json:"exclusion_group_id,omitempty"`
	ExclusionRank    int             `json:"exclusion_rank"`
	Active           bool            `gorm:"default:true" json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Package is a bundled event offering: base price, included services,
// included duration and a minimum guest count. Tier keys the exclusion
// policy table.
type Package struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name             string           `gorm:"uniqueIndex;not null" json:"name"`
	Tier             string           `gorm:"not null" json:"tier"`
	BasePrice        decimal.Decimal  `gorm:"type:numeric(12,2)" json:"base_price"`
	DurationHours    decimal.Decimal  `gorm:"type:numeric(4,2)" json:"duration_hours"`
	MinGuests        int              `json:"min_guests"`
	WeekdaysOnly     bool             `gorm:"default:false" json:"weekdays_only"`
	LatestEndMinutes int              `json:"latest_end_minutes"` // minutes since midnight, 0 = unbounded
	Active           bool             `gorm:"default:true" json:"active"`
	Services         []PackageService `gorm:"foreignKey:PackageID" json:"services"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// PackageService is a service shipped with a package (a ServiceRef).
type PackageService struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PackageID uuid.UUID `gorm:"type:uuid;not null;index" json:"package_id"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null" json:"service_id"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
}

// PackageVenuePricing overrides a package's base price and minimum guest
// count at a specific venue. When Available is false the package is not
// offered at that venue at all.
type PackageVenuePricing struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PackageID uuid.UUID       `gorm:"type:uuid;not null;index:idx_package_venue,unique" json:"package_id"`
	VenueID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_package_venue,unique" json:"venue_id"`
	BasePrice decimal.Decimal `gorm:"type:numeric(12,2)" json:"base_price"`
	MinGuests int             `json:"min_guests"`
	Available bool            `gorm:"default:true" json:"available"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
