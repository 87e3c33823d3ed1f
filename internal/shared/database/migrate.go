package database

import (
	"fmt"

	"offerly/internal/bookings"
	"offerly/internal/catalog"

	"gorm.io/gorm"
)

// Migrate runs auto-migrations for all persisted models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&catalog.Venue{},
		&catalog.Season{},
		&catalog.Service{},
		&catalog.Package{},
		&catalog.PackageService{},
		&catalog.PackageVenuePricing{},
		&bookings.Contract{},
		&bookings.Offer{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
