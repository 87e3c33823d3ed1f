package main

import (
	"fmt"
	"log"

	"offerly/internal/catalog"
	"offerly/internal/exclusions"
	"offerly/internal/shared/config"
	"offerly/internal/shared/database"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Seeder struct {
	db *database.DB

	venues   map[string]uuid.UUID
	services map[string]uuid.UUID
	packages map[string]uuid.UUID
}

func main() {
	fmt.Println("🌱 Starting Offerly Catalog Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{
		db:       db,
		venues:   make(map[string]uuid.UUID),
		services: make(map[string]uuid.UUID),
		packages: make(map[string]uuid.UUID),
	}

	// Clean database
	fmt.Println("\n🧹 Cleaning catalog tables...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Catalog tables cleaned")

	// Seed data
	fmt.Println("\n🌱 Seeding catalog...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Catalog seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for quoting.")
}

// CleanDatabase truncates catalog tables in reverse dependency order.
// Booking tables (contracts, offers) are left alone on purpose.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"package_venue_pricings",
		"package_services",
		"packages",
		"services",
		"seasons",
		"venues",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds the full catalog
func (s *Seeder) SeedAll() error {
	if err := s.SeedVenues(); err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}
	if err := s.SeedSeasons(); err != nil {
		return fmt.Errorf("failed to seed seasons: %w", err)
	}
	if err := s.SeedServices(); err != nil {
		return fmt.Errorf("failed to seed services: %w", err)
	}
	if err := s.SeedPackages(); err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}
	if err := s.SeedVenuePricing(); err != nil {
		return fmt.Errorf("failed to seed venue pricing: %w", err)
	}
	return nil
}

// SeedVenues creates the internal halls
func (s *Seeder) SeedVenues() error {
	venues := []catalog.Venue{
		{Name: "Grand Hall", MaxCapacity: 250, Active: true},
		{Name: "Garden Pavilion", MaxCapacity: 150, Active: true},
		{Name: "Skyline Terrace", MaxCapacity: 120, Active: true},
		{Name: "Vault Cellar", MaxCapacity: 80, Active: true},
	}

	for i := range venues {
		if err := s.db.PostgreSQL.Create(&venues[i]).Error; err != nil {
			return fmt.Errorf("venue %s: %w", venues[i].Name, err)
		}
		s.venues[venues[i].Name] = venues[i].ID
		fmt.Printf("  Created venue: %s (capacity %d)\n", venues[i].Name, venues[i].MaxCapacity)
	}
	return nil
}

// SeedSeasons maps every month to a tier. December and June peak.
func (s *Seeder) SeedSeasons() error {
	seasons := []catalog.Season{
		{
			Name:            "Peak Season",
			Tier:            catalog.SeasonHigh,
			Months:          "may,june,september,december",
			PriceAdjustment: decimal.NewFromInt(150),
			Active:          true,
		},
		{
			Name:            "Shoulder Season",
			Tier:            catalog.SeasonMid,
			Months:          "march,april,july,august,october",
			PriceAdjustment: decimal.NewFromInt(50),
			Active:          true,
		},
		{
			Name:            "Off Season",
			Tier:            catalog.SeasonLow,
			Months:          "january,february,november",
			PriceAdjustment: decimal.NewFromInt(-100),
			Active:          true,
		},
	}

	for i := range seasons {
		if err := s.db.PostgreSQL.Create(&seasons[i]).Error; err != nil {
			return fmt.Errorf("season %s: %w", seasons[i].Name, err)
		}
		fmt.Printf("  Created season: %s (%s, %s)\n", seasons[i].Name, seasons[i].Tier, seasons[i].PriceAdjustment)
	}
	return nil
}

func strPtr(v string) *string { return &v }

// SeedServices creates standalone services and the exclusion group ladders
func (s *Seeder) SeedServices() error {
	services := []catalog.Service{
		// Bar ladder
		{Name: "National Bar", Category: "bar", BasePrice: decimal.NewFromInt(0), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupBar), ExclusionRank: 1},
		{Name: "Premium Bar", Category: "bar", BasePrice: decimal.NewFromInt(450), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupBar), ExclusionRank: 2},
		{Name: "Top Shelf Bar", Category: "bar", BasePrice: decimal.NewFromInt(900), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupBar), ExclusionRank: 3},

		// Decoration ladder
		{Name: "Classic Decoration", Category: "decor", BasePrice: decimal.NewFromInt(0), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupDecor), ExclusionRank: 1},
		{Name: "Floral Decoration", Category: "decor", BasePrice: decimal.NewFromInt(600), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupDecor), ExclusionRank: 2},
		{Name: "Themed Decoration", Category: "decor", BasePrice: decimal.NewFromInt(1200), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupDecor), ExclusionRank: 3},

		// Photo & video ladder
		{Name: "Photo Coverage", Category: "photography", BasePrice: decimal.NewFromInt(500), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupPhotography), ExclusionRank: 1},
		{Name: "Photo & Video Coverage", Category: "photography", BasePrice: decimal.NewFromInt(1100), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupPhotography), ExclusionRank: 2},
		{Name: "Cinematic Coverage", Category: "photography", BasePrice: decimal.NewFromInt(1800), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupPhotography), ExclusionRank: 3},

		// Two-way pairs
		{Name: "Cider Toast", Category: "toast", BasePrice: decimal.NewFromInt(0), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupToast), ExclusionRank: 1},
		{Name: "Champagne Toast", Category: "toast", BasePrice: decimal.NewFromFloat(3.50), ChargeType: catalog.ChargePerGuest, ExclusionGroupID: strPtr(exclusions.GroupToast), ExclusionRank: 1},
		{Name: "Classic Photobooth", Category: "photobooth", BasePrice: decimal.NewFromInt(350), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupPhotobooth), ExclusionRank: 1},
		{Name: "Mirror Photobooth", Category: "photobooth", BasePrice: decimal.NewFromInt(350), ChargeType: catalog.ChargeFixed, ExclusionGroupID: strPtr(exclusions.GroupPhotobooth), ExclusionRank: 1},

		// Ungrouped add-ons
		{Name: "Extra Hour", Category: "time", BasePrice: decimal.NewFromInt(800), ChargeType: catalog.ChargeFixed},
		{Name: "DJ Set", Category: "entertainment", BasePrice: decimal.NewFromInt(350), ChargeType: catalog.ChargeFixed},
		{Name: "Live Band", Category: "entertainment", BasePrice: decimal.NewFromInt(1500), ChargeType: catalog.ChargeFixed},
		{Name: "Kids Menu", Category: "catering", BasePrice: decimal.NewFromInt(18), ChargeType: catalog.ChargePerGuest},
		{Name: "Late Night Snacks", Category: "catering", BasePrice: decimal.NewFromInt(9), ChargeType: catalog.ChargePerGuest},
		{Name: "Valet Parking", Category: "logistics", BasePrice: decimal.NewFromInt(400), ChargeType: catalog.ChargeFixed},
	}

	for i := range services {
		services[i].Active = true
		if err := s.db.PostgreSQL.Create(&services[i]).Error; err != nil {
			return fmt.Errorf("service %s: %w", services[i].Name, err)
		}
		s.services[services[i].Name] = services[i].ID
		fmt.Printf("  Created service: %s ($%s %s)\n", services[i].Name, services[i].BasePrice, services[i].ChargeType)
	}
	return nil
}

// SeedPackages creates one package per tier with its shipped services
func (s *Seeder) SeedPackages() error {
	type pkgDef struct {
		pkg      catalog.Package
		included []string
	}

	defs := []pkgDef{
		{
			pkg: catalog.Package{
				Name:             "Daytime Celebration",
				Tier:             catalog.TierDaytime,
				BasePrice:        decimal.NewFromInt(1200),
				DurationHours:    decimal.NewFromInt(4),
				MinGuests:        40,
				WeekdaysOnly:     true,
				LatestEndMinutes: 17 * 60,
			},
			included: []string{"National Bar", "Classic Decoration", "Cider Toast"},
		},
		{
			pkg: catalog.Package{
				Name:          "Custom Evening",
				Tier:          catalog.TierCustom,
				BasePrice:     decimal.NewFromInt(1600),
				DurationHours: decimal.NewFromInt(5),
				MinGuests:     60,
			},
			included: []string{"National Bar", "Classic Decoration", "Cider Toast"},
		},
		{
			pkg: catalog.Package{
				Name:          "Platinum Night",
				Tier:          catalog.TierPlatinum,
				BasePrice:     decimal.NewFromInt(2000),
				DurationHours: decimal.NewFromInt(5),
				MinGuests:     100,
			},
			included: []string{"National Bar", "Classic Decoration", "Photo Coverage", "Cider Toast"},
		},
		{
			pkg: catalog.Package{
				Name:          "Diamond Gala",
				Tier:          catalog.TierDiamond,
				BasePrice:     decimal.NewFromInt(3200),
				DurationHours: decimal.NewFromInt(6),
				MinGuests:     120,
			},
			included: []string{"Premium Bar", "Floral Decoration", "Photo & Video Coverage", "Champagne Toast", "Classic Photobooth"},
		},
		{
			pkg: catalog.Package{
				Name:          "Deluxe Signature",
				Tier:          catalog.TierDeluxe,
				BasePrice:     decimal.NewFromInt(4500),
				DurationHours: decimal.NewFromInt(7),
				MinGuests:     150,
			},
			included: []string{"Top Shelf Bar", "Themed Decoration", "Cinematic Coverage", "Champagne Toast", "Mirror Photobooth", "DJ Set"},
		},
	}

	for i := range defs {
		def := &defs[i]
		def.pkg.Active = true
		if err := s.db.PostgreSQL.Create(&def.pkg).Error; err != nil {
			return fmt.Errorf("package %s: %w", def.pkg.Name, err)
		}
		s.packages[def.pkg.Name] = def.pkg.ID

		for _, name := range def.included {
			serviceID, ok := s.services[name]
			if !ok {
				return fmt.Errorf("package %s references unknown service %q", def.pkg.Name, name)
			}
			ps := catalog.PackageService{
				PackageID: def.pkg.ID,
				ServiceID: serviceID,
				Quantity:  1,
			}
			if err := s.db.PostgreSQL.Create(&ps).Error; err != nil {
				return fmt.Errorf("package %s service %s: %w", def.pkg.Name, name, err)
			}
		}
		fmt.Printf("  Created package: %s (%s, %d services)\n", def.pkg.Name, def.pkg.Tier, len(def.included))
	}
	return nil
}

// SeedVenuePricing creates per-venue overrides. The cellar is too small
// for the large tiers, the terrace carries a premium.
func (s *Seeder) SeedVenuePricing() error {
	rows := []struct {
		pkg       string
		venue     string
		basePrice decimal.Decimal
		minGuests int
		available bool
	}{
		{"Platinum Night", "Skyline Terrace", decimal.NewFromInt(2400), 100, true},
		{"Diamond Gala", "Skyline Terrace", decimal.NewFromInt(3600), 110, true},
		{"Platinum Night", "Vault Cellar", decimal.NewFromInt(1800), 70, true},
		{"Diamond Gala", "Vault Cellar", decimal.Zero, 0, false},
		{"Deluxe Signature", "Vault Cellar", decimal.Zero, 0, false},
		{"Deluxe Signature", "Garden Pavilion", decimal.NewFromInt(4200), 130, true},
	}

	for _, row := range rows {
		pvp := catalog.PackageVenuePricing{
			PackageID: s.packages[row.pkg],
			VenueID:   s.venues[row.venue],
			BasePrice: row.basePrice,
			MinGuests: row.minGuests,
			Available: row.available,
		}
		if err := s.db.PostgreSQL.Create(&pvp).Error; err != nil {
			return fmt.Errorf("pricing %s @ %s: %w", row.pkg, row.venue, err)
		}
		if row.available {
			fmt.Printf("  Priced %s @ %s: $%s (min %d guests)\n", row.pkg, row.venue, row.basePrice, row.minGuests)
		} else {
			fmt.Printf("  Marked %s unavailable @ %s\n", row.pkg, row.venue)
		}
	}
	return nil
}
