package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for catalog reads. The catalog is authored by the
// surrounding back-office application; this service only reads it.
type Repository interface {
	GetPackageByID(ctx context.Context, id uuid.UUID) (*Package, error)
	GetPackages(ctx context.Context) ([]Package, error)

	GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error)
	GetServiceByName(ctx context.Context, name string) (*Service, error)
	GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]Service, error)
	GetServices(ctx context.Context) ([]Service, error)

	GetSeasons(ctx context.Context) ([]Season, error)

	GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetVenues(ctx context.Context) ([]Venue, error)

	GetPackageVenuePricing(ctx context.Context, packageID, venueID uuid.UUID) (*PackageVenuePricing, error)
}

// repository implements Repository interface
type repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetPackageByID(ctx context.Context, id uuid.UUID) (*Package, error) {
	var pkg Package
	err := r.db.WithContext(ctx).Preload("Services").First(&pkg, "id = ? AND active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) GetPackages(ctx context.Context) ([]Package, error) {
	var pkgs []Package
	err := r.db.WithContext(ctx).Preload("Services").
		Where("active = ?", true).
		Order("name").
		Find(&pkgs).Error
	return pkgs, err
}

func (r *repository) GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	var svc Service
	err := r.db.WithContext(ctx).First(&svc, "id = ? AND active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	var svc Service
	err := r.db.WithContext(ctx).First(&svc, "name = ? AND active = ?", name, true).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *repository) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]Service, error) {
	var svcs []Service
	err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&svcs).Error
	return svcs, err
}

func (r *repository) GetServices(ctx context.Context) ([]Service, error) {
	var svcs []Service
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("category, name").
		Find(&svcs).Error
	return svcs, err
}

func (r *repository) GetSeasons(ctx context.Context) ([]Season, error) {
	var seasons []Season
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&seasons).Error
	return seasons, err
}

func (r *repository) GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ? AND active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &venue, nil
}

func (r *repository) GetVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name").
		Find(&venues).Error
	return venues, err
}

func (r *repository) GetPackageVenuePricing(ctx context.Context, packageID, venueID uuid.UUID) (*PackageVenuePricing, error) {
	var pvp PackageVenuePricing
	err := r.db.WithContext(ctx).
		First(&pvp, "package_id = ? AND venue_id = ?", packageID, venueID).Error
	if err != nil {
		return nil, err
	}
	return &pvp, nil
}
