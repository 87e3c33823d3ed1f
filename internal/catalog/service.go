package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"offerly/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced catalog record does not exist
// or is inactive.
var ErrNotFound = errors.New("catalog record not found")

// Cache keys for catalog reference data. Availability data is never cached.
const (
	cacheKeyPackage  = "offerly:catalog:package:"
	cacheKeyPackages = "offerly:catalog:packages"
	cacheKeyService  = "offerly:catalog:service:"
	cacheKeyServices = "offerly:catalog:services"
	cacheKeySeasons  = "offerly:catalog:seasons"
	cacheKeyVenue    = "offerly:catalog:venue:"
	cacheKeyVenues   = "offerly:catalog:venues"
)

// Provider is the narrow read contract the quoting engine consumes.
// Lookups are synchronous and cacheable; season and venue lookups report
// absence with a nil record rather than an error.
type Provider interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*Package, error)
	GetService(ctx context.Context, id uuid.UUID) (*Service, error)
	GetServiceByName(ctx context.Context, name string) (*Service, error)
	GetServicesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Service, error)
	GetSeasonForDate(ctx context.Context, date time.Time) (*Season, error)
	GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error)
	GetPackageVenuePricing(ctx context.Context, packageID, venueID uuid.UUID) (*PackageVenuePricing, error)
}

// CatalogService exposes Provider plus the list operations used by the
// read-only catalog endpoints.
type CatalogService interface {
	Provider

	ListPackages(ctx context.Context) ([]Package, error)
	ListServices(ctx context.Context) ([]Service, error)
	ListSeasons(ctx context.Context) ([]Season, error)
	ListVenues(ctx context.Context) ([]Venue, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

// NewService creates the cached catalog service.
func NewService(repo Repository, cacheSvc cache.Service, ttl time.Duration) CatalogService {
	return &service{
		repo:     repo,
		cache:    cacheSvc,
		cacheTTL: ttl,
	}
}

func (s *service) GetPackage(ctx context.Context, id uuid.UUID) (*Package, error) {
	var pkg Package
	err := s.cache.GetOrSet(ctx, cacheKeyPackage+id.String(), s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetPackageByID(ctx, id)
	}, &pkg)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: package %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}
	return &pkg, nil
}

func (s *service) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	var svc Service
	err := s.cache.GetOrSet(ctx, cacheKeyService+id.String(), s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetServiceByID(ctx, id)
	}, &svc)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &svc, nil
}

func (s *service) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	svc, err := s.repo.GetServiceByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: service %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get service by name: %w", err)
	}
	return svc, nil
}

func (s *service) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Service, error) {
	svcs, err := s.repo.GetServicesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get services: %w", err)
	}

	byID := make(map[uuid.UUID]Service, len(svcs))
	for _, svc := range svcs {
		byID[svc.ID] = svc
	}
	return byID, nil
}

func (s *service) GetSeasonForDate(ctx context.Context, date time.Time) (*Season, error) {
	seasons, err := s.ListSeasons(ctx)
	if err != nil {
		return nil, err
	}
	for i := range seasons {
		if seasons[i].ContainsMonth(date.Month()) {
			return &seasons[i], nil
		}
	}
	// A date with no season is valid: no adjustment applies
	return nil, nil
}

func (s *service) GetVenue(ctx context.Context, id uuid.UUID) (*Venue, error) {
	var venue Venue
	err := s.cache.GetOrSet(ctx, cacheKeyVenue+id.String(), s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetVenueByID(ctx, id)
	}, &venue)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &venue, nil
}

func (s *service) GetPackageVenuePricing(ctx context.Context, packageID, venueID uuid.UUID) (*PackageVenuePricing, error) {
	pvp, err := s.repo.GetPackageVenuePricing(ctx, packageID, venueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get package venue pricing: %w", err)
	}
	return pvp, nil
}

func (s *service) ListPackages(ctx context.Context) ([]Package, error) {
	var pkgs []Package
	err := s.cache.GetOrSet(ctx, cacheKeyPackages, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetPackages(ctx)
	}, &pkgs)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	return pkgs, nil
}

func (s *service) ListServices(ctx context.Context) ([]Service, error) {
	var svcs []Service
	err := s.cache.GetOrSet(ctx, cacheKeyServices, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetServices(ctx)
	}, &svcs)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return svcs, nil
}

func (s *service) ListSeasons(ctx context.Context) ([]Season, error) {
	var seasons []Season
	err := s.cache.GetOrSet(ctx, cacheKeySeasons, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetSeasons(ctx)
	}, &seasons)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

func (s *service) ListVenues(ctx context.Context) ([]Venue, error) {
	var venues []Venue
	err := s.cache.GetOrSet(ctx, cacheKeyVenues, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetVenues(ctx)
	}, &venues)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}
