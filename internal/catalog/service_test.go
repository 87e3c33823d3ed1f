package catalog

import (
	"context"
	"testing"
	"time"

	"offerly/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeRepo serves seasons from memory; everything else is absent.
type fakeRepo struct {
	seasons []Season
}

func (f *fakeRepo) GetPackageByID(ctx context.Context, id uuid.UUID) (*Package, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetPackages(ctx context.Context) ([]Package, error) { return nil, nil }

func (f *fakeRepo) GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetServiceByName(ctx context.Context, name string) (*Service, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]Service, error) {
	return nil, nil
}

func (f *fakeRepo) GetServices(ctx context.Context) ([]Service, error) { return nil, nil }

func (f *fakeRepo) GetSeasons(ctx context.Context) ([]Season, error) { return f.seasons, nil }

func (f *fakeRepo) GetVenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) GetVenues(ctx context.Context) ([]Venue, error) { return nil, nil }

func (f *fakeRepo) GetPackageVenuePricing(ctx context.Context, packageID, venueID uuid.UUID) (*PackageVenuePricing, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestGetSeasonForDate(t *testing.T) {
	t.Parallel()

	repo := &fakeRepo{seasons: []Season{
		{
			ID:              uuid.New(),
			Name:            "Peak Season",
			Tier:            SeasonHigh,
			Months:          "june,december",
			PriceAdjustment: decimal.NewFromInt(150),
			Active:          true,
		},
		{
			ID:              uuid.New(),
			Name:            "Off Season",
			Tier:            SeasonLow,
			Months:          "january,february",
			PriceAdjustment: decimal.NewFromInt(-100),
			Active:          true,
		},
	}}
	svc := NewService(repo, cache.NewService(nil), time.Minute)

	t.Run("month covered by a season", func(t *testing.T) {
		season, err := svc.GetSeasonForDate(context.Background(), time.Date(2026, time.December, 12, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if season == nil || season.Name != "Peak Season" {
			t.Fatalf("season = %+v, want Peak Season", season)
		}
	})

	t.Run("month with no season applies no adjustment", func(t *testing.T) {
		season, err := svc.GetSeasonForDate(context.Background(), time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if season != nil {
			t.Fatalf("season = %+v, want nil", season)
		}
	})
}
