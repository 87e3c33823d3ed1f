package bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"offerly/internal/availability"
	"offerly/internal/catalog"
	"offerly/internal/shared/validation"
	"offerly/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeStore struct {
	windows []availability.BookedWindow
}

func (f *fakeStore) FindBookedWindows(ctx context.Context, venueID uuid.UUID, date time.Time) ([]availability.BookedWindow, error) {
	return f.windows, nil
}

func (f *fakeStore) GetVenueBookedHours(ctx context.Context, venueID uuid.UUID, date time.Time) ([]int, error) {
	return nil, nil
}

func (f *fakeStore) CreateOffer(ctx context.Context, offer *Offer) error { return nil }

// fakeProvider resolves a single known venue.
type fakeProvider struct {
	venue catalog.Venue
}

func (f *fakeProvider) GetPackage(ctx context.Context, id uuid.UUID) (*catalog.Package, error) {
	return nil, catalog.ErrNotFound
}

func (f *fakeProvider) GetService(ctx context.Context, id uuid.UUID) (*catalog.Service, error) {
	return nil, catalog.ErrNotFound
}

func (f *fakeProvider) GetServiceByName(ctx context.Context, name string) (*catalog.Service, error) {
	return nil, catalog.ErrNotFound
}

func (f *fakeProvider) GetServicesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Service, error) {
	return nil, nil
}

func (f *fakeProvider) GetSeasonForDate(ctx context.Context, date time.Time) (*catalog.Season, error) {
	return nil, nil
}

func (f *fakeProvider) GetVenue(ctx context.Context, id uuid.UUID) (*catalog.Venue, error) {
	if id != f.venue.ID {
		return nil, nil
	}
	v := f.venue
	return &v, nil
}

func (f *fakeProvider) GetPackageVenuePricing(ctx context.Context, packageID, venueID uuid.UUID) (*catalog.PackageVenuePricing, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := validation.Register(); err != nil {
		t.Fatalf("register validations: %v", err)
	}

	venueID := uuid.New()
	provider := &fakeProvider{venue: catalog.Venue{
		ID:          venueID,
		Name:        "Grand Hall",
		MaxCapacity: 200,
		Active:      true,
	}}
	store := &fakeStore{}
	checker := availability.NewChecker(store, nil, logger.New())
	controller := NewController(store, checker, provider)

	engine := gin.New()
	SetupBookingRoutes(engine.Group("/api/v1"), controller)
	return engine, venueID
}

func TestCheckAvailabilityRequestValidation(t *testing.T) {
	t.Parallel()

	post := func(t *testing.T, engine *gin.Engine, venueID uuid.UUID, body string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/venues/"+venueID.String()+"/availability", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		return rec
	}

	t.Run("well-formed request succeeds", func(t *testing.T) {
		engine, venueID := newTestRouter(t)
		rec := post(t, engine, venueID, `{"date":"2026-12-12","start_time":"18:00","end_time":"23:00"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("malformed start time rejected", func(t *testing.T) {
		engine, venueID := newTestRouter(t)
		rec := post(t, engine, venueID, `{"date":"2026-12-12","start_time":"25:99","end_time":"23:00"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		engine, venueID := newTestRouter(t)
		rec := post(t, engine, venueID, `{"date":"12/12/2026","start_time":"18:00","end_time":"23:00"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown venue is a 404", func(t *testing.T) {
		engine, _ := newTestRouter(t)
		rec := post(t, engine, uuid.New(), `{"date":"2026-12-12","start_time":"18:00","end_time":"23:00"}`)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
		}
	})
}
