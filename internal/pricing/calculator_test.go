package pricing

import (
	"errors"
	"testing"

	"offerly/internal/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testTariff() Tariff {
	return Tariff{
		TaxRate:               decimal.RequireFromString("0.07"),
		DefaultServiceFeeRate: decimal.RequireFromString("0.18"),
		ServiceFeeRateMin:     decimal.RequireFromString("0.15"),
		ServiceFeeRateMax:     decimal.RequireFromString("0.18"),
		GuestOverageHigh:      decimal.RequireFromString("80.00"),
		GuestOverageRegular:   decimal.RequireFromString("52.00"),
		ExtraHourPrice:        decimal.RequireFromString("800.00"),
	}
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixedService(name, price string) catalog.Service {
	return catalog.Service{
		ID:         uuid.New(),
		Name:       name,
		BasePrice:  money(price),
		ChargeType: catalog.ChargeFixed,
	}
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	calc := NewCalculator(testTariff())

	highSeason := &catalog.Season{
		ID:              uuid.New(),
		Name:            "December Peak",
		Tier:            catalog.SeasonHigh,
		PriceAdjustment: money("150.00"),
	}

	t.Run("full evening scenario", func(t *testing.T) {
		// 2000 base + 150 season + 20 extra guests at 80 + one extra hour at
		// 800 gives 4550 pre-tax; 7% tax and 18% fee land on 5687.50.
		in := Input{
			Package: catalog.Package{
				ID:        uuid.New(),
				BasePrice: money("2000.00"),
				MinGuests: 100,
			},
			Season:     highSeason,
			GuestCount: 120,
			Services: []ServiceInput{
				{Service: fixedService("Extra Hour", "800.00"), Quantity: 1},
			},
		}

		got, err := calc.Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !got.SubtotalBase.Equal(money("2000.00")) {
			t.Errorf("SubtotalBase = %s, want 2000.00", got.SubtotalBase)
		}
		if !got.SeasonAdjustment.Equal(money("150.00")) {
			t.Errorf("SeasonAdjustment = %s, want 150.00", got.SeasonAdjustment)
		}
		if got.GuestOverage.Count != 20 || !got.GuestOverage.Subtotal.Equal(money("1600.00")) {
			t.Errorf("GuestOverage = %+v, want 20 guests for 1600.00", got.GuestOverage)
		}
		if !got.ServicesSubtotal.Equal(money("800.00")) {
			t.Errorf("ServicesSubtotal = %s, want 800.00", got.ServicesSubtotal)
		}
		if !got.TaxableBase.Equal(money("4550.00")) {
			t.Errorf("TaxableBase = %s, want 4550.00", got.TaxableBase)
		}
		if !got.TaxAmount.Equal(money("318.50")) {
			t.Errorf("TaxAmount = %s, want 318.50", got.TaxAmount)
		}
		if !got.ServiceFeeAmount.Equal(money("819.00")) {
			t.Errorf("ServiceFeeAmount = %s, want 819.00", got.ServiceFeeAmount)
		}
		if !got.Total.Equal(money("5687.50")) {
			t.Errorf("Total = %s, want 5687.50", got.Total)
		}
	})

	t.Run("external venue drops the season adjustment but not the guest tariff", func(t *testing.T) {
		in := Input{
			Package:       catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			Season:        highSeason,
			ExternalVenue: true,
			GuestCount:    110,
		}

		got, err := calc.Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.SeasonAdjustment.IsZero() {
			t.Errorf("SeasonAdjustment = %s, want 0", got.SeasonAdjustment)
		}
		// High-season rate still applies per extra guest
		if !got.GuestOverage.UnitPrice.Equal(money("80.00")) {
			t.Errorf("GuestOverage.UnitPrice = %s, want 80.00", got.GuestOverage.UnitPrice)
		}
	})

	t.Run("no season prices overage at the regular rate", func(t *testing.T) {
		in := Input{
			Package:    catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			GuestCount: 105,
		}

		got, err := calc.Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.GuestOverage.Subtotal.Equal(money("260.00")) {
			t.Errorf("GuestOverage.Subtotal = %s, want 260.00", got.GuestOverage.Subtotal)
		}
	})

	t.Run("venue pricing row overrides base and minimum", func(t *testing.T) {
		negotiated := money("1800.00")
		in := Input{
			Package:        catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			NegotiatedBase: &negotiated,
			VenuePricing: &catalog.PackageVenuePricing{
				BasePrice: money("2400.00"),
				MinGuests: 150,
			},
			GuestCount: 150,
		}

		got, err := calc.Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.SubtotalBase.Equal(money("2400.00")) {
			t.Errorf("SubtotalBase = %s, want venue override 2400.00", got.SubtotalBase)
		}
		if got.GuestOverage.Count != 0 {
			t.Errorf("GuestOverage.Count = %d, want 0 under raised minimum", got.GuestOverage.Count)
		}
	})

	t.Run("per-guest services multiply by guest count", func(t *testing.T) {
		svc := fixedService("Premium Menu Upgrade", "12.50")
		svc.ChargeType = catalog.ChargePerGuest

		in := Input{
			Package:    catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			GuestCount: 100,
			Services:   []ServiceInput{{Service: svc, Quantity: 1}},
		}

		got, err := calc.Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.ServicesSubtotal.Equal(money("1250.00")) {
			t.Errorf("ServicesSubtotal = %s, want 1250.00", got.ServicesSubtotal)
		}
	})

	t.Run("unit price override beats catalog price", func(t *testing.T) {
		override := money("650.00")
		in := Input{
			Package:    catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			GuestCount: 100,
			Services: []ServiceInput{
				{Service: fixedService("Extra Hour", "800.00"), Quantity: 2, PriceOverride: &override},
			},
		}

		got, err := calc.Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.ServicesSubtotal.Equal(money("1300.00")) {
			t.Errorf("ServicesSubtotal = %s, want 1300.00", got.ServicesSubtotal)
		}
	})

	t.Run("discount above the base is rejected", func(t *testing.T) {
		in := Input{
			Package:    catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			GuestCount: 100,
			Discount:   money("2000.01"),
		}

		if _, err := calc.Calculate(in); !errors.Is(err, ErrInvalidDiscount) {
			t.Fatalf("expected ErrInvalidDiscount, got %v", err)
		}
	})

	t.Run("negative discount is rejected", func(t *testing.T) {
		in := Input{
			Package:    catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			GuestCount: 100,
			Discount:   money("-1.00"),
		}

		if _, err := calc.Calculate(in); !errors.Is(err, ErrInvalidDiscount) {
			t.Fatalf("expected ErrInvalidDiscount, got %v", err)
		}
	})

	t.Run("service fee rate outside the band is rejected", func(t *testing.T) {
		for _, rate := range []string{"0.14", "0.19"} {
			r := money(rate)
			in := Input{
				Package:        catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
				GuestCount:     100,
				ServiceFeeRate: &r,
			}
			if _, err := calc.Calculate(in); !errors.Is(err, ErrInvalidServiceFeeRate) {
				t.Fatalf("rate %s: expected ErrInvalidServiceFeeRate, got %v", rate, err)
			}
		}
	})

	t.Run("total never goes negative", func(t *testing.T) {
		// Discount equals the base while nothing else contributes
		in := Input{
			Package:    catalog.Package{BasePrice: money("2000.00"), MinGuests: 100},
			GuestCount: 100,
			Discount:   money("2000.00"),
		}

		got, err := calc.Calculate(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Total.IsNegative() {
			t.Fatalf("Total = %s, want >= 0", got.Total)
		}
	})
}
