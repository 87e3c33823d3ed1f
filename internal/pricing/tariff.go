package pricing

import (
	"offerly/internal/catalog"
	"offerly/internal/shared/config"

	"github.com/shopspring/decimal"
)

// Tariff holds the house rates the calculator applies. Values come from
// configuration so deployments can retune them without a release.
type Tariff struct {
	TaxRate               decimal.Decimal
	DefaultServiceFeeRate decimal.Decimal
	ServiceFeeRateMin     decimal.Decimal
	ServiceFeeRateMax     decimal.Decimal
	GuestOverageHigh      decimal.Decimal
	GuestOverageRegular   decimal.Decimal
	ExtraHourPrice        decimal.Decimal
}

// TariffFromConfig builds the calculator tariff from app configuration.
func TariffFromConfig(cfg config.PricingConfig) Tariff {
	return Tariff{
		TaxRate:               cfg.TaxRate,
		DefaultServiceFeeRate: cfg.ServiceFeeRate,
		ServiceFeeRateMin:     cfg.ServiceFeeRateMin,
		ServiceFeeRateMax:     cfg.ServiceFeeRateMax,
		GuestOverageHigh:      cfg.GuestOverageHigh,
		GuestOverageRegular:   cfg.GuestOverageRegular,
		ExtraHourPrice:        cfg.ExtraHourPrice,
	}
}

// GuestOverageUnitPrice returns the per-extra-guest rate for a season tier.
// Only the high season carries the premium rate; no season at all prices like
// the regular tiers.
func (t Tariff) GuestOverageUnitPrice(tier catalog.SeasonTier) decimal.Decimal {
	if tier == catalog.SeasonHigh {
		return t.GuestOverageHigh
	}
	return t.GuestOverageRegular
}
