package pricing

import (
	"errors"
	"fmt"

	"offerly/internal/catalog"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDiscount is returned for a negative discount or one exceeding
	// the package base.
	ErrInvalidDiscount = errors.New("invalid discount")

	// ErrInvalidServiceFeeRate is returned for a service-fee rate outside the
	// allowed band.
	ErrInvalidServiceFeeRate = errors.New("service fee rate out of bounds")
)

// ServiceInput is one selected add-on to price.
type ServiceInput struct {
	Service       catalog.Service
	Quantity      int
	PriceOverride *decimal.Decimal // negotiated unit price, nil = catalog price
}

// Input is everything the calculator needs. It is assembled by the quote
// builder; the calculator itself never touches storage.
type Input struct {
	Package        catalog.Package
	VenuePricing   *catalog.PackageVenuePricing // nil when no venue row exists
	NegotiatedBase *decimal.Decimal             // seller-negotiated package base

	Season                   *catalog.Season // nil when the date has no season
	SeasonAdjustmentOverride *decimal.Decimal
	ExternalVenue            bool // suppresses the season adjustment, not the guest tariff

	GuestCount int
	Services   []ServiceInput

	Discount       decimal.Decimal
	ServiceFeeRate *decimal.Decimal // nil = default rate
}

// Calculator prices a quote configuration. Pure and stateless apart from the
// tariff it was built with.
type Calculator struct {
	tariff Tariff
}

func NewCalculator(tariff Tariff) *Calculator {
	return &Calculator{tariff: tariff}
}

// Calculate produces the full breakdown. Rounding to two decimals happens on
// the tax, fee and total lines only.
func (c *Calculator) Calculate(in Input) (*Breakdown, error) {
	base, minGuests := c.resolveBase(in)

	if in.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount is negative", ErrInvalidDiscount)
	}
	if in.Discount.GreaterThan(base) {
		return nil, fmt.Errorf("%w: discount %s exceeds package base %s", ErrInvalidDiscount, in.Discount, base)
	}

	feeRate := c.tariff.DefaultServiceFeeRate
	if in.ServiceFeeRate != nil {
		feeRate = *in.ServiceFeeRate
		if feeRate.LessThan(c.tariff.ServiceFeeRateMin) || feeRate.GreaterThan(c.tariff.ServiceFeeRateMax) {
			return nil, fmt.Errorf("%w: %s not in [%s, %s]", ErrInvalidServiceFeeRate,
				feeRate, c.tariff.ServiceFeeRateMin, c.tariff.ServiceFeeRateMax)
		}
	}

	seasonAdj := c.resolveSeasonAdjustment(in)
	overage := c.guestOverage(in, minGuests)

	lines := make([]ServiceLine, 0, len(in.Services))
	servicesSubtotal := decimal.Zero
	for _, sel := range in.Services {
		line := priceLine(sel, in.GuestCount)
		servicesSubtotal = servicesSubtotal.Add(line.Subtotal)
		lines = append(lines, line)
	}

	taxable := base.
		Add(seasonAdj).
		Add(overage.Subtotal).
		Add(servicesSubtotal).
		Sub(in.Discount)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	tax := taxable.Mul(c.tariff.TaxRate)
	fee := taxable.Mul(feeRate)
	total := taxable.Add(tax).Add(fee)

	return &Breakdown{
		SubtotalBase:     base,
		SeasonAdjustment: seasonAdj,
		GuestOverage:     overage,
		ServiceLines:     lines,
		ServicesSubtotal: servicesSubtotal,
		Discount:         in.Discount,
		TaxableBase:      taxable,
		TaxRate:          c.tariff.TaxRate,
		TaxAmount:        tax.Round(2),
		ServiceFeeRate:   feeRate,
		ServiceFeeAmount: fee.Round(2),
		Total:            total.Round(2),
	}, nil
}

// resolveBase picks the package base and minimum guest count. A venue pricing
// row wins over a negotiated base, which wins over the catalog default.
func (c *Calculator) resolveBase(in Input) (decimal.Decimal, int) {
	base := in.Package.BasePrice
	minGuests := in.Package.MinGuests

	if in.NegotiatedBase != nil {
		base = *in.NegotiatedBase
	}
	if in.VenuePricing != nil {
		base = in.VenuePricing.BasePrice
		if in.VenuePricing.MinGuests > 0 {
			minGuests = in.VenuePricing.MinGuests
		}
	}
	return base, minGuests
}

func (c *Calculator) resolveSeasonAdjustment(in Input) decimal.Decimal {
	if in.ExternalVenue {
		return decimal.Zero
	}
	if in.SeasonAdjustmentOverride != nil {
		return *in.SeasonAdjustmentOverride
	}
	if in.Season != nil {
		return in.Season.PriceAdjustment
	}
	return decimal.Zero
}

// guestOverage charges guests above the package minimum at the seasonal
// rate. The seasonal tariff applies even at external venues.
func (c *Calculator) guestOverage(in Input, minGuests int) GuestOverage {
	tier := catalog.SeasonLow
	if in.Season != nil {
		tier = in.Season.Tier
	}
	unit := c.tariff.GuestOverageUnitPrice(tier)

	count := in.GuestCount - minGuests
	if count < 0 {
		count = 0
	}
	return GuestOverage{
		Count:     count,
		UnitPrice: unit,
		Subtotal:  unit.Mul(decimal.NewFromInt(int64(count))),
	}
}

func priceLine(sel ServiceInput, guestCount int) ServiceLine {
	unit := sel.Service.BasePrice
	if sel.PriceOverride != nil {
		unit = *sel.PriceOverride
	}

	subtotal := unit.Mul(decimal.NewFromInt(int64(sel.Quantity)))
	if sel.Service.ChargeType == catalog.ChargePerGuest {
		subtotal = subtotal.Mul(decimal.NewFromInt(int64(guestCount)))
	}

	return ServiceLine{
		ServiceID:  sel.Service.ID,
		Name:       sel.Service.Name,
		UnitPrice:  unit,
		Quantity:   sel.Quantity,
		ChargeType: sel.Service.ChargeType,
		Subtotal:   subtotal,
	}
}
