package pricing

import (
	"offerly/internal/catalog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ServiceLine is one priced add-on row.
type ServiceLine struct {
	ServiceID  uuid.UUID          `json:"service_id"`
	Name       string             `json:"name"`
	UnitPrice  decimal.Decimal    `json:"unit_price"`
	Quantity   int                `json:"quantity"`
	ChargeType catalog.ChargeType `json:"charge_type"`
	Subtotal   decimal.Decimal    `json:"subtotal"`
}

// GuestOverage prices the guests above the package minimum.
type GuestOverage struct {
	Count     int             `json:"count"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Breakdown is the full price decomposition of a quote. TaxAmount,
// ServiceFeeAmount and Total are rounded to two decimals; intermediate
// figures keep full precision so the total never accumulates rounding drift.
type Breakdown struct {
	SubtotalBase     decimal.Decimal `json:"subtotal_base"`
	SeasonAdjustment decimal.Decimal `json:"season_adjustment"`
	GuestOverage     GuestOverage    `json:"guest_overage"`
	ServiceLines     []ServiceLine   `json:"service_lines"`
	ServicesSubtotal decimal.Decimal `json:"services_subtotal"`
	Discount         decimal.Decimal `json:"discount"`
	TaxableBase      decimal.Decimal `json:"taxable_base"`
	TaxRate          decimal.Decimal `json:"tax_rate"`
	TaxAmount        decimal.Decimal `json:"tax_amount"`
	ServiceFeeRate   decimal.Decimal `json:"service_fee_rate"`
	ServiceFeeAmount decimal.Decimal `json:"service_fee_amount"`
	Total            decimal.Decimal `json:"total"`
}
