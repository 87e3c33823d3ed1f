package catalog

// SeasonTier drives the per-guest overage tariff.
type SeasonTier string

const (
	SeasonHigh SeasonTier = "HIGH"
	SeasonMid  SeasonTier = "MID"
	SeasonLow  SeasonTier = "LOW"
)

func (t SeasonTier) IsValid() bool {
	switch t {
	case SeasonHigh, SeasonMid, SeasonLow:
		return true
	}
	return false
}

func (t SeasonTier) String() string {
	return string(t)
}

// ChargeType determines how a service line is priced.
type ChargeType string

const (
	ChargeFixed    ChargeType = "FIXED"     // unit price × quantity
	ChargePerGuest ChargeType = "PER_GUEST" // unit price × guest count × quantity
	ChargePerUnit  ChargeType = "PER_UNIT"  // unit price × quantity
)

func (c ChargeType) IsValid() bool {
	switch c {
	case ChargeFixed, ChargePerGuest, ChargePerUnit:
		return true
	}
	return false
}

func (c ChargeType) String() string {
	return string(c)
}

// Package tiers known to the exclusion policy table. Tiers are plain data;
// an unknown tier falls back to permissive defaults.
const (
	TierDaytime  = "DAYTIME"
	TierCustom   = "CUSTOM"
	TierPlatinum = "PLATINUM"
	TierDiamond  = "DIAMOND"
	TierDeluxe   = "DELUXE"
)
