package exclusions

import "offerly/internal/catalog"

// Policy controls how a package tier treats swaps inside one exclusion group.
type Policy int

const (
	// PolicyStrict pins the group to the member the package ships with.
	PolicyStrict Policy = iota
	// PolicyUpgradeOnly allows replacing the shipped member with a
	// higher-ranked one.
	PolicyUpgradeOnly
	// PolicyFreeChoice allows any member at or above the shipped rank.
	PolicyFreeChoice
)

func (p Policy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicyUpgradeOnly:
		return "upgrade-only"
	case PolicyFreeChoice:
		return "free-choice"
	}
	return "unknown"
}

// PolicyTable maps package tier and exclusion group to a swap policy. Tiers
// absent from the table get the fallback policy for every group.
type PolicyTable struct {
	tiers    map[string]map[string]Policy
	fallback Policy
}

func NewPolicyTable(tiers map[string]map[string]Policy, fallback Policy) *PolicyTable {
	return &PolicyTable{tiers: tiers, fallback: fallback}
}

// PolicyFor returns the policy for a tier and group. Groups missing from a
// known tier's row also fall back.
func (t *PolicyTable) PolicyFor(tier, groupID string) Policy {
	if row, ok := t.tiers[tier]; ok {
		if p, ok := row[groupID]; ok {
			return p
		}
	}
	return t.fallback
}

// DefaultPolicyTable encodes the house rules per package tier. Higher tiers
// already ship the top variants of most groups, so their rows tighten toward
// strict; the toast pair stays freely switchable everywhere.
func DefaultPolicyTable() *PolicyTable {
	return NewPolicyTable(map[string]map[string]Policy{
		catalog.TierDaytime: {
			GroupBar:         PolicyUpgradeOnly,
			GroupDecor:       PolicyUpgradeOnly,
			GroupPhotography: PolicyUpgradeOnly,
			GroupToast:       PolicyFreeChoice,
		},
		catalog.TierCustom: {
			GroupBar:         PolicyStrict,
			GroupDecor:       PolicyStrict,
			GroupPhotography: PolicyStrict,
			GroupToast:       PolicyFreeChoice,
		},
		catalog.TierPlatinum: {
			GroupBar:         PolicyUpgradeOnly,
			GroupDecor:       PolicyUpgradeOnly,
			GroupPhotography: PolicyUpgradeOnly,
			GroupToast:       PolicyFreeChoice,
		},
		catalog.TierDiamond: {
			GroupBar:         PolicyUpgradeOnly,
			GroupDecor:       PolicyStrict,
			GroupPhotography: PolicyUpgradeOnly,
			GroupToast:       PolicyFreeChoice,
		},
		catalog.TierDeluxe: {
			GroupBar:         PolicyStrict,
			GroupDecor:       PolicyStrict,
			GroupPhotography: PolicyStrict,
			GroupToast:       PolicyFreeChoice,
		},
	}, PolicyUpgradeOnly)
}
