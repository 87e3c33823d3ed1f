package quotes

// Stage is the wizard's position. Forward transitions are gated; moving
// backward is always free and forward jumps re-run every intermediate gate.
type Stage int

const (
	StageClientSelected Stage = iota
	StageEventDetails
	StagePackageSelected
	StageServicesConfigured
	StageDiscountApplied
	StageFinalized
)

func (s Stage) String() string {
	switch s {
	case StageClientSelected:
		return "CLIENT_SELECTED"
	case StageEventDetails:
		return "EVENT_DETAILS_SET"
	case StagePackageSelected:
		return "PACKAGE_SELECTED"
	case StageServicesConfigured:
		return "SERVICES_CONFIGURED"
	case StageDiscountApplied:
		return "DISCOUNT_APPLIED"
	case StageFinalized:
		return "FINALIZED"
	}
	return "UNKNOWN"
}
