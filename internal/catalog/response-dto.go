package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PackageResponse is the wire shape for a package, with included services
// flattened to their refs.
type PackageResponse struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Tier             string            `json:"tier"`
	BasePrice        decimal.Decimal   `json:"base_price"`
	DurationHours    decimal.Decimal   `json:"duration_hours"`
	MinGuests        int               `json:"min_guests"`
	WeekdaysOnly     bool              `json:"weekdays_only"`
	LatestEndMinutes int               `json:"latest_end_minutes,omitempty"`
	Services         []ServiceRef      `json:"services"`
}

// ServiceRef identifies a service shipped with a package.
type ServiceRef struct {
	ServiceID uuid.UUID `json:"service_id"`
	Quantity  int       `json:"quantity"`
}

// ServiceResponse is the wire shape for an add-on service.
type ServiceResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	BasePrice        decimal.Decimal `json:"base_price"`
	ChargeType       ChargeType      `json:"charge_type"`
	ExclusionGroupID *string         `json:"exclusion_group_id,omitempty"`
	ExclusionRank    int             `json:"exclusion_rank"`
}

func ToPackageResponse(pkg Package) PackageResponse {
	refs := make([]ServiceRef, 0, len(pkg.Services))
	for _, ps := range pkg.Services {
		refs = append(refs, ServiceRef{ServiceID: ps.ServiceID, Quantity: ps.Quantity})
	}
	return PackageResponse{
		ID:               pkg.ID,
		Name:             pkg.Name,
		Tier:             pkg.Tier,
		BasePrice:        pkg.BasePrice,
		DurationHours:    pkg.DurationHours,
		MinGuests:        pkg.MinGuests,
		WeekdaysOnly:     pkg.WeekdaysOnly,
		LatestEndMinutes: pkg.LatestEndMinutes,
		Services:         refs,
	}
}

func ToPackageResponses(pkgs []Package) []PackageResponse {
	out := make([]PackageResponse, 0, len(pkgs))
	for _, pkg := range pkgs {
		out = append(out, ToPackageResponse(pkg))
	}
	return out
}

func ToServiceResponse(svc Service) ServiceResponse {
	return ServiceResponse{
		ID:               svc.ID,
		Name:             svc.Name,
		Category:         svc.Category,
		BasePrice:        svc.BasePrice,
		ChargeType:       svc.ChargeType,
		ExclusionGroupID: svc.ExclusionGroupID,
		ExclusionRank:    svc.ExclusionRank,
	}
}

func ToServiceResponses(svcs []Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(svcs))
	for _, svc := range svcs {
		out = append(out, ToServiceResponse(svc))
	}
	return out
}
