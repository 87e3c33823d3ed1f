package exclusions

import (
	"errors"
	"fmt"
	"sort"

	"offerly/internal/catalog"

	"github.com/google/uuid"
)

var (
	// ErrExclusionViolation is returned when an addition or swap breaks the
	// tier policy for its exclusion group.
	ErrExclusionViolation = errors.New("exclusion rule violation")

	// ErrUnknownService is returned when a referenced service does not exist
	// or is not a member of the stated group.
	ErrUnknownService = errors.New("unknown service")
)

// Alternative is a group member the customer may switch to.
type Alternative struct {
	ServiceID uuid.UUID `json:"service_id"`
	Name      string    `json:"name"`
	Rank      int       `json:"rank"`
}

// EffectiveService is one resolved line of a package's inclusions: the active
// service for its slot plus the alternatives the tier policy leaves open.
// Ungrouped inclusions carry no group and no alternatives.
type EffectiveService struct {
	ServiceID    uuid.UUID     `json:"service_id"`
	Name         string        `json:"name"`
	Quantity     int           `json:"quantity"`
	GroupID      string        `json:"group_id,omitempty"`
	Rank         int           `json:"rank,omitempty"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// Resolver applies the tier policy table to a package's inclusions.
type Resolver struct {
	table *PolicyTable
}

func NewResolver(table *PolicyTable) *Resolver {
	return &Resolver{table: table}
}

// ResolveEffective computes the package's effective service lines. services
// must hold the full active catalog so group membership can be enumerated.
// overrides maps group ID to the service the customer switched that slot to;
// an override that the tier policy forbids is ignored in favor of the shipped
// default, but an override naming a service outside the catalog or outside
// its stated group is an error.
func (r *Resolver) ResolveEffective(pkg catalog.Package, services map[uuid.UUID]catalog.Service, overrides map[string]uuid.UUID) ([]EffectiveService, error) {
	members := groupMembers(services)

	effective := make([]EffectiveService, 0, len(pkg.Services))
	for _, inc := range pkg.Services {
		svc, ok := services[inc.ServiceID]
		if !ok {
			return nil, fmt.Errorf("%w: included service %s", ErrUnknownService, inc.ServiceID)
		}

		line := EffectiveService{
			ServiceID: svc.ID,
			Name:      svc.Name,
			Quantity:  inc.Quantity,
		}

		if svc.ExclusionGroupID == nil {
			effective = append(effective, line)
			continue
		}

		groupID := *svc.ExclusionGroupID
		active := svc

		if overrideID, ok := overrides[groupID]; ok {
			override, err := resolveOverride(groupID, overrideID, services)
			if err != nil {
				return nil, err
			}
			if r.swapAllowed(pkg.Tier, groupID, svc, *override) {
				active = *override
			}
		}

		line.ServiceID = active.ID
		line.Name = active.Name
		line.GroupID = groupID
		line.Rank = active.ExclusionRank
		line.Alternatives = r.alternatives(pkg.Tier, groupID, active, members[groupID])
		effective = append(effective, line)
	}

	return effective, nil
}

// ValidateAddition checks whether a standalone service may be added on top of
// the resolved lines. Grouped additions collide with the active member of
// their group; ungrouped additions always pass.
func (r *Resolver) ValidateAddition(pkg catalog.Package, effective []EffectiveService, addition catalog.Service) error {
	if addition.ExclusionGroupID == nil {
		return nil
	}
	groupID := *addition.ExclusionGroupID

	var active *EffectiveService
	for i := range effective {
		if effective[i].GroupID == groupID {
			active = &effective[i]
			break
		}
	}
	if active == nil {
		// No member of the group in play yet
		return nil
	}
	if active.ServiceID == addition.ID {
		return nil
	}
	if IsTwoWay(groupID) {
		return nil
	}

	policy := r.table.PolicyFor(pkg.Tier, groupID)
	switch {
	case policy == PolicyStrict:
		return fmt.Errorf("%w: %q is pinned to %q for this package", ErrExclusionViolation, groupID, active.Name)
	case addition.ExclusionRank > active.Rank:
		return nil
	case addition.ExclusionRank == active.Rank && policy == PolicyFreeChoice:
		return nil
	default:
		// Downgrades are never sold
		return fmt.Errorf("%w: %q cannot replace the higher %q", ErrExclusionViolation, addition.Name, active.Name)
	}
}

// swapAllowed applies the same rules as ValidateAddition to an override
// candidate replacing the shipped member.
func (r *Resolver) swapAllowed(tier, groupID string, shipped, candidate catalog.Service) bool {
	if candidate.ID == shipped.ID {
		return true
	}
	if IsTwoWay(groupID) {
		return true
	}
	policy := r.table.PolicyFor(tier, groupID)
	switch policy {
	case PolicyStrict:
		return false
	case PolicyUpgradeOnly:
		return candidate.ExclusionRank > shipped.ExclusionRank
	case PolicyFreeChoice:
		return candidate.ExclusionRank >= shipped.ExclusionRank
	}
	return false
}

func (r *Resolver) alternatives(tier, groupID string, active catalog.Service, members []catalog.Service) []Alternative {
	twoWay := IsTwoWay(groupID)
	policy := r.table.PolicyFor(tier, groupID)

	var alts []Alternative
	for _, m := range members {
		if m.ID == active.ID {
			continue
		}
		switch {
		case twoWay:
		case policy == PolicyStrict:
			continue
		case policy == PolicyUpgradeOnly && m.ExclusionRank <= active.ExclusionRank:
			continue
		case policy == PolicyFreeChoice && m.ExclusionRank < active.ExclusionRank:
			continue
		}
		alts = append(alts, Alternative{ServiceID: m.ID, Name: m.Name, Rank: m.ExclusionRank})
	}

	sort.Slice(alts, func(i, j int) bool { return alts[i].Rank < alts[j].Rank })
	return alts
}

func resolveOverride(groupID string, overrideID uuid.UUID, services map[uuid.UUID]catalog.Service) (*catalog.Service, error) {
	svc, ok := services[overrideID]
	if !ok {
		return nil, fmt.Errorf("%w: override %s", ErrUnknownService, overrideID)
	}
	if svc.ExclusionGroupID == nil || *svc.ExclusionGroupID != groupID {
		return nil, fmt.Errorf("%w: %q is not a member of group %q", ErrUnknownService, svc.Name, groupID)
	}
	return &svc, nil
}

func groupMembers(services map[uuid.UUID]catalog.Service) map[string][]catalog.Service {
	members := make(map[string][]catalog.Service)
	for _, svc := range services {
		if svc.ExclusionGroupID != nil {
			members[*svc.ExclusionGroupID] = append(members[*svc.ExclusionGroupID], svc)
		}
	}
	return members
}
