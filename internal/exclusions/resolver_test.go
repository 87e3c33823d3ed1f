package exclusions

import (
	"errors"
	"testing"

	"offerly/internal/catalog"

	"github.com/google/uuid"
)

type fixture struct {
	services map[uuid.UUID]catalog.Service
	byName   map[string]catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		services: make(map[uuid.UUID]catalog.Service),
		byName:   make(map[string]catalog.Service),
	}
	add := func(name, group string, rank int) {
		svc := catalog.Service{
			ID:            uuid.New(),
			Name:          name,
			ChargeType:    catalog.ChargeFixed,
			ExclusionRank: rank,
			Active:        true,
		}
		if group != "" {
			g := group
			svc.ExclusionGroupID = &g
		}
		f.services[svc.ID] = svc
		f.byName[name] = svc
	}

	add("National Bar", GroupBar, 1)
	add("Premium Bar", GroupBar, 2)
	add("Top Shelf Bar", GroupBar, 3)
	add("Standard Decor", GroupDecor, 1)
	add("Premium Decor", GroupDecor, 2)
	add("Cider Toast", GroupToast, 1)
	add("Champagne Toast", GroupToast, 1)
	add("DJ Set", "", 0)
	return f
}

func (f *fixture) pkg(tier string, names ...string) catalog.Package {
	pkg := catalog.Package{ID: uuid.New(), Name: tier + " pkg", Tier: tier}
	for _, name := range names {
		pkg.Services = append(pkg.Services, catalog.PackageService{
			PackageID: pkg.ID,
			ServiceID: f.byName[name].ID,
			Quantity:  1,
		})
	}
	return pkg
}

func findLine(t *testing.T, effective []EffectiveService, groupID string) EffectiveService {
	t.Helper()
	for _, line := range effective {
		if line.GroupID == groupID {
			return line
		}
	}
	t.Fatalf("no effective line for group %q", groupID)
	return EffectiveService{}
}

func TestResolveEffective(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(DefaultPolicyTable())

	t.Run("upgrade-only tier exposes only higher ranks", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierPlatinum, "National Bar", "Cider Toast", "DJ Set")

		effective, err := resolver.ResolveEffective(pkg, f.services, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		bar := findLine(t, effective, GroupBar)
		if len(bar.Alternatives) != 2 {
			t.Fatalf("expected 2 bar upgrades, got %d", len(bar.Alternatives))
		}
		for _, alt := range bar.Alternatives {
			if alt.Rank <= bar.Rank {
				t.Fatalf("alternative %q rank %d not above active rank %d", alt.Name, alt.Rank, bar.Rank)
			}
		}
	})

	t.Run("strict tier exposes no grouped alternatives", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierCustom, "National Bar")

		effective, err := resolver.ResolveEffective(pkg, f.services, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if alts := findLine(t, effective, GroupBar).Alternatives; len(alts) != 0 {
			t.Fatalf("expected no alternatives, got %v", alts)
		}
	})

	t.Run("two-way pair always exposes the other member", func(t *testing.T) {
		f := newFixture(t)
		// Deluxe is strict for everything but toast stays switchable both ways
		pkg := f.pkg(catalog.TierDeluxe, "Cider Toast")

		effective, err := resolver.ResolveEffective(pkg, f.services, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		toast := findLine(t, effective, GroupToast)
		if len(toast.Alternatives) != 1 || toast.Alternatives[0].ServiceID != f.byName["Champagne Toast"].ID {
			t.Fatalf("expected champagne alternative, got %v", toast.Alternatives)
		}
	})

	t.Run("valid override replaces the shipped member", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierPlatinum, "National Bar")
		overrides := map[string]uuid.UUID{GroupBar: f.byName["Premium Bar"].ID}

		effective, err := resolver.ResolveEffective(pkg, f.services, overrides)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bar := findLine(t, effective, GroupBar)
		if bar.ServiceID != f.byName["Premium Bar"].ID {
			t.Fatalf("expected override to win, active is %q", bar.Name)
		}
		// The remaining upgrade is still on offer
		if len(bar.Alternatives) != 1 || bar.Alternatives[0].ServiceID != f.byName["Top Shelf Bar"].ID {
			t.Fatalf("expected top shelf alternative, got %v", bar.Alternatives)
		}
	})

	t.Run("policy-forbidden override falls back to shipped default", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierCustom, "National Bar")
		overrides := map[string]uuid.UUID{GroupBar: f.byName["Premium Bar"].ID}

		effective, err := resolver.ResolveEffective(pkg, f.services, overrides)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if bar := findLine(t, effective, GroupBar); bar.ServiceID != f.byName["National Bar"].ID {
			t.Fatalf("expected shipped default, active is %q", bar.Name)
		}
	})

	t.Run("override outside the stated group is rejected", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierPlatinum, "National Bar")
		overrides := map[string]uuid.UUID{GroupBar: f.byName["Premium Decor"].ID}

		_, err := resolver.ResolveEffective(pkg, f.services, overrides)
		if !errors.Is(err, ErrUnknownService) {
			t.Fatalf("expected ErrUnknownService, got %v", err)
		}
	})

	t.Run("override naming a missing service is rejected", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierPlatinum, "National Bar")
		overrides := map[string]uuid.UUID{GroupBar: uuid.New()}

		_, err := resolver.ResolveEffective(pkg, f.services, overrides)
		if !errors.Is(err, ErrUnknownService) {
			t.Fatalf("expected ErrUnknownService, got %v", err)
		}
	})

	t.Run("unknown tier falls back to upgrade-only", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg("SOMETHING_NEW", "National Bar")

		effective, err := resolver.ResolveEffective(pkg, f.services, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if alts := findLine(t, effective, GroupBar).Alternatives; len(alts) != 2 {
			t.Fatalf("expected upgrade alternatives under fallback policy, got %v", alts)
		}
	})
}

func TestValidateAddition(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(DefaultPolicyTable())

	t.Run("ungrouped addition always passes", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierCustom, "National Bar")
		effective, _ := resolver.ResolveEffective(pkg, f.services, nil)

		if err := resolver.ValidateAddition(pkg, effective, f.byName["DJ Set"]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("upgrade passes under upgrade-only", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierPlatinum, "National Bar")
		effective, _ := resolver.ResolveEffective(pkg, f.services, nil)

		if err := resolver.ValidateAddition(pkg, effective, f.byName["Top Shelf Bar"]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("upgrade fails under strict", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierCustom, "National Bar")
		effective, _ := resolver.ResolveEffective(pkg, f.services, nil)

		err := resolver.ValidateAddition(pkg, effective, f.byName["Premium Bar"])
		if !errors.Is(err, ErrExclusionViolation) {
			t.Fatalf("expected ErrExclusionViolation, got %v", err)
		}
	})

	t.Run("downgrade always fails", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierPlatinum, "Premium Bar")
		effective, _ := resolver.ResolveEffective(pkg, f.services, nil)

		err := resolver.ValidateAddition(pkg, effective, f.byName["National Bar"])
		if !errors.Is(err, ErrExclusionViolation) {
			t.Fatalf("expected ErrExclusionViolation, got %v", err)
		}
	})

	t.Run("two-way member passes even under strict", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierDeluxe, "Cider Toast")
		effective, _ := resolver.ResolveEffective(pkg, f.services, nil)

		if err := resolver.ValidateAddition(pkg, effective, f.byName["Champagne Toast"]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("group with no active member is open", func(t *testing.T) {
		f := newFixture(t)
		pkg := f.pkg(catalog.TierCustom, "National Bar")
		effective, _ := resolver.ResolveEffective(pkg, f.services, nil)

		if err := resolver.ValidateAddition(pkg, effective, f.byName["Premium Decor"]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
