package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"offerly/internal/availability"
	"offerly/internal/catalog"
	"offerly/internal/exclusions"
	"offerly/internal/pricing"
	"offerly/internal/scheduling"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deps are the collaborators one builder works against. The catalog is
// read-only within a session's lifetime; availability is never cached.
type Deps struct {
	Catalog              catalog.CatalogService
	Resolver             *exclusions.Resolver
	Calculator           *pricing.Calculator
	Checker              *availability.Checker
	ExtraHourServiceName string
}

// EventDetailsInput is the payload for the event-details gate.
type EventDetailsInput struct {
	Date                time.Time
	Start               scheduling.ClockTime
	End                 scheduling.ClockTime
	GuestCount          int
	VenueID             *uuid.UUID
	ExternalVenueLabel  string
	AcknowledgeCapacity bool
}

// Snapshot is the immutable finalize artifact handed to persistence.
type Snapshot struct {
	Configuration     QuoteConfiguration             `json:"configuration"`
	EffectiveServices []exclusions.EffectiveService  `json:"effective_services"`
	Breakdown         pricing.Breakdown              `json:"breakdown"`
	FinalizedAt       time.Time                      `json:"finalized_at"`
}

// Builder drives one quote session through the wizard. Every mutation is
// validate-then-commit: the configuration is only replaced once the whole
// mutation passed, so a failing call never leaves partial state behind.
// A Builder is not safe for concurrent use; the session manager serializes
// access.
type Builder struct {
	deps   Deps
	config QuoteConfiguration
	tokens availability.TokenSource

	effective  []exclusions.EffectiveService
	breakdown  *pricing.Breakdown
	advisories []availability.Conflict
}

func NewBuilder(sessionID, clientRef, clientName string, deps Deps) *Builder {
	return &Builder{
		deps: deps,
		config: QuoteConfiguration{
			SessionID:  sessionID,
			ClientRef:  clientRef,
			ClientName: clientName,
			Stage:      StageClientSelected,
		},
	}
}

// Config returns a copy of the current configuration.
func (b *Builder) Config() QuoteConfiguration {
	return b.config.Clone()
}

// Stage returns the furthest satisfied stage.
func (b *Builder) Stage() Stage {
	return b.config.Stage
}

// Effective returns the resolved service lines from the last recalculation.
func (b *Builder) Effective() []exclusions.EffectiveService {
	return b.effective
}

// Breakdown returns the current price preview, nil before a package is
// selected.
func (b *Builder) Breakdown() *pricing.Breakdown {
	return b.breakdown
}

// Advisories returns the calendar warnings from the last availability check.
func (b *Builder) Advisories() []availability.Conflict {
	return b.advisories
}

// SetEventDetails runs the event-details gate: schedule window, venue
// identity, capacity soft block and the availability check. The availability
// result is applied only when its token is still the latest issued.
func (b *Builder) SetEventDetails(ctx context.Context, in EventDetailsInput) error {
	if err := b.mutable(); err != nil {
		return err
	}

	if in.GuestCount < 1 {
		return fmt.Errorf("%w: guest count must be at least 1", ErrInvalidEventDetails)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: event date is required", ErrInvalidEventDetails)
	}
	if err := scheduling.ValidateWindow(in.Start, in.End); err != nil {
		return err
	}
	if in.VenueID == nil && in.ExternalVenueLabel == "" {
		return fmt.Errorf("%w: a venue or an external location is required", ErrInvalidEventDetails)
	}
	if in.VenueID != nil && in.ExternalVenueLabel != "" {
		return fmt.Errorf("%w: venue and external location are mutually exclusive", ErrInvalidEventDetails)
	}

	var advisories []availability.Conflict
	if in.VenueID != nil {
		venue, err := b.deps.Catalog.GetVenue(ctx, *in.VenueID)
		if err != nil {
			return err
		}
		if venue == nil {
			return fmt.Errorf("%w: unknown venue %s", ErrInvalidEventDetails, in.VenueID)
		}
		if in.GuestCount > venue.MaxCapacity && !in.AcknowledgeCapacity {
			return fmt.Errorf("%w: %d guests against capacity %d", ErrCapacityAckRequired, in.GuestCount, venue.MaxCapacity)
		}

		token := b.tokens.Next()
		result, err := b.deps.Checker.Check(ctx, *venue, in.Date, in.Start, in.End, token)
		if err != nil {
			return err
		}
		if result.Token < b.tokens.Latest() {
			return ErrStaleAvailability
		}
		if !result.Available {
			return &VenueConflictError{Conflicts: result.Conflicts}
		}
		advisories = result.Advisories
	}

	candidate := b.config.Clone()
	candidate.EventDate = in.Date
	candidate.StartTime = in.Start
	candidate.EndTime = in.End
	candidate.GuestCount = in.GuestCount
	candidate.VenueID = in.VenueID
	candidate.ExternalVenueLabel = in.ExternalVenueLabel
	candidate.CapacityAcknowledged = in.AcknowledgeCapacity
	if candidate.Stage < StageEventDetails {
		candidate.Stage = StageEventDetails
	}

	// A time change invalidates and re-runs the package gate
	if candidate.PackageID != nil {
		pkg, err := b.deps.Catalog.GetPackage(ctx, *candidate.PackageID)
		if err != nil {
			return err
		}
		if err := b.validatePackageCompat(ctx, &candidate, pkg); err != nil {
			return err
		}
		if err := b.syncRequiredExtras(ctx, &candidate, pkg); err != nil {
			return err
		}
	}

	return b.commit(ctx, candidate, advisories)
}

// SelectPackage runs the package gate against the current event details.
func (b *Builder) SelectPackage(ctx context.Context, packageID uuid.UUID, negotiatedBase *decimal.Decimal) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.config.Stage < StageEventDetails {
		return ErrMissingEventDetails
	}

	pkg, err := b.deps.Catalog.GetPackage(ctx, packageID)
	if err != nil {
		return err
	}

	candidate := b.config.Clone()
	candidate.PackageID = &packageID
	candidate.NegotiatedBase = negotiatedBase
	candidate.ExclusionOverrides = nil
	candidate.AdditionalServices = pruneAutoLines(candidate.AdditionalServices)

	if err := b.validatePackageCompat(ctx, &candidate, pkg); err != nil {
		return err
	}
	if err := b.syncRequiredExtras(ctx, &candidate, pkg); err != nil {
		return err
	}
	if err := b.validateExtrasCovered(ctx, &candidate, pkg); err != nil {
		return err
	}

	if candidate.Stage < StagePackageSelected {
		candidate.Stage = StagePackageSelected
	}
	return b.commit(ctx, candidate, b.advisories)
}

// AddService adds an add-on line after validating the exclusion rules.
func (b *Builder) AddService(ctx context.Context, serviceID uuid.UUID, quantity int, priceOverride *decimal.Decimal) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.config.PackageID == nil {
		return ErrMissingPackage
	}
	if quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidEventDetails)
	}

	pkg, err := b.deps.Catalog.GetPackage(ctx, *b.config.PackageID)
	if err != nil {
		return err
	}
	svc, err := b.deps.Catalog.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return fmt.Errorf("%w: %s", exclusions.ErrUnknownService, serviceID)
		}
		return err
	}

	if err := b.deps.Resolver.ValidateAddition(*pkg, b.effective, *svc); err != nil {
		return err
	}

	candidate := b.config.Clone()
	merged := false
	for i := range candidate.AdditionalServices {
		line := &candidate.AdditionalServices[i]
		if line.ServiceID == serviceID && !line.AutoRequired && line.UnitPriceOverride == nil && priceOverride == nil {
			line.Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		candidate.AdditionalServices = append(candidate.AdditionalServices, SelectedService{
			ServiceID:         serviceID,
			Quantity:          quantity,
			UnitPriceOverride: priceOverride,
		})
	}
	if candidate.Stage < StageServicesConfigured && candidate.Stage >= StagePackageSelected {
		candidate.Stage = StageServicesConfigured
	}
	return b.commit(ctx, candidate, b.advisories)
}

// RemoveService drops an add-on line. Removing a required extra-hour line is
// allowed here; the package gate will block again at the next forward
// transition with the exact shortfall.
func (b *Builder) RemoveService(ctx context.Context, serviceID uuid.UUID) error {
	if err := b.mutable(); err != nil {
		return err
	}

	candidate := b.config.Clone()
	kept := candidate.AdditionalServices[:0]
	removed := false
	for _, line := range candidate.AdditionalServices {
		if line.ServiceID == serviceID && !removed {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return fmt.Errorf("%w: %s is not selected", exclusions.ErrUnknownService, serviceID)
	}
	candidate.AdditionalServices = kept
	return b.commit(ctx, candidate, b.advisories)
}

// SetExclusionOverride switches an included group slot to another member.
// Passing a nil service clears the override back to the shipped default.
func (b *Builder) SetExclusionOverride(ctx context.Context, groupID string, serviceID *uuid.UUID) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.config.PackageID == nil {
		return ErrMissingPackage
	}

	candidate := b.config.Clone()
	if candidate.ExclusionOverrides == nil {
		candidate.ExclusionOverrides = make(map[string]uuid.UUID)
	}
	if serviceID == nil {
		delete(candidate.ExclusionOverrides, groupID)
		return b.commit(ctx, candidate, b.advisories)
	}
	candidate.ExclusionOverrides[groupID] = *serviceID

	// Resolve up-front so a policy-forbidden override fails the mutation
	// instead of silently keeping the shipped default.
	pkg, err := b.deps.Catalog.GetPackage(ctx, *candidate.PackageID)
	if err != nil {
		return err
	}
	services, err := b.servicesByID(ctx)
	if err != nil {
		return err
	}
	effective, err := b.deps.Resolver.ResolveEffective(*pkg, services, candidate.ExclusionOverrides)
	if err != nil {
		return err
	}
	for _, line := range effective {
		if line.GroupID == groupID && line.ServiceID != *serviceID {
			return fmt.Errorf("%w: %s is not selectable for group %q", exclusions.ErrExclusionViolation, serviceID, groupID)
		}
	}

	return b.commit(ctx, candidate, b.advisories)
}

// ApplyDiscount runs the discount gate. Bounds are enforced by the
// calculator during the trial recalculation.
func (b *Builder) ApplyDiscount(ctx context.Context, discount decimal.Decimal, serviceFeeRate, seasonAdjustment *decimal.Decimal) error {
	if err := b.mutable(); err != nil {
		return err
	}
	if b.config.PackageID == nil {
		return ErrMissingPackage
	}

	candidate := b.config.Clone()
	candidate.Discount = discount
	candidate.ServiceFeeRate = serviceFeeRate
	candidate.SeasonAdjustmentOverride = seasonAdjustment
	if candidate.Stage < StageDiscountApplied {
		candidate.Stage = StageDiscountApplied
	}
	return b.commit(ctx, candidate, b.advisories)
}

// Finalize re-runs every gate and emits the immutable snapshot. The builder
// itself stays mutable until MarkFinalized seals it: the snapshot must be
// persisted first, and a failed persist leaves the session retryable.
func (b *Builder) Finalize(ctx context.Context) (*Snapshot, error) {
	if err := b.mutable(); err != nil {
		return nil, err
	}
	if b.config.Stage < StageEventDetails {
		return nil, ErrMissingEventDetails
	}
	if b.config.PackageID == nil {
		return nil, ErrMissingPackage
	}

	pkg, err := b.deps.Catalog.GetPackage(ctx, *b.config.PackageID)
	if err != nil {
		return nil, err
	}
	if err := b.validatePackageCompat(ctx, &b.config, pkg); err != nil {
		return nil, err
	}
	if err := b.validateExtrasCovered(ctx, &b.config, pkg); err != nil {
		return nil, err
	}
	if err := b.recalculate(ctx, &b.config); err != nil {
		return nil, err
	}

	snapCfg := b.config.Clone()
	snapCfg.Stage = StageFinalized

	effective := make([]exclusions.EffectiveService, len(b.effective))
	copy(effective, b.effective)

	return &Snapshot{
		Configuration:     snapCfg,
		EffectiveServices: effective,
		Breakdown:         *b.breakdown,
		FinalizedAt:       time.Now(),
	}, nil
}

// MarkFinalized seals the session once its snapshot has been persisted. The
// builder refuses all further mutation afterwards.
func (b *Builder) MarkFinalized() {
	b.config.Stage = StageFinalized
}

func (b *Builder) mutable() error {
	if b.config.Stage == StageFinalized {
		return ErrSessionFinalized
	}
	return nil
}

// commit recalculates against the candidate and only then replaces the live
// configuration.
func (b *Builder) commit(ctx context.Context, candidate QuoteConfiguration, advisories []availability.Conflict) error {
	if err := b.recalculate(ctx, &candidate); err != nil {
		return err
	}
	b.config = candidate
	b.advisories = advisories
	return nil
}

// recalculate resolves effective services and reprices the candidate. Pure
// reads only; results land on the builder when the caller commits.
func (b *Builder) recalculate(ctx context.Context, cfg *QuoteConfiguration) error {
	if cfg.PackageID == nil {
		b.effective = nil
		b.breakdown = nil
		return nil
	}

	pkg, err := b.deps.Catalog.GetPackage(ctx, *cfg.PackageID)
	if err != nil {
		return err
	}
	services, err := b.servicesByID(ctx)
	if err != nil {
		return err
	}

	effective, err := b.deps.Resolver.ResolveEffective(*pkg, services, cfg.ExclusionOverrides)
	if err != nil {
		return err
	}

	season, err := b.deps.Catalog.GetSeasonForDate(ctx, cfg.EventDate)
	if err != nil {
		return err
	}

	var venuePricing *catalog.PackageVenuePricing
	if cfg.VenueID != nil {
		venuePricing, err = b.deps.Catalog.GetPackageVenuePricing(ctx, pkg.ID, *cfg.VenueID)
		if err != nil {
			return err
		}
	}

	inputs := make([]pricing.ServiceInput, 0, len(cfg.AdditionalServices))
	for _, line := range cfg.AdditionalServices {
		svc, ok := services[line.ServiceID]
		if !ok {
			return fmt.Errorf("%w: %s", exclusions.ErrUnknownService, line.ServiceID)
		}
		inputs = append(inputs, pricing.ServiceInput{
			Service:       svc,
			Quantity:      line.Quantity,
			PriceOverride: line.UnitPriceOverride,
		})
	}

	breakdown, err := b.deps.Calculator.Calculate(pricing.Input{
		Package:                  *pkg,
		VenuePricing:             venuePricing,
		NegotiatedBase:           cfg.NegotiatedBase,
		Season:                   season,
		SeasonAdjustmentOverride: cfg.SeasonAdjustmentOverride,
		ExternalVenue:            cfg.ExternalVenue(),
		GuestCount:               cfg.GuestCount,
		Services:                 inputs,
		Discount:                 cfg.Discount,
		ServiceFeeRate:           cfg.ServiceFeeRate,
	})
	if err != nil {
		return err
	}

	b.effective = effective
	b.breakdown = breakdown
	return nil
}

// validatePackageCompat checks the package's own window rules and the venue
// pricing row.
func (b *Builder) validatePackageCompat(ctx context.Context, cfg *QuoteConfiguration, pkg *catalog.Package) error {
	weekday := cfg.EventDate.Weekday()
	if err := scheduling.ValidatePackageWindow(pkg.WeekdaysOnly, scheduling.ClockTime(pkg.LatestEndMinutes), weekday, cfg.StartTime, cfg.EndTime); err != nil {
		return err
	}

	if cfg.VenueID != nil {
		pvp, err := b.deps.Catalog.GetPackageVenuePricing(ctx, pkg.ID, *cfg.VenueID)
		if err != nil {
			return err
		}
		if pvp != nil && !pvp.Available {
			return fmt.Errorf("%w: %q", ErrPackageNotOffered, pkg.Name)
		}
	}
	return nil
}

// syncRequiredExtras keeps one auto-maintained extra-hour line matching the
// requirement not already covered by user-added lines. User lines are never
// touched.
func (b *Builder) syncRequiredExtras(ctx context.Context, cfg *QuoteConfiguration, pkg *catalog.Package) error {
	required := scheduling.ExtraUnits(cfg.StartTime, cfg.EndTime, pkg.DurationHours)

	extraSvc, err := b.deps.Catalog.GetServiceByName(ctx, b.deps.ExtraHourServiceName)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) && required == 0 {
			return nil
		}
		return err
	}

	manual := 0
	autoIdx := -1
	for i, line := range cfg.AdditionalServices {
		if line.ServiceID != extraSvc.ID {
			continue
		}
		if line.AutoRequired {
			autoIdx = i
		} else {
			manual += line.Quantity
		}
	}

	needed := required - manual
	if needed < 0 {
		needed = 0
	}

	switch {
	case autoIdx >= 0 && needed == 0:
		cfg.AdditionalServices = append(cfg.AdditionalServices[:autoIdx], cfg.AdditionalServices[autoIdx+1:]...)
	case autoIdx >= 0:
		cfg.AdditionalServices[autoIdx].Quantity = needed
	case needed > 0:
		cfg.AdditionalServices = append(cfg.AdditionalServices, SelectedService{
			ServiceID:    extraSvc.ID,
			Quantity:     needed,
			AutoRequired: true,
		})
	}
	return nil
}

// validateExtrasCovered is the package-gate check: every required
// extra-duration unit must be represented as a selected line.
func (b *Builder) validateExtrasCovered(ctx context.Context, cfg *QuoteConfiguration, pkg *catalog.Package) error {
	required := scheduling.ExtraUnits(cfg.StartTime, cfg.EndTime, pkg.DurationHours)
	if required == 0 {
		return nil
	}

	extraSvc, err := b.deps.Catalog.GetServiceByName(ctx, b.deps.ExtraHourServiceName)
	if err != nil {
		return err
	}

	covered := 0
	for _, line := range cfg.AdditionalServices {
		if line.ServiceID == extraSvc.ID {
			covered += line.Quantity
		}
	}
	if covered < required {
		return &MissingRequiredExtraError{Shortfall: required - covered}
	}
	return nil
}

func (b *Builder) servicesByID(ctx context.Context) (map[uuid.UUID]catalog.Service, error) {
	all, err := b.deps.Catalog.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Service, len(all))
	for _, svc := range all {
		byID[svc.ID] = svc
	}
	return byID, nil
}

func pruneAutoLines(lines []SelectedService) []SelectedService {
	kept := lines[:0]
	for _, line := range lines {
		if !line.AutoRequired {
			kept = append(kept, line)
		}
	}
	return kept
}
