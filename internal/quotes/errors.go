package quotes

import (
	"errors"
	"fmt"
	"strings"

	"offerly/internal/availability"
)

var (
	// ErrSessionNotFound is returned for an unknown or expired session ID.
	ErrSessionNotFound = errors.New("quote session not found")

	// ErrSessionFinalized is returned for any mutation after Finalize.
	ErrSessionFinalized = errors.New("quote session already finalized")

	// ErrMissingEventDetails is returned when a later gate runs before the
	// event details gate has passed.
	ErrMissingEventDetails = errors.New("event details not set")

	// ErrMissingPackage is returned when a later gate runs before a package
	// was selected.
	ErrMissingPackage = errors.New("no package selected")

	// ErrInvalidEventDetails is returned when the event-details gate rejects
	// the submitted fields.
	ErrInvalidEventDetails = errors.New("invalid event details")

	// ErrCapacityAckRequired soft-blocks a guest count above the venue's
	// capacity until the seller acknowledges it explicitly.
	ErrCapacityAckRequired = errors.New("guest count exceeds venue capacity, acknowledgment required")

	// ErrPackageNotOffered is returned when the selected venue excludes the
	// package or its window rules reject the event time.
	ErrPackageNotOffered = errors.New("package not offered for this venue and window")

	// ErrStaleAvailability is returned when an availability result was
	// superseded by a newer request before it could be applied.
	ErrStaleAvailability = errors.New("availability result superseded")
)

// MissingRequiredExtraError blocks the package gate when the event runs
// longer than the package covers and the extra-duration units are not all
// represented as selected service lines.
type MissingRequiredExtraError struct {
	Shortfall int
}

func (e *MissingRequiredExtraError) Error() string {
	return fmt.Sprintf("event duration requires %d more extra-hour unit(s)", e.Shortfall)
}

// VenueConflictError blocks the event-details gate on an authoritative
// booking overlap.
type VenueConflictError struct {
	Conflicts []availability.Conflict
}

func (e *VenueConflictError) Error() string {
	labels := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		labels = append(labels, c.Label)
	}
	return fmt.Sprintf("venue already booked: %s", strings.Join(labels, "; "))
}
