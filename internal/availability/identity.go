package availability

import "strings"

// NormalizeVenueLabel folds a venue label to its identity form: lower-cased,
// trimmed, with any trailing numeric suite marker removed so "Grand Hall 2"
// and "Grand Hall" resolve to the same venue family. Every label comparison
// in the checker goes through this single step.
func NormalizeVenueLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.TrimRight(s, "0123456789")
	return strings.TrimSpace(s)
}
