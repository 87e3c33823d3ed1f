package availability

import (
	"sort"

	"offerly/internal/scheduling"
)

// HourRange is an inclusive span of hour markers. Midnight-crossing windows
// extend past hour 23 into a virtual 24-26 range so containment stays a
// plain interval comparison; markers fold back mod 24 on output.
type HourRange struct {
	Start int
	End   int
}

// NewHourRange converts a clock window to its inclusive hour span. An end
// time strictly before the start is read as crossing midnight; a zero-length
// window collapses to its single start hour.
func NewHourRange(start, end scheduling.ClockTime) HourRange {
	r := HourRange{Start: start.Hour(), End: end.Hour()}
	if end.Minutes() < start.Minutes() {
		r.End += 24
	}
	return r
}

// Contains reports whether the range covers the marker, checking the folded
// position as well for extended ranges.
func (r HourRange) Contains(hour int) bool {
	if hour >= r.Start && hour <= r.End {
		return true
	}
	folded := hour + 24
	return folded >= r.Start && folded <= r.End
}

// Intersects applies the inclusive-boundary overlap rule: a window ending at
// hour H conflicts with one starting at hour H. Turnover time is absorbed
// into this rule rather than modeled separately.
func (r HourRange) Intersects(o HourRange) bool {
	for _, shift := range []int{-24, 0, 24} {
		if r.Start <= o.End+shift && o.Start+shift <= r.End {
			return true
		}
	}
	return false
}

// Hours lists the covered markers folded back to 0-23.
func (r HourRange) Hours() []int {
	hours := make([]int, 0, r.End-r.Start+1)
	for h := r.Start; h <= r.End; h++ {
		hours = append(hours, h%24)
	}
	return hours
}

// OccupiedHours is a set of blocked hour markers for one venue and date.
type OccupiedHours map[int]struct{}

func NewOccupiedHours(markers []int) OccupiedHours {
	set := make(OccupiedHours, len(markers))
	for _, m := range markers {
		set[m%24] = struct{}{}
	}
	return set
}

// AddRange unions the range's markers into the set.
func (o OccupiedHours) AddRange(r HourRange) {
	for _, h := range r.Hours() {
		o[h] = struct{}{}
	}
}

// Blocking returns the markers of the set that fall inside the requested
// window, sorted for stable diagnostics.
func (o OccupiedHours) Blocking(r HourRange) []int {
	var hit []int
	for h := range o {
		if r.Contains(h) {
			hit = append(hit, h)
		}
	}
	sort.Ints(hit)
	return hit
}

// Markers lists the set in ascending order.
func (o OccupiedHours) Markers() []int {
	out := make([]int, 0, len(o))
	for h := range o {
		out = append(out, h)
	}
	sort.Ints(out)
	return out
}
