package domain

import "time"

// RangesOverlap reports whether the candidate half-open range [a, b) conflicts
// with an existing half-open range [c, d). A range starting exactly where the
// other ends is adjacent, not overlapping: back-to-back stays on the same
// property never conflict.
//
// The third clause covers the case where the candidate fully contains the
// existing range.
func RangesOverlap(a, b, c, d time.Time) bool {
	// a >= c && a < d
	if !a.Before(c) && a.Before(d) {
		return true
	}
	// b > c && b <= d
	if b.After(c) && !b.After(d) {
		return true
	}
	// a <= c && b >= d
	if !a.After(c) && !b.Before(d) {
		return true
	}
	return false
}

// FindConflicts returns the bookings from the given set whose stay windows
// overlap the candidate range. Only bookings that block availability
// (pending, confirmed) are considered.
func FindConflicts(bookings []*Booking, checkIn, checkOut time.Time) []*Booking {
	conflicts := make([]*Booking, 0)
	for _, b := range bookings {
		if !b.BlocksAvailability() {
			continue
		}
		if b.Overlaps(checkIn, checkOut) {
			conflicts = append(conflicts, b)
		}
	}
	return conflicts
}
