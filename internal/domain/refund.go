package domain

import "time"

// HoursUntilCheckIn returns the continuous (fractional) number of hours
// between now and the check-in instant
func (b *Booking) HoursUntilCheckIn(now time.Time) float64 {
	return b.CheckIn.Sub(now).Hours()
}

// CanBeCancelled reports whether the booking may still be cancelled:
// the status must not be terminal and more than CancellationNoticeHours
// must remain before check-in
func (b *Booking) CanBeCancelled(now time.Time) bool {
	if b.Status == StatusCancelled || b.Status == StatusCompleted {
		return false
	}
	return b.HoursUntilCheckIn(now) > CancellationNoticeHours
}

// CalculateRefund returns the refund amount for cancelling at the given time.
// Tiers, with inclusive lower bounds:
//
//	h >= 48        -> 100% of the total cost
//	24 <= h < 48   -> 50%
//	h < 24         -> 0
//
// A booking that cannot be cancelled refunds nothing. The h < 24 branch is
// unreachable through the CanBeCancelled gate but kept for boundary clarity.
func (b *Booking) CalculateRefund(now time.Time) float64 {
	if !b.CanBeCancelled(now) {
		return 0
	}

	h := b.HoursUntilCheckIn(now)
	switch {
	case h >= FullRefundMinHours:
		return b.TotalCost
	case h >= HalfRefundMinHours:
		return b.TotalCost * HalfRefundFraction
	default:
		return 0
	}
}
