package domain

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus represents the payment state of a booking.
// The set is open: payment providers may report states beyond the known constants,
// so values are stored as-is and never validated against a closed list.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Booking represents one reservation of a property for a guest over a date range
type Booking struct {
	ID               int64
	BookingReference string

	PropertyID       int64
	PropertyName     string
	PropertyLocation string

	UserID    int64
	UserEmail string

	GuestName  string
	GuestPhone string

	// Stay window, day granularity
	CheckIn  time.Time
	CheckOut time.Time
	Nights   int
	Guests   int

	PricePerNight float64
	TotalCost     float64

	Status        BookingStatus
	PaymentStatus PaymentStatus
	PaymentData   map[string]string

	SpecialRequests    *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking constructs a booking from a record, applying defaults.
// Defaulting is total: construction never fails. Missing status and payment
// status default to pending, missing timestamps default to now, payment data
// is always a non-nil map. Nights is derived from the stay window.
func NewBooking(rec Record, now time.Time) *Booking {
	b := &Booking{
		ID:               rec.ID,
		BookingReference: rec.BookingReference,
		PropertyID:       rec.PropertyID,
		PropertyName:     rec.PropertyName,
		PropertyLocation: rec.PropertyLocation,
		UserID:           rec.UserID,
		UserEmail:        rec.UserEmail,
		GuestName:        rec.GuestName,
		GuestPhone:       rec.GuestPhone,
		CheckIn:          parseDate(rec.CheckIn),
		CheckOut:         parseDate(rec.CheckOut),
		Guests:           rec.Guests,
		PricePerNight:    rec.PricePerNight,
		TotalCost:        rec.TotalCost,
		Status:           BookingStatus(rec.Status),
		PaymentStatus:    PaymentStatus(rec.PaymentStatus),
		PaymentData:      copyPaymentData(rec.PaymentData),
		SpecialRequests:  rec.SpecialRequests,
	}

	if b.Status == "" {
		b.Status = StatusPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = PaymentPending
	}

	if rec.CancellationReason != nil {
		reason := *rec.CancellationReason
		b.CancellationReason = &reason
	}
	if t := parseTimestamp(rec.CancelledAt); t != nil {
		b.CancelledAt = t
	}

	b.CreatedAt = parseTimestampOr(rec.CreatedAt, now)
	b.UpdatedAt = parseTimestampOr(rec.UpdatedAt, now)

	b.Nights = nightsBetween(b.CheckIn, b.CheckOut)

	return b
}

// Validate runs all booking checks and returns the accumulated result.
// Every check runs; the result is the union of all violations, not the first one.
// The function is pure: it reads only the entity's fields and the supplied clock.
func (b *Booking) Validate(now time.Time) ValidationResult {
	errs := make([]string, 0)

	if b.PropertyID <= 0 {
		errs = append(errs, "Property ID is required")
	}
	if strings.TrimSpace(b.PropertyName) == "" {
		errs = append(errs, "Property name is required")
	}
	if b.UserID <= 0 {
		errs = append(errs, "User ID is required")
	}
	if strings.TrimSpace(b.UserEmail) == "" {
		errs = append(errs, "User email is required")
	}
	if strings.TrimSpace(b.GuestName) == "" {
		errs = append(errs, "Guest name is required")
	}
	if strings.TrimSpace(b.GuestPhone) == "" {
		errs = append(errs, "Guest phone is required")
	}
	if b.CheckIn.IsZero() {
		errs = append(errs, "Check-in date is required")
	}
	if b.CheckOut.IsZero() {
		errs = append(errs, "Check-out date is required")
	}
	if b.Guests < MinGuests {
		errs = append(errs, "At least one guest is required")
	}
	if b.TotalCost <= 0 {
		errs = append(errs, "Total cost must be greater than zero")
	}
	if !b.CheckIn.IsZero() && b.CheckIn.Before(calendarDayUTC(now)) {
		errs = append(errs, "Check-in date cannot be in the past")
	}
	if !b.CheckIn.IsZero() && !b.CheckOut.IsZero() && !b.CheckOut.After(b.CheckIn) {
		errs = append(errs, "Check-out date must be after check-in date")
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// ValidationResult is the outcome of Validate: a recoverable, structured
// result rather than an error
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// UpdateStatus moves the booking to a new status through the central
// transition guard. Illegal transitions are rejected with ErrIllegalTransition.
func (b *Booking) UpdateStatus(newStatus BookingStatus, now time.Time) error {
	if !b.Status.CanTransitionTo(newStatus) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, b.Status, newStatus)
	}
	b.Status = newStatus
	b.UpdatedAt = now
	return nil
}

// UpdatePaymentStatus sets the payment status and merges extra attributes into
// the existing payment data. Keys present in extra override existing keys,
// keys absent from extra are preserved.
func (b *Booking) UpdatePaymentStatus(newStatus PaymentStatus, extra map[string]string, now time.Time) {
	b.PaymentStatus = newStatus
	if b.PaymentData == nil {
		b.PaymentData = make(map[string]string)
	}
	for k, v := range extra {
		b.PaymentData[k] = v
	}
	b.UpdatedAt = now
}

// Cancel moves the booking to cancelled, recording the reason and the
// cancellation time. The transition guard still applies: a completed or
// already cancelled booking cannot be cancelled again.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if err := b.UpdateStatus(StatusCancelled, now); err != nil {
		return err
	}
	b.CancellationReason = &reason
	cancelledAt := now
	b.CancelledAt = &cancelledAt
	return nil
}

// IsActive returns true if the booking is in a non-terminal state
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// BlocksAvailability returns true if the booking counts against the
// property's availability
func (b *Booking) BlocksAvailability() bool {
	for _, s := range ConflictStatuses {
		if b.Status == s {
			return true
		}
	}
	return false
}

// Overlaps reports whether the candidate half-open range [checkIn, checkOut)
// conflicts with this booking's stay window
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return RangesOverlap(checkIn, checkOut, b.CheckIn, b.CheckOut)
}

// GenerateReference builds the human-facing booking reference from the
// persisted id and the creation date
func GenerateReference(id int64, createdAt time.Time) string {
	return fmt.Sprintf("QB-%s-%04d", createdAt.Format("20060102"), id%10000)
}

func nightsBetween(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return 0
	}
	return int(calendarDayUTC(checkOut).Sub(calendarDayUTC(checkIn)).Hours() / 24)
}

// calendarDayUTC maps an instant to the UTC midnight of its calendar day
// as observed in the instant's own location. Stay-window dates live as UTC
// midnights, so comparisons against wall-clock "now" must go through this
// normalization.
func calendarDayUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func copyPaymentData(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
