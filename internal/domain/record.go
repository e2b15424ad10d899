package domain

import "time"

// Record is the flat, serialization-facing form of a booking.
// Dates are YYYY-MM-DD strings, timestamps are ISO-8601 (RFC 3339) strings,
// matching what the persistence collaborator exchanges.
type Record struct {
	ID               int64             `json:"id"`
	BookingReference string            `json:"bookingReference,omitempty"`
	PropertyID       int64             `json:"propertyId"`
	PropertyName     string            `json:"propertyName"`
	PropertyLocation string            `json:"propertyLocation,omitempty"`
	UserID           int64             `json:"userId"`
	UserEmail        string            `json:"userEmail"`
	GuestName        string            `json:"guestName"`
	GuestPhone       string            `json:"guestPhone"`
	CheckIn          string            `json:"checkIn"`
	CheckOut         string            `json:"checkOut"`
	Nights           int               `json:"nights"`
	Guests           int               `json:"guests"`
	PricePerNight    float64           `json:"pricePerNight"`
	TotalCost        float64           `json:"totalCost"`
	Status           string            `json:"status"`
	PaymentStatus    string            `json:"paymentStatus"`
	PaymentData      map[string]string `json:"paymentData"`
	SpecialRequests  *string           `json:"specialRequests,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToRecord converts the booking to its serialization form.
// Every field flows through: NewBooking(b.ToRecord(), now) reproduces b.
func (b *Booking) ToRecord() Record {
	rec := Record{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		PropertyID:       b.PropertyID,
		PropertyName:     b.PropertyName,
		PropertyLocation: b.PropertyLocation,
		UserID:           b.UserID,
		UserEmail:        b.UserEmail,
		GuestName:        b.GuestName,
		GuestPhone:       b.GuestPhone,
		CheckIn:          formatDate(b.CheckIn),
		CheckOut:         formatDate(b.CheckOut),
		Nights:           b.Nights,
		Guests:           b.Guests,
		PricePerNight:    b.PricePerNight,
		TotalCost:        b.TotalCost,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentData:      copyPaymentData(b.PaymentData),
		SpecialRequests:  b.SpecialRequests,
		CreatedAt:        b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        b.UpdatedAt.Format(time.RFC3339),
	}

	if b.CancellationReason != nil {
		reason := *b.CancellationReason
		rec.CancellationReason = &reason
	}
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		rec.CancelledAt = &cancelled
	}

	return rec
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// parseDate parses a YYYY-MM-DD string into a UTC midnight, the same instant
// the database driver yields when scanning a DATE column. Unparseable input
// yields the zero time, which the validation checks then report as a missing
// date.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseTimestamp(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}

func parseTimestampOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fallback
	}
	return t
}
