package create_booking

import (
	"time"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	createBooking "github.com/vovineb/my-queensy-app-sub001/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PropertyID       int64   `json:"propertyId"`
	PropertyName     string  `json:"propertyName"`
	PropertyLocation string  `json:"propertyLocation,omitempty"`
	UserEmail        string  `json:"userEmail,omitempty"`
	GuestName        string  `json:"guestName"`
	GuestPhone       string  `json:"guestPhone"`
	CheckIn          string  `json:"checkIn"`  // "2025-10-15"
	CheckOut         string  `json:"checkOut"` // "2025-10-17"
	Guests           int     `json:"guests"`
	PricePerNight    float64 `json:"pricePerNight"`
	TotalCost        float64 `json:"totalCost"`
	SpecialRequests  *string `json:"specialRequests,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID               int64   `json:"id"`
	BookingReference string  `json:"bookingReference"`
	PropertyID       int64   `json:"propertyId"`
	PropertyName     string  `json:"propertyName"`
	PropertyLocation string  `json:"propertyLocation,omitempty"`
	UserID           int64   `json:"userId"`
	UserEmail        string  `json:"userEmail"`
	GuestName        string  `json:"guestName"`
	GuestPhone       string  `json:"guestPhone"`
	CheckIn          string  `json:"checkIn"`
	CheckOut         string  `json:"checkOut"`
	Nights           int     `json:"nights"`
	Guests           int     `json:"guests"`
	PricePerNight    float64 `json:"pricePerNight"`
	TotalCost        float64 `json:"totalCost"`
	Status           string  `json:"status"`
	PaymentStatus    string  `json:"paymentStatus"`
	SpecialRequests  *string `json:"specialRequests,omitempty"`
	CreatedAt        string  `json:"createdAt"`
	UpdatedAt        string  `json:"updatedAt"`
}

// ValidationErrorResponse тело ответа 400 с полным списком нарушений
type ValidationErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

// ConflictingBooking пересекающееся бронирование в ответе 409
// Наружу отдаются только даты и статус, без данных гостя
type ConflictingBooking struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Status   string `json:"status"`
}

// ConflictResponse тело ответа 409 при недоступных датах
type ConflictResponse struct {
	Error               string               `json:"error"`
	ConflictingBookings []ConflictingBooking `json:"conflictingBookings"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	checkIn, err := time.Parse(domain.DateFormat, r.CheckIn)
	if err != nil {
		return nil, err
	}

	checkOut, err := time.Parse(domain.DateFormat, r.CheckOut)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:           userID,
		UserEmail:        r.UserEmail,
		PropertyID:       r.PropertyID,
		PropertyName:     r.PropertyName,
		PropertyLocation: r.PropertyLocation,
		GuestName:        r.GuestName,
		GuestPhone:       r.GuestPhone,
		CheckIn:          checkIn,
		CheckOut:         checkOut,
		Guests:           r.Guests,
		PricePerNight:    r.PricePerNight,
		TotalCost:        r.TotalCost,
		SpecialRequests:  r.SpecialRequests,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:               resp.ID,
		BookingReference: resp.BookingReference,
		PropertyID:       resp.PropertyID,
		PropertyName:     resp.PropertyName,
		PropertyLocation: resp.PropertyLocation,
		UserID:           resp.UserID,
		UserEmail:        resp.UserEmail,
		GuestName:        resp.GuestName,
		GuestPhone:       resp.GuestPhone,
		CheckIn:          resp.CheckIn.Format(domain.DateFormat),
		CheckOut:         resp.CheckOut.Format(domain.DateFormat),
		Nights:           resp.Nights,
		Guests:           resp.Guests,
		PricePerNight:    resp.PricePerNight,
		TotalCost:        resp.TotalCost,
		Status:           resp.Status,
		PaymentStatus:    resp.PaymentStatus,
		SpecialRequests:  resp.SpecialRequests,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}

// FromConflicts формирует тело ответа 409 из пересекающихся бронирований
func FromConflicts(message string, conflicts []*domain.Booking) *ConflictResponse {
	resp := &ConflictResponse{
		Error:               message,
		ConflictingBookings: make([]ConflictingBooking, len(conflicts)),
	}

	for i, b := range conflicts {
		resp.ConflictingBookings[i] = ConflictingBooking{
			CheckIn:  b.CheckIn.Format(domain.DateFormat),
			CheckOut: b.CheckOut.Format(domain.DateFormat),
			Status:   string(b.Status),
		}
	}

	return resp
}
