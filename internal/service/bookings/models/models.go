package models

import (
	"errors"
	"time"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetPropertyBookingsRequest запрос на получение бронирований объекта
type GetPropertyBookingsRequest struct {
	PropertyID int64   `json:"propertyId"`
	Status     *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// UpdatePaymentRequest запрос на обновление статуса оплаты
// PaymentData объединяется с уже сохранёнными атрибутами платежа
type UpdatePaymentRequest struct {
	UserID        int64             `json:"userId"`
	PaymentStatus string            `json:"paymentStatus"`
	PaymentData   map[string]string `json:"paymentData,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64  `json:"id"`
	BookingReference string `json:"bookingReference,omitempty"`
	PropertyID       int64  `json:"propertyId"`
	PropertyName     string `json:"propertyName"`
	PropertyLocation string `json:"propertyLocation,omitempty"`
	UserID           int64  `json:"userId"`
	UserEmail        string `json:"userEmail"`
	GuestName        string `json:"guestName"`
	GuestPhone       string `json:"guestPhone"`

	CheckIn  string `json:"checkIn"`  // "2025-10-15"
	CheckOut string `json:"checkOut"` // "2025-10-17"
	Nights   int    `json:"nights"`
	Guests   int    `json:"guests"`

	PricePerNight float64 `json:"pricePerNight"`
	TotalCost     float64 `json:"totalCost"`

	Status        string            `json:"status"`
	PaymentStatus string            `json:"paymentStatus"`
	PaymentData   map[string]string `json:"paymentData"`

	SpecialRequests    *string `json:"specialRequests,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	// Вычисляются на момент чтения по политике отмены
	CanBeCancelled bool    `json:"canBeCancelled"`
	RefundAmount   float64 `json:"refundAmount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Поля политики отмены вычисляются на переданный момент времени
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		BookingReference: b.BookingReference,
		PropertyID:       b.PropertyID,
		PropertyName:     b.PropertyName,
		PropertyLocation: b.PropertyLocation,
		UserID:           b.UserID,
		UserEmail:        b.UserEmail,
		GuestName:        b.GuestName,
		GuestPhone:       b.GuestPhone,
		CheckIn:          b.CheckIn.Format(domain.DateFormat),
		CheckOut:         b.CheckOut.Format(domain.DateFormat),
		Nights:           b.Nights,
		Guests:           b.Guests,
		PricePerNight:    b.PricePerNight,
		TotalCost:        b.TotalCost,
		Status:           string(b.Status),
		PaymentStatus:    string(b.PaymentStatus),
		PaymentData:      b.PaymentData,
		SpecialRequests:  b.SpecialRequests,

		CancellationReason: b.CancellationReason,

		CanBeCancelled: b.CanBeCancelled(now),
		RefundAmount:   b.CalculateRefund(now),

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
