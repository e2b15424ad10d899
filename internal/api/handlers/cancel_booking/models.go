package cancel_booking

import (
	"time"

	cancelBooking "github.com/vovineb/my-queensy-app-sub001/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
// RefundAmount рассчитывается по тарифной сетке политики отмены
// на момент отмены
type CancelBookingResponse struct {
	BookingID        int64   `json:"bookingId"`
	BookingReference string  `json:"bookingReference"`
	Status           string  `json:"status"`
	RefundAmount     float64 `json:"refundAmount"`
	TotalCost        float64 `json:"totalCost"`
	CancelledAt      string  `json:"cancelledAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:        resp.BookingID,
		BookingReference: resp.BookingReference,
		Status:           resp.Status,
		RefundAmount:     resp.RefundAmount,
		TotalCost:        resp.TotalCost,
		CancelledAt:      resp.CancelledAt.Format(time.RFC3339),
	}
}
