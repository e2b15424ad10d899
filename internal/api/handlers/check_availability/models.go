package check_availability

import (
	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	checkAvailability "github.com/vovineb/my-queensy-app-sub001/internal/usecase/check_availability"
)

// ConflictingRange занятый диапазон дат в ответе
// Эндпоинт публичный: наружу отдаются только даты и статус,
// без данных гостя и стоимости
type ConflictingRange struct {
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Status   string `json:"status"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PropertyID          int64              `json:"propertyId"`
	CheckIn             string             `json:"checkIn"`
	CheckOut            string             `json:"checkOut"`
	Available           bool               `json:"available"`
	ConflictingBookings []ConflictingRange `json:"conflictingBookings"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		PropertyID:          resp.PropertyID,
		CheckIn:             resp.CheckIn.Format(domain.DateFormat),
		CheckOut:            resp.CheckOut.Format(domain.DateFormat),
		Available:           resp.Available,
		ConflictingBookings: make([]ConflictingRange, len(resp.Conflicting)),
	}

	for i, b := range resp.Conflicting {
		out.ConflictingBookings[i] = ConflictingRange{
			CheckIn:  b.CheckIn.Format(domain.DateFormat),
			CheckOut: b.CheckOut.Format(domain.DateFormat),
			Status:   string(b.Status),
		}
	}

	return out
}
