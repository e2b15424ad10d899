package create_booking

import (
	"fmt"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
)

// validateRequest валидирует транспортные поля запроса
// Бизнес-проверки полей бронирования (даты, гости, стоимость) выполняет
// domain.Booking.Validate: там собирается полный список нарушений
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	// Проверяем, что даты не являются нулевыми
	if req.CheckIn.IsZero() {
		return fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}

	if req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkOut is required", ErrInvalidInput)
	}

	if req.SpecialRequests != nil && len(*req.SpecialRequests) > domain.MaxSpecialRequestsLength {
		return fmt.Errorf("%w: special requests too long", ErrInvalidInput)
	}

	return nil
}
