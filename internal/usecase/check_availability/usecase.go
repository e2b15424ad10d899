package check_availability

import (
	"context"
	"fmt"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
)

// UseCase use case проверки доступности дат объекта размещения
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute проверяет, свободен ли диапазон [check_in, check_out) у объекта
// Учитываются только активные бронирования (pending, confirmed):
// отменённые и завершённые даты не блокируют.
// Результат информационный: атомарную проверку выполняет usecase создания
// бронирования внутри своей транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: property=%d, check_in=%s, check_out=%s",
		req.PropertyID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем активные бронирования объекта
	existing, err := uc.bookingRepo.GetByPropertyID(ctx, req.PropertyID, domain.ConflictStatuses)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get property bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get property bookings: %v", ErrInternal, err)
	}

	// 3. Ищем пересечения с запрошенным диапазоном
	conflicts := domain.FindConflicts(existing, req.CheckIn, req.CheckOut)

	uc.logger.Info("CheckAvailability: property=%d available=%t conflicts=%d",
		req.PropertyID, len(conflicts) == 0, len(conflicts))

	return &Response{
		PropertyID:  req.PropertyID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Available:   len(conflicts) == 0,
		Conflicting: conflicts,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: propertyID must be positive", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() {
		return fmt.Errorf("%w: checkIn is required", ErrInvalidInput)
	}

	if req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkOut is required", ErrInvalidInput)
	}

	if !req.CheckOut.After(req.CheckIn) {
		return ErrInvalidDateRange
	}

	return nil
}
