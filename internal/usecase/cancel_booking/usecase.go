package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	"github.com/vovineb/my-queensy-app-sub001/internal/infra/notifier"
	bookingRepo "github.com/vovineb/my-queensy-app-sub001/internal/infra/storage/booking"
)

// UseCase use case отмены бронирования
// Объединяет политику отмены (можно ли), тарифную сетку возврата (сколько)
// и переход статуса (единая точка проверки в домене)
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    NotificationPublisher
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	publisher NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет отмену бронирования
// Сумма возврата фиксируется в момент отмены: чтение статуса, расчёт возврата
// и запись выполняются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, user=%d", req.BookingID, req.UserID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var cancelled *domain.Booking
	var refund float64

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: repository error for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}

		// 2. Пользователь может отменить только своё бронирование
		if booking.UserID != req.UserID {
			uc.logger.Warn("CancelBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
			return ErrAccessDenied
		}

		// 3. Политика отмены: конечный статус или менее 24 часов до заезда - отказ
		if !booking.CanBeCancelled(now) {
			uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s, hours_to_check_in=%.2f",
				req.BookingID, booking.Status, booking.HoursUntilCheckIn(now))
			return ErrCannotCancel
		}

		// 4. Считаем возврат ДО перехода статуса: после отмены политика вернула бы 0
		refund = booking.CalculateRefund(now)

		// 5. Переход статуса через доменный guard
		if err := booking.Cancel(req.Reason, now); err != nil {
			uc.logger.Warn("CancelBooking: transition rejected for booking id=%d: %v", req.BookingID, err)
			return ErrCannotCancel
		}

		// 6. Сохраняем отмену тем же моментом времени, что и расчёт
		// возврата с доменной моделью
		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, req.Reason, now); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to persist cancellation for booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to persist cancellation: %v", ErrInternal, err)
		}

		cancelled = booking
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d, refund=%.2f", req.BookingID, refund)

	// Публикуем событие для сервиса уведомлений
	// Отмена уже закоммичена: ошибка публикации логируется и не меняет результат
	event := notifier.Event{
		Type:             notifier.EventBookingCancelled,
		BookingID:        cancelled.ID,
		BookingReference: cancelled.BookingReference,
		PropertyID:       cancelled.PropertyID,
		PropertyName:     cancelled.PropertyName,
		UserID:           cancelled.UserID,
		UserEmail:        cancelled.UserEmail,
		CheckIn:          cancelled.CheckIn.Format(domain.DateFormat),
		CheckOut:         cancelled.CheckOut.Format(domain.DateFormat),
		TotalCost:        cancelled.TotalCost,
		RefundAmount:     refund,
		OccurredAt:       now,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CancelBooking: failed to publish booking.cancelled for booking=%d: %v", cancelled.ID, err)
	}

	return &Response{
		BookingID:        cancelled.ID,
		BookingReference: cancelled.BookingReference,
		Status:           string(cancelled.Status),
		RefundAmount:     refund,
		TotalCost:        cancelled.TotalCost,
		CancelledAt:      now,
	}, nil
}
