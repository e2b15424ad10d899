package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	"github.com/vovineb/my-queensy-app-sub001/internal/infra/notifier"
	identityClient "github.com/vovineb/my-queensy-app-sub001/internal/integrations/identityservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	identityClient IdentityServiceClient
	publisher      NotificationPublisher
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	identityClient IdentityServiceClient,
	publisher NotificationPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		identityClient: identityClient,
		publisher:      publisher,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности дат и вставка выполняются в одной сериализуемой
// транзакции с блокировкой строк: два параллельных запроса на пересекающиеся
// даты не могут оба пройти проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, property=%d, check_in=%s, check_out=%s, guests=%d",
		req.UserID, req.PropertyID, req.CheckIn.Format(domain.DateFormat), req.CheckOut.Format(domain.DateFormat), req.Guests)

	// 1. Базовая валидация запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: request validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Подтверждаем пользователя через IdentityService
	// При недоступности сервиса продолжаем с контактными данными из запроса
	userEmail := req.UserEmail
	user, err := uc.identityClient.GetUserWithGracefulDegradation(ctx, req.UserID)
	switch {
	case err == nil:
		// Email из IdentityService авторитетен
		if user.Email != "" {
			userEmail = user.Email
		}
	case errors.Is(err, identityClient.ErrUserNotFound):
		uc.logger.Warn("CreateBooking: user id=%d not found", req.UserID)
		return nil, ErrUserNotFound
	case errors.Is(err, identityClient.ErrServiceDegraded):
		uc.logger.Warn("CreateBooking: identity degraded, using request contact data for user=%d", req.UserID)
	default:
		uc.logger.Error("CreateBooking: identity error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to resolve user: %v", ErrInternal, err)
	}

	// 4. Конструируем бронирование с дефолтами
	booking := domain.NewBooking(domain.Record{
		PropertyID:       req.PropertyID,
		PropertyName:     req.PropertyName,
		PropertyLocation: req.PropertyLocation,
		UserID:           req.UserID,
		UserEmail:        userEmail,
		GuestName:        req.GuestName,
		GuestPhone:       req.GuestPhone,
		CheckIn:          req.CheckIn.Format(domain.DateFormat),
		CheckOut:         req.CheckOut.Format(domain.DateFormat),
		Guests:           req.Guests,
		PricePerNight:    req.PricePerNight,
		TotalCost:        req.TotalCost,
		SpecialRequests:  req.SpecialRequests,
	}, now)

	// 5. Полная доменная валидация: собираются ВСЕ нарушения, не только первое
	if result := booking.Validate(now); !result.Valid {
		uc.logger.Warn("CreateBooking: booking validation failed for user=%d: %v", req.UserID, result.Errors)
		return nil, &ValidationError{Errors: result.Errors}
	}

	// Переменная для хранения результата
	var created *domain.Booking

	// 6. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем активные бронирования объекта с блокировкой (FOR UPDATE)
		// Отменённые и завершённые бронирования даты не блокируют
		existing, err := uc.bookingRepo.GetByPropertyID(txCtx, req.PropertyID, domain.ConflictStatuses)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get property bookings: %v", err)
			return fmt.Errorf("%w: failed to get property bookings: %v", ErrInternal, err)
		}

		// 6.2. Ищем пересечения с запрошенным диапазоном [check_in, check_out)
		conflicts := domain.FindConflicts(existing, booking.CheckIn, booking.CheckOut)
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateBooking: %d conflicting bookings for property=%d, range %s - %s",
				len(conflicts), req.PropertyID,
				booking.CheckIn.Format(domain.DateFormat), booking.CheckOut.Format(domain.DateFormat))
			return &ConflictError{Conflicts: conflicts}
		}

		// 6.3. Сохраняем бронирование
		result, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.4. Присваиваем человекочитаемый номер, когда известен id
		reference := domain.GenerateReference(result.ID, result.CreatedAt)
		if err := uc.bookingRepo.SetReference(txCtx, result.ID, reference); err != nil {
			uc.logger.Error("CreateBooking: failed to set reference for booking=%d: %v", result.ID, err)
			return fmt.Errorf("%w: failed to set booking reference: %v", ErrInternal, err)
		}
		result.BookingReference = reference

		created = result
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d ref=%s", created.ID, created.BookingReference)

	// 7. Публикуем событие для сервиса уведомлений
	// Бронирование уже закоммичено: ошибка публикации логируется и не откатывает результат
	event := notifier.Event{
		Type:             notifier.EventBookingCreated,
		BookingID:        created.ID,
		BookingReference: created.BookingReference,
		PropertyID:       created.PropertyID,
		PropertyName:     created.PropertyName,
		UserID:           created.UserID,
		UserEmail:        created.UserEmail,
		CheckIn:          created.CheckIn.Format(domain.DateFormat),
		CheckOut:         created.CheckOut.Format(domain.DateFormat),
		TotalCost:        created.TotalCost,
		OccurredAt:       now,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateBooking: failed to publish booking.created for booking=%d: %v", created.ID, err)
	}

	// Конвертируем в response
	return &Response{
		ID:               created.ID,
		BookingReference: created.BookingReference,
		PropertyID:       created.PropertyID,
		PropertyName:     created.PropertyName,
		PropertyLocation: created.PropertyLocation,
		UserID:           created.UserID,
		UserEmail:        created.UserEmail,
		GuestName:        created.GuestName,
		GuestPhone:       created.GuestPhone,
		CheckIn:          created.CheckIn,
		CheckOut:         created.CheckOut,
		Nights:           created.Nights,
		Guests:           created.Guests,
		PricePerNight:    created.PricePerNight,
		TotalCost:        created.TotalCost,
		Status:           string(created.Status),
		PaymentStatus:    string(created.PaymentStatus),
		SpecialRequests:  created.SpecialRequests,
		CreatedAt:        created.CreatedAt,
		UpdatedAt:        created.UpdatedAt,
	}, nil
}
