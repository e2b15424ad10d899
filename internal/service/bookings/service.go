package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	bookingRepo "github.com/vovineb/my-queensy-app-sub001/internal/infra/storage/booking"
	"github.com/vovineb/my-queensy-app-sub001/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// GetPropertyBookings получает бронирования объекта размещения
// Используется дашбордом владельца: по умолчанию отдаются все статусы,
// опционально фильтруется по одному
func (s *Service) GetPropertyBookings(ctx context.Context, req *models.GetPropertyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPropertyBookings: fetching bookings for property=%d, status=%v", req.PropertyID, req.Status)

	var statuses []domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetPropertyBookings: invalid status=%s for property=%d", *req.Status, req.PropertyID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		statuses = []domain.BookingStatus{status}
	}

	bookings, err := s.bookingRepo.GetByPropertyID(ctx, req.PropertyID, statuses)
	if err != nil {
		s.logger.Error("GetPropertyBookings: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPropertyBookings: successfully fetched %d bookings for property=%d", len(bookings), req.PropertyID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// UpdateStatus обновляет статус бронирования через доменный переход
// Недопустимые переходы (из cancelled/completed, скачки через состояния)
// отклоняются единой точкой проверки в домене
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.UserID)

	booking, err := s.getOwnedBooking(ctx, bookingID, req.UserID, "UpdateStatus")
	if err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Проверяем легальность перехода; тот же момент времени уходит
	// в запись updated_at
	now := s.timeProvider.Now()
	if err := booking.UpdateStatus(newStatus, now); err != nil {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for booking id=%d",
			booking.Status, newStatus, bookingID)
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, booking.Status, newStatus)
	}

	// Сохраняем новый статус
	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found during update", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// UpdatePayment обновляет статус оплаты и атрибуты платежа
// Новые атрибуты объединяются с уже сохранёнными: ключи из запроса
// перезаписывают существующие, остальные сохраняются
func (s *Service) UpdatePayment(ctx context.Context, bookingID int64, req *models.UpdatePaymentRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdatePayment: updating booking id=%d to payment_status=%s by user=%d",
		bookingID, req.PaymentStatus, req.UserID)

	if req.PaymentStatus == "" {
		s.logger.Warn("UpdatePayment: empty payment status for booking id=%d", bookingID)
		return nil, fmt.Errorf("%w: payment status is required", ErrInvalidInput)
	}

	booking, err := s.getOwnedBooking(ctx, bookingID, req.UserID, "UpdatePayment")
	if err != nil {
		return nil, err
	}

	// Статусы оплаты приходят от платёжной платформы и набором не ограничены,
	// поэтому значение не валидируется по закрытому списку
	now := s.timeProvider.Now()
	booking.UpdatePaymentStatus(domain.PaymentStatus(req.PaymentStatus), req.PaymentData, now)

	if err := s.bookingRepo.UpdatePayment(ctx, bookingID, booking.PaymentStatus, booking.PaymentData, now); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdatePayment: booking id=%d not found during update", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdatePayment: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: UpdatePayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePayment: successfully updated booking id=%d to payment_status=%s",
		bookingID, booking.PaymentStatus)
	return models.FromDomainBooking(booking, now), nil
}

// Вспомогательные методы

// getOwnedBooking получает бронирование и проверяет, что оно принадлежит пользователю
func (s *Service) getOwnedBooking(ctx context.Context, bookingID, userID int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("%s: access denied for user=%d to booking id=%d", op, userID, bookingID)
		return nil, ErrAccessDenied
	}

	return booking, nil
}
