package create_booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
)

var (
	// ErrValidation возвращается, когда данные бронирования не прошли проверки
	ErrValidation = errors.New("create_booking: validation failed")

	// ErrDatesNotAvailable возвращается, когда запрошенные даты пересекаются
	// с существующим активным бронированием объекта
	ErrDatesNotAvailable = errors.New("create_booking: dates are not available")

	// ErrUserNotFound возвращается, когда пользователь не найден в IdentityService
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// ValidationError несёт полный список нарушений проверок бронирования
// Список всегда полный: проверки не останавливаются на первой ошибке
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(e.Errors, "; "))
}

// Unwrap позволяет обрабатывать ошибку через errors.Is(err, ErrValidation)
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConflictError несёт список бронирований, пересекающихся с запрошенными датами
type ConflictError struct {
	Conflicts []*domain.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflicting bookings", ErrDatesNotAvailable, len(e.Conflicts))
}

// Unwrap позволяет обрабатывать ошибку через errors.Is(err, ErrDatesNotAvailable)
func (e *ConflictError) Unwrap() error {
	return ErrDatesNotAvailable
}
