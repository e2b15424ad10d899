package create_booking

import (
	"context"
	"time"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	"github.com/vovineb/my-queensy-app-sub001/internal/infra/notifier"
	"github.com/vovineb/my-queensy-app-sub001/internal/integrations/identityservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetReference(ctx context.Context, id int64, reference string) error
	GetByPropertyID(ctx context.Context, propertyID int64, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// IdentityServiceClient интерфейс клиента для IdentityService
type IdentityServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*identityservice.User, error)
}

// NotificationPublisher интерфейс издателя событий для сервиса уведомлений
type NotificationPublisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
