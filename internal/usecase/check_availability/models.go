package check_availability

import (
	"time"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
)

// Request модель запроса проверки доступности дат
type Request struct {
	PropertyID int64     // ID объекта размещения
	CheckIn    time.Time // Дата заезда
	CheckOut   time.Time // Дата выезда
}

// Response результат проверки доступности
// Conflicting содержит только бронирования, реально пересекающиеся
// с запрошенным диапазоном
type Response struct {
	PropertyID  int64             // ID объекта
	CheckIn     time.Time         // Запрошенная дата заезда
	CheckOut    time.Time         // Запрошенная дата выезда
	Available   bool              // true, если пересечений нет
	Conflicting []*domain.Booking // Пересекающиеся активные бронирования
}
