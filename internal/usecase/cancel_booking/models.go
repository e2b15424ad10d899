package cancel_booking

import "time"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64  // ID бронирования
	UserID    int64  // ID аутентифицированного пользователя
	Reason    string // Причина отмены
}

// Response модель результата отмены
type Response struct {
	BookingID        int64     // ID бронирования
	BookingReference string    // Человекочитаемый номер
	Status           string    // Итоговый статус (cancelled)
	RefundAmount     float64   // Сумма возврата по тарифной сетке политики отмены
	TotalCost        float64   // Полная стоимость бронирования
	CancelledAt      time.Time // Момент отмены
}
