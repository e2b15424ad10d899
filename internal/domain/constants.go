package domain

// Refund policy thresholds (hours before check-in)
const (
	// FullRefundMinHours минимальное количество часов до заезда для возврата 100%
	FullRefundMinHours = 48.0

	// HalfRefundMinHours минимальное количество часов до заезда для возврата 50%
	HalfRefundMinHours = 24.0

	// HalfRefundFraction доля возврата во втором тарифе
	HalfRefundFraction = 0.5

	// CancellationNoticeHours минимальный запас времени до заезда, при котором отмена ещё возможна
	CancellationNoticeHours = 24.0
)

// Business validation constants
const (
	MinGuests                   = 1
	MaxCancellationReasonLength = 500
	MaxSpecialRequestsLength    = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ConflictStatuses список статусов, блокирующих даты при проверке доступности
// Отменённые и завершённые бронирования даты не блокируют
var ConflictStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses список конечных статусов, из которых переходы запрещены
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}
