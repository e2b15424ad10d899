package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	"github.com/vovineb/my-queensy-app-sub001/pkg/dbmetrics"
	"github.com/vovineb/my-queensy-app-sub001/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"booking_reference",
	"property_id",
	"property_name",
	"property_location",
	"user_id",
	"user_email",
	"guest_name",
	"guest_phone",
	"check_in",
	"check_out",
	"nights",
	"guests",
	"price_per_night",
	"total_cost",
	"status",
	"payment_status",
	"payment_data",
	"special_requests",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Транзакция обязательна при создании с проверкой доступности дат:
// SELECT ... FOR UPDATE в GetByPropertyID и INSERT должны попасть в одну транзакцию,
// иначе возможна гонка двух параллельных бронирований на пересекающиеся даты.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	paymentData, err := json.Marshal(b.PaymentData)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - marshal payment data: %v", ErrEncodePayload, err)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_reference",
			"property_id",
			"property_name",
			"property_location",
			"user_id",
			"user_email",
			"guest_name",
			"guest_phone",
			"check_in",
			"check_out",
			"nights",
			"guests",
			"price_per_night",
			"total_cost",
			"status",
			"payment_status",
			"payment_data",
			"special_requests",
		).
		Values(
			b.BookingReference,
			b.PropertyID,
			b.PropertyName,
			b.PropertyLocation,
			b.UserID,
			b.UserEmail,
			b.GuestName,
			b.GuestPhone,
			b.CheckIn,
			b.CheckOut,
			b.Nights,
			b.Guests,
			b.PricePerNight,
			b.TotalCost,
			b.Status,
			b.PaymentStatus,
			paymentData,
			b.SpecialRequests,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// SetReference записывает человекочитаемый номер бронирования
// Вызывается сразу после Create, когда известен id
func (r *Repository) SetReference(ctx context.Context, id int64, reference string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_reference", reference).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetReference - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetReference - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetReference")
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу, сортировка от новых к старым
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("check_in DESC, id DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPropertyID получает бронирования объекта с опциональным фильтром по статусам
// Если вызов происходит внутри транзакции, строки блокируются через FOR UPDATE:
// так usecase создания бронирования исключает гонку check-then-act между
// проверкой доступности дат и вставкой нового бронирования
func (r *Repository) GetByPropertyID(ctx context.Context, propertyID int64, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("check_in ASC, id ASC")

	if len(statuses) > 0 {
		statusStrings := make([]string, len(statuses))
		for i, s := range statuses {
			statusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования
// Легальность перехода проверяется на уровне домена до вызова репозитория.
// Момент времени передаётся вызывающим: вся мутация фиксируется
// по одним часам, а не по часам базы
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// UpdatePayment записывает статус оплаты и объединённые атрибуты платежа
// Слияние paymentData выполняется доменной моделью, сюда приходит готовая карта
func (r *Repository) UpdatePayment(ctx context.Context, id int64, status domain.PaymentStatus, paymentData map[string]string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	encoded, err := json.Marshal(paymentData)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - marshal payment data: %v", ErrEncodePayload, err)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_status", status).
		Set("payment_data", encoded).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdatePayment")
}

// Cancel отменяет бронирование с указанием причины
// cancelled_at и updated_at пишутся из переданного момента: тот же момент
// попадает в доменную модель, расчёт возврата и публикуемое событие
func (r *Repository) Cancel(ctx context.Context, id int64, reason string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Cancel")
}

// checkAffected проверяет, что update затронул хотя бы одну строку
func checkAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// rowScanner абстракция над *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в доменную модель
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var paymentData []byte
	var createdAt, updatedAt, cancelledAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.BookingReference,
		&b.PropertyID,
		&b.PropertyName,
		&b.PropertyLocation,
		&b.UserID,
		&b.UserEmail,
		&b.GuestName,
		&b.GuestPhone,
		&b.CheckIn,
		&b.CheckOut,
		&b.Nights,
		&b.Guests,
		&b.PricePerNight,
		&b.TotalCost,
		&b.Status,
		&b.PaymentStatus,
		&paymentData,
		&b.SpecialRequests,
		&b.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(paymentData) > 0 {
		if err := json.Unmarshal(paymentData, &b.PaymentData); err != nil {
			return nil, fmt.Errorf("unmarshal payment data: %v", err)
		}
	}
	if b.PaymentData == nil {
		b.PaymentData = make(map[string]string)
	}

	if cancelledAt.Valid {
		t := cancelledAt.Time
		b.CancelledAt = &t
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
