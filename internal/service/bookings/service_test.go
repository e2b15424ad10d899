package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	bookingRepo "github.com/vovineb/my-queensy-app-sub001/internal/infra/storage/booking"
	"github.com/vovineb/my-queensy-app-sub001/internal/service/bookings/models"
	"github.com/vovineb/my-queensy-app-sub001/pkg/ptr"
)

// ============================================================
// Фейки зависимостей
// ============================================================

type fakeRepo struct {
	byID        map[int64]*domain.Booking
	byUser      []*domain.Booking
	byProperty  []*domain.Booking
	userStatus  *domain.BookingStatus
	propStatus  []domain.BookingStatus
	savedStatus domain.BookingStatus
	savedPay    domain.PaymentStatus
	savedData   map[string]string
	savedAt     time.Time
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.userStatus = status
	return f.byUser, nil
}

func (f *fakeRepo) GetByPropertyID(ctx context.Context, propertyID int64, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	f.propStatus = statuses
	return f.byProperty, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, now time.Time) error {
	f.savedStatus = status
	f.savedAt = now
	return nil
}

func (f *fakeRepo) UpdatePayment(ctx context.Context, id int64, status domain.PaymentStatus, paymentData map[string]string, now time.Time) error {
	f.savedPay = status
	f.savedData = paymentData
	f.savedAt = now
	return nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

// ============================================================
// Тесты
// ============================================================

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          15,
		PropertyID:  42,
		UserID:      7,
		CheckIn:     testNow.AddDate(0, 0, 10),
		CheckOut:    testNow.AddDate(0, 0, 12),
		TotalCost:   1000,
		Status:      domain.StatusPending,
		PaymentData: map[string]string{"a": "1", "b": "2"},
	}
}

func newTestService(repo *fakeRepo) *Service {
	svc := NewService(repo, noopLogger{})
	svc.timeProvider = fixedTime{now: testNow}
	return svc
}

func TestGetByID_Success(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: testBooking()}}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 15, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.ID)

	// Поля политики отмены вычислены на момент чтения: до заезда 240 часов
	assert.True(t, resp.CanBeCancelled)
	assert.Equal(t, 1000.0, resp.RefundAmount)
}

func TestGetByID_RefundFieldsNearCheckIn(t *testing.T) {
	b := testBooking()
	b.CheckIn = testNow.Add(30 * time.Hour)
	b.CheckOut = b.CheckIn.AddDate(0, 0, 2)

	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: b}}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 15, 7)

	require.NoError(t, err)
	assert.True(t, resp.CanBeCancelled)
	assert.Equal(t, 500.0, resp.RefundAmount)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeRepo{byID: map[int64]*domain.Booking{}})

	_, err := svc.GetByID(context.Background(), 404, 7)

	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_AccessDenied(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: testBooking()}}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 15, 999)

	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := &fakeRepo{byUser: []*domain.Booking{testBooking()}}
	svc := newTestService(repo)

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.userStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.userStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeRepo{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("archived"),
	})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetPropertyBookings_NoFilterFetchesAllStatuses(t *testing.T) {
	repo := &fakeRepo{byProperty: []*domain.Booking{testBooking()}}
	svc := newTestService(repo)

	resp, err := svc.GetPropertyBookings(context.Background(), &models.GetPropertyBookingsRequest{PropertyID: 42})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Nil(t, repo.propStatus)
}

func TestUpdateStatus_Success(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: testBooking()}}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 15, &models.UpdateStatusRequest{UserID: 7, Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.savedStatus)
	// updated_at пишется теми же часами, что доменный переход
	assert.Equal(t, testNow, repo.savedAt)
}

func TestUpdateStatus_IllegalTransition(t *testing.T) {
	b := testBooking()
	b.Status = domain.StatusCompleted

	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: b}}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 15, &models.UpdateStatusRequest{UserID: 7, Status: "cancelled"})

	require.ErrorIs(t, err, ErrIllegalTransition)
	assert.Empty(t, repo.savedStatus, "repository must not be touched after rejected transition")
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: testBooking()}}
	svc := newTestService(repo)

	err := svc.UpdateStatus(context.Background(), 15, &models.UpdateStatusRequest{UserID: 7, Status: "archived"})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePayment_MergesData(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: testBooking()}}
	svc := newTestService(repo)

	resp, err := svc.UpdatePayment(context.Background(), 15, &models.UpdatePaymentRequest{
		UserID:        7,
		PaymentStatus: "paid",
		PaymentData:   map[string]string{"b": "3", "c": "4"},
	})

	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4"}, repo.savedData)
	assert.Equal(t, testNow, repo.savedAt)
}

func TestUpdatePayment_OpenStatusSet(t *testing.T) {
	repo := &fakeRepo{byID: map[int64]*domain.Booking{15: testBooking()}}
	svc := newTestService(repo)

	// Статус оплаты не ограничен закрытым списком
	resp, err := svc.UpdatePayment(context.Background(), 15, &models.UpdatePaymentRequest{
		UserID:        7,
		PaymentStatus: "partially_refunded",
	})

	require.NoError(t, err)
	assert.Equal(t, "partially_refunded", resp.PaymentStatus)
	assert.Equal(t, domain.PaymentStatus("partially_refunded"), repo.savedPay)
}

func TestUpdatePayment_EmptyStatusRejected(t *testing.T) {
	svc := newTestService(&fakeRepo{byID: map[int64]*domain.Booking{15: testBooking()}})

	_, err := svc.UpdatePayment(context.Background(), 15, &models.UpdatePaymentRequest{UserID: 7})

	require.ErrorIs(t, err, ErrInvalidInput)
}
