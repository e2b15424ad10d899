package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	"github.com/vovineb/my-queensy-app-sub001/internal/infra/notifier"
	"github.com/vovineb/my-queensy-app-sub001/internal/integrations/identityservice"
)

// ============================================================
// Фейки зависимостей
// ============================================================

type fakeRepo struct {
	existing   []*domain.Booking
	created    *domain.Booking
	reference  string
	createErr  error
	getErr     error
	nextID     int64
	refBooking int64
}

func (f *fakeRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *booking
	created.ID = f.nextID
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	f.created = &created
	return &created, nil
}

func (f *fakeRepo) SetReference(ctx context.Context, id int64, reference string) error {
	f.refBooking = id
	f.reference = reference
	return nil
}

func (f *fakeRepo) GetByPropertyID(ctx context.Context, propertyID int64, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.existing, nil
}

type fakeIdentity struct {
	user *identityservice.User
	err  error
}

func (f *fakeIdentity) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*identityservice.User, error) {
	return f.user, f.err
}

type fakePublisher struct {
	events []notifier.Event
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, event notifier.Event) error {
	f.events = append(f.events, event)
	return f.err
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

func validRequest() *Request {
	return &Request{
		UserID:        7,
		UserEmail:     "fallback@example.com",
		PropertyID:    42,
		PropertyName:  "Seaside Villa",
		GuestName:     "Anna Petrova",
		GuestPhone:    "+79991234567",
		CheckIn:       testNow.AddDate(0, 0, 10),
		CheckOut:      testNow.AddDate(0, 0, 12),
		Guests:        2,
		PricePerNight: 500,
		TotalCost:     1000,
	}
}

func newTestUseCase(repo *fakeRepo, identity *fakeIdentity, publisher *fakePublisher, tx *fakeTxManager) *UseCase {
	uc := NewUseCase(repo, identity, publisher, tx, noopLogger{})
	uc.timeProvider = fixedTime{now: testNow}
	return uc
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeRepo{nextID: 15}
	identity := &fakeIdentity{user: &identityservice.User{ID: 7, Email: "verified@example.com"}}
	publisher := &fakePublisher{}
	tx := &fakeTxManager{}

	uc := newTestUseCase(repo, identity, publisher, tx)

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(15), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 2, resp.Nights)

	// Email из IdentityService авторитетен
	assert.Equal(t, "verified@example.com", resp.UserEmail)

	// Номер присвоен внутри той же транзакции
	assert.Equal(t, int64(15), repo.refBooking)
	assert.Equal(t, resp.BookingReference, repo.reference)
	assert.Contains(t, resp.BookingReference, "QB-")

	// Проверка и вставка прошли в одной сериализуемой транзакции
	assert.Equal(t, 1, tx.calls)

	// Событие опубликовано
	require.Len(t, publisher.events, 1)
	assert.Equal(t, notifier.EventBookingCreated, publisher.events[0].Type)
	assert.Equal(t, int64(15), publisher.events[0].BookingID)
}

func TestExecute_IdentityDegradedFallsBackToRequestEmail(t *testing.T) {
	repo := &fakeRepo{nextID: 1}
	identity := &fakeIdentity{err: identityservice.ErrServiceDegraded}
	publisher := &fakePublisher{}

	uc := newTestUseCase(repo, identity, publisher, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "fallback@example.com", resp.UserEmail)
}

func TestExecute_UserNotFound(t *testing.T) {
	identity := &fakeIdentity{err: identityservice.ErrUserNotFound}

	uc := newTestUseCase(&fakeRepo{nextID: 1}, identity, &fakePublisher{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_ValidationCollectsAllViolations(t *testing.T) {
	identity := &fakeIdentity{user: &identityservice.User{ID: 7, Email: "verified@example.com"}}

	uc := newTestUseCase(&fakeRepo{nextID: 1}, identity, &fakePublisher{}, &fakeTxManager{})

	req := validRequest()
	req.GuestName = ""
	req.GuestPhone = ""
	req.TotalCost = 0

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrValidation)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Errors, 3)
	assert.Contains(t, validationErr.Errors, "Guest name is required")
	assert.Contains(t, validationErr.Errors, "Guest phone is required")
	assert.Contains(t, validationErr.Errors, "Total cost must be greater than zero")
}

// utcDay полночь указанного дня в UTC: именно такие значения драйвер
// возвращает при сканировании DATE-колонок
func utcDay(day int) time.Time {
	return time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestExecute_ConflictingDates(t *testing.T) {
	// Запрошенный диапазон: [2026-03-11, 2026-03-13)
	repo := &fakeRepo{
		nextID: 1,
		existing: []*domain.Booking{
			{ID: 3, Status: domain.StatusConfirmed, CheckIn: utcDay(10), CheckOut: utcDay(12)},
		},
	}
	identity := &fakeIdentity{user: &identityservice.User{ID: 7, Email: "verified@example.com"}}
	publisher := &fakePublisher{}

	uc := newTestUseCase(repo, identity, publisher, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.ErrorIs(t, err, ErrDatesNotAvailable)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, int64(3), conflictErr.Conflicts[0].ID)

	// При конфликте ничего не создаётся и событие не публикуется
	assert.Nil(t, repo.created)
	assert.Empty(t, publisher.events)
}

func TestExecute_AdjacentBookingIsNotConflict(t *testing.T) {
	// Существующее бронирование заканчивается ровно в день заезда
	repo := &fakeRepo{
		nextID: 1,
		existing: []*domain.Booking{
			{ID: 3, Status: domain.StatusConfirmed, CheckIn: utcDay(8), CheckOut: utcDay(11)},
		},
	}
	identity := &fakeIdentity{user: &identityservice.User{ID: 7, Email: "verified@example.com"}}

	uc := newTestUseCase(repo, identity, &fakePublisher{}, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &fakeRepo{
		nextID: 1,
		existing: []*domain.Booking{
			{ID: 3, Status: domain.StatusCancelled, CheckIn: utcDay(11), CheckOut: utcDay(13)},
		},
	}
	identity := &fakeIdentity{user: &identityservice.User{ID: 7, Email: "verified@example.com"}}

	uc := newTestUseCase(repo, identity, &fakePublisher{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
}

func TestExecute_PublishFailureDoesNotFailBooking(t *testing.T) {
	repo := &fakeRepo{nextID: 1}
	identity := &fakeIdentity{user: &identityservice.User{ID: 7, Email: "verified@example.com"}}
	publisher := &fakePublisher{err: errors.New("broker down")}

	uc := newTestUseCase(repo, identity, publisher, &fakeTxManager{})

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeRepo{nextID: 1}, &fakeIdentity{}, &fakePublisher{}, &fakeTxManager{})

	req := validRequest()
	req.PropertyID = 0

	_, err := uc.Execute(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidInput)
}
