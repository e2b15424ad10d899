package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
)

type fakeRepo struct {
	existing []*domain.Booking
	err      error
	statuses []domain.BookingStatus
}

func (f *fakeRepo) GetByPropertyID(ctx context.Context, propertyID int64, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	f.statuses = statuses
	if f.err != nil {
		return nil, f.err
	}
	return f.existing, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2026, 6, d, 0, 0, 0, 0, time.UTC)
}

func TestExecute_Available(t *testing.T) {
	repo := &fakeRepo{
		existing: []*domain.Booking{
			{ID: 1, Status: domain.StatusConfirmed, CheckIn: day(1), CheckOut: day(5)},
		},
	}

	uc := NewUseCase(repo, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{PropertyID: 42, CheckIn: day(5), CheckOut: day(8)})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Conflicting)

	// Запрашиваются только статусы, блокирующие даты
	assert.Equal(t, domain.ConflictStatuses, repo.statuses)
}

func TestExecute_Conflicts(t *testing.T) {
	repo := &fakeRepo{
		existing: []*domain.Booking{
			{ID: 1, Status: domain.StatusConfirmed, CheckIn: day(1), CheckOut: day(5)},
			{ID: 2, Status: domain.StatusPending, CheckIn: day(7), CheckOut: day(9)},
		},
	}

	uc := NewUseCase(repo, noopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{PropertyID: 42, CheckIn: day(4), CheckOut: day(8)})

	require.NoError(t, err)
	assert.False(t, resp.Available)
	require.Len(t, resp.Conflicting, 2)
}

func TestExecute_InvalidDateRange(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 42, CheckIn: day(8), CheckOut: day(5)})

	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = uc.Execute(context.Background(), &Request{PropertyID: 42, CheckIn: day(5), CheckOut: day(5)})

	require.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_InvalidPropertyID(t *testing.T) {
	uc := NewUseCase(&fakeRepo{}, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 0, CheckIn: day(5), CheckOut: day(8)})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RepositoryError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection reset")}

	uc := NewUseCase(repo, noopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PropertyID: 42, CheckIn: day(5), CheckOut: day(8)})

	require.ErrorIs(t, err, ErrInternal)
}
