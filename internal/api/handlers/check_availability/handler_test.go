package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	checkAvailability "github.com/vovineb/my-queensy-app-sub001/internal/usecase/check_availability"
)

type fakeUseCase struct {
	resp *checkAvailability.Response
	err  error
	req  *checkAvailability.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newTestRouter(uc CheckAvailabilityUseCase) *mux.Router {
	r := mux.NewRouter()
	h := NewHandler(uc, noopLogger{})
	r.HandleFunc("/api/v1/properties/{propertyId}/availability", h.Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_Available(t *testing.T) {
	checkIn := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

	uc := &fakeUseCase{resp: &checkAvailability.Response{
		PropertyID: 42,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Available:  true,
	}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/properties/42/availability?checkIn=2026-06-05&checkOut=2026-06-08", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Available)
	assert.Equal(t, int64(42), body.PropertyID)
	assert.Empty(t, body.ConflictingBookings)

	require.NotNil(t, uc.req)
	assert.Equal(t, int64(42), uc.req.PropertyID)
}

func TestHandle_ConflictsExposeOnlyDatesAndStatus(t *testing.T) {
	checkIn := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC)

	uc := &fakeUseCase{resp: &checkAvailability.Response{
		PropertyID: 42,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Available:  false,
		Conflicting: []*domain.Booking{
			{
				ID:        3,
				Status:    domain.StatusConfirmed,
				CheckIn:   time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC),
				CheckOut:  time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC),
				GuestName: "Anna Petrova",
			},
		},
	}}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/properties/42/availability?checkIn=2026-06-05&checkOut=2026-06-08", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Available)
	require.Len(t, body.ConflictingBookings, 1)
	assert.Equal(t, "2026-06-04", body.ConflictingBookings[0].CheckIn)
	assert.Equal(t, "confirmed", body.ConflictingBookings[0].Status)

	// Имя гостя наружу не уходит
	assert.NotContains(t, rec.Body.String(), "Anna Petrova")
}

func TestHandle_MissingDates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/properties/42/availability", nil)
	rec := httptest.NewRecorder()

	newTestRouter(&fakeUseCase{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidDateRange(t *testing.T) {
	uc := &fakeUseCase{err: checkAvailability.ErrInvalidDateRange}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/properties/42/availability?checkIn=2026-06-08&checkOut=2026-06-05", nil)
	rec := httptest.NewRecorder()

	newTestRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InvalidPropertyID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/properties/abc/availability?checkIn=2026-06-05&checkOut=2026-06-08", nil)
	rec := httptest.NewRecorder()

	newTestRouter(&fakeUseCase{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
