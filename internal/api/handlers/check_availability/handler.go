package check_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/vovineb/my-queensy-app-sub001/internal/api/handlers"
	"github.com/vovineb/my-queensy-app-sub001/internal/domain"
	checkAvailability "github.com/vovineb/my-queensy-app-sub001/internal/usecase/check_availability"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgMissingDates      = "параметры checkIn и checkOut обязательны"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDateRange  = "дата выезда должна быть позже даты заезда"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/availability
// Query params: checkIn, checkOut (обязательные, формат YYYY-MM-DD)
// Эндпоинт публичный, аутентификация не требуется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем propertyId из URL
	vars := mux.Vars(r)
	propertyIDStr := vars["propertyId"]

	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	checkInStr := r.URL.Query().Get("checkIn")
	checkOutStr := r.URL.Query().Get("checkOut")
	if checkInStr == "" || checkOutStr == "" {
		h.logger.Warn("GET /properties/{id}/availability - Missing dates: property_id=%d", propertyID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	checkIn, err := time.Parse(domain.DateFormat, checkInStr)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid checkIn: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	checkOut, err := time.Parse(domain.DateFormat, checkOutStr)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/availability - Invalid checkOut: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		PropertyID: propertyID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidDateRange):
			h.logger.Warn("GET /properties/{id}/availability - Invalid date range: property_id=%d", propertyID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/availability - Invalid input: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidPropertyID)

		default:
			h.logger.Error("GET /properties/{id}/availability - Failed to check availability: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/availability - Availability checked: property_id=%d, available=%t",
		propertyID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
