package get_property_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/vovineb/my-queensy-app-sub001/internal/api/handlers"
	"github.com/vovineb/my-queensy-app-sub001/internal/api/middleware"
	"github.com/vovineb/my-queensy-app-sub001/internal/service/bookings"
	"github.com/vovineb/my-queensy-app-sub001/internal/service/bookings/models"
)

const (
	msgInvalidPropertyID = "некорректный ID объекта"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgInvalidParams     = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/properties/{propertyId}/bookings
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем propertyId из URL
	vars := mux.Vars(r)
	propertyIDStr := vars["propertyId"]

	propertyID, err := strconv.ParseInt(propertyIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /properties/{id}/bookings - Invalid property ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPropertyID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /properties/{id}/bookings - Missing user ID: property_id=%d", propertyID)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetPropertyBookingsRequest{
		PropertyID: propertyID,
	}

	// Парсим status если указан
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetPropertyBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /properties/{id}/bookings - Invalid parameters: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /properties/{id}/bookings - Failed to get bookings: property_id=%d, error=%v",
				propertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /properties/{id}/bookings - Bookings retrieved successfully: property_id=%d, user_id=%d, count=%d",
		propertyID, userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
