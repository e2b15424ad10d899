package create_booking

import (
	"errors"
	"net/http"

	"github.com/vovineb/my-queensy-app-sub001/internal/api/handlers"
	"github.com/vovineb/my-queensy-app-sub001/internal/api/middleware"
	createBooking "github.com/vovineb/my-queensy-app-sub001/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgValidationFailed   = "данные бронирования не прошли проверку"
	msgDatesNotAvailable  = "выбранные даты недоступны"
	msgUserNotFound       = "пользователь не найден"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом дат)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createBooking.ValidationError
		var conflictErr *createBooking.ConflictError

		switch {
		case errors.As(err, &validationErr):
			// Отдаём полный список нарушений, проверки не прерываются на первой
			h.logger.Warn("POST /bookings - Validation failed: user_id=%d, property_id=%d, errors=%d",
				userID, req.PropertyID, len(validationErr.Errors))
			handlers.RespondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
				Error:   msgValidationFailed,
				Details: validationErr.Errors,
			})

		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /bookings - Dates not available: user_id=%d, property_id=%d, conflicts=%d",
				userID, req.PropertyID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, FromConflicts(msgDatesNotAvailable, conflictErr.Conflicts))

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, property_id=%d, error=%v",
				userID, req.PropertyID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, user_id=%d, property_id=%d",
		result.ID, result.BookingReference, userID, req.PropertyID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
