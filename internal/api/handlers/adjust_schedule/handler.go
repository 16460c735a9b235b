package adjust_schedule

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	"github.com/v-demidov/HCS-AdmissionService/internal/api/middleware"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректные данные корректировки"
	msgReasonRequired     = "причина корректировки обязательна"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotAdjustable      = "отмененное бронирование нельзя корректировать"
)

type Handler struct {
	service OverridesService
	logger  Logger
}

func NewHandler(service OverridesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/adjustments/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req AdjustScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%s/adjustments/schedule - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(bookingID, middleware.UserID(r.Context()))
	if err != nil {
		h.logger.Warn("POST /bookings/%s/adjustments/schedule - Invalid date: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.AdjustSchedule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, overrides.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%s/adjustments/schedule - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, overrides.ErrBookingNotAdjustable):
			h.logger.Warn("POST /bookings/%s/adjustments/schedule - Booking cancelled", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotAdjustable)

		case errors.Is(err, overrides.ErrReasonRequired):
			h.logger.Warn("POST /bookings/%s/adjustments/schedule - Reason missing", bookingID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, overrides.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%s/adjustments/schedule - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings/%s/adjustments/schedule - Failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
