package adjust_earnings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	"github.com/v-demidov/HCS-AdmissionService/internal/api/middleware"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные корректировки"
	msgReasonRequired     = "причина корректировки обязательна"
	msgBookingNotFound    = "бронирование не найдено"
	msgNotAdjustable      = "отмененное бронирование нельзя корректировать"
)

// AdjustEarningsRequest HTTP request model
type AdjustEarningsRequest struct {
	AmountDeltaCents int64   `json:"amountDeltaCents"`
	Reason           string  `json:"reason"`
	FreeText         *string `json:"freeText,omitempty"`
}

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

// Handle POST /api/v1/bookings/{bookingId}/adjustments/earnings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req AdjustEarningsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%s/adjustments/earnings - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AdjustEarnings(r.Context(), &models.AdjustEarningsRequest{
		BookingID:        bookingID,
		ActorID:          middleware.UserID(r.Context()),
		AmountDeltaCents: req.AmountDeltaCents,
		Reason:           req.Reason,
		FreeText:         req.FreeText,
	})
	if err != nil {
		switch {
		case errors.Is(err, overrides.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%s/adjustments/earnings - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, overrides.ErrBookingNotAdjustable):
			h.logger.Warn("POST /bookings/%s/adjustments/earnings - Booking cancelled", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgNotAdjustable)

		case errors.Is(err, overrides.ErrReasonRequired):
			h.logger.Warn("POST /bookings/%s/adjustments/earnings - Reason missing", bookingID)
			handlers.RespondBadRequest(w, msgReasonRequired)

		case errors.Is(err, overrides.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%s/adjustments/earnings - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /bookings/%s/adjustments/earnings - Failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
