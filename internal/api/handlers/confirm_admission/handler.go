package confirm_admission

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/admissions"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidRequest      = "некорректные данные запроса"
	msgReservationNotFound = "резервация не найдена"
	msgReservationExpired  = "срок удержания резервации истек"
)

type Handler struct {
	service AdmissionsService
	logger  Logger
}

func NewHandler(service AdmissionsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admissions/{reservationId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admissions/%s/confirm - Invalid request body: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(reservationID)
	if err != nil {
		h.logger.Warn("POST /admissions/%s/confirm - Invalid start time: %v", reservationID, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.service.ConfirmAdmission(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, admissions.ErrReservationNotFound):
			h.logger.Warn("POST /admissions/%s/confirm - Reservation not found", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, admissions.ErrReservationExpired):
			h.logger.Warn("POST /admissions/%s/confirm - Reservation expired", reservationID)
			handlers.RespondError(w, http.StatusGone, msgReservationExpired)

		case errors.Is(err, admissions.ErrInvalidInput):
			h.logger.Warn("POST /admissions/%s/confirm - Invalid input: %v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /admissions/%s/confirm - Failed: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admissions/%s/confirm - Booking confirmed: id=%s", reservationID, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
