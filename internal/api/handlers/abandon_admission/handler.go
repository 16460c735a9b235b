package abandon_admission

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/admissions"
)

const msgReservationNotFound = "резервация не найдена"

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

// Handle POST /api/v1/admissions/{reservationId}/abandon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID := mux.Vars(r)["reservationId"]

	if err := h.service.AbandonAdmission(r.Context(), reservationID); err != nil {
		switch {
		case errors.Is(err, admissions.ErrReservationNotFound):
			h.logger.Warn("POST /admissions/%s/abandon - Reservation not found", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)
		default:
			h.logger.Error("POST /admissions/%s/abandon - Failed: %v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admissions/%s/abandon - Reservation released", reservationID)
	w.WriteHeader(http.StatusNoContent)
}
