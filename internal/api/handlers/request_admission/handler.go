package request_admission

import (
	"errors"
	"net/http"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	requestAdmission "github.com/v-demidov/HCS-AdmissionService/internal/usecase/request_admission"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректные данные запроса"
	msgCapacityExceeded   = "лимит бронирований на эту дату исчерпан"
	msgNoTeamAvailable    = "нет свободной команды на эту дату"
)

type Handler struct {
	useCase RequestAdmissionUseCase
	logger  Logger
}

func NewHandler(useCase RequestAdmissionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admissions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req AdmissionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admissions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admissions - Failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, requestAdmission.ErrCapacityExceeded):
			h.logger.Warn("POST /admissions - Capacity exceeded: service=%s, date=%s", req.ServiceType, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgCapacityExceeded)

		case errors.Is(err, requestAdmission.ErrNoTeamAvailable):
			h.logger.Warn("POST /admissions - No team available: service=%s, date=%s", req.ServiceType, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgNoTeamAvailable)

		case errors.Is(err, requestAdmission.ErrInvalidInput):
			h.logger.Warn("POST /admissions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("POST /admissions - Failed: service=%s, date=%s, error=%v", req.ServiceType, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admissions - Admitted: reservation=%s, service=%s, date=%s",
		result.ReservationID, req.ServiceType, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
