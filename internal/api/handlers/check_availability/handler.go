package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	checkAvailability "github.com/v-demidov/HCS-AdmissionService/internal/usecase/check_availability"
)

const (
	msgMissingServiceType = "не указан тип услуги"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest     = "некорректные параметры запроса"
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

// Handle GET /api/v1/availability?serviceType=deep&date=2026-09-10
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceType := r.URL.Query().Get("serviceType")
	if serviceType == "" {
		handlers.RespondBadRequest(w, msgMissingServiceType)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		ServiceType: serviceType,
		Date:        date,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
		default:
			h.logger.Error("GET /availability - Failed: service=%s, error=%v", serviceType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomainAvailability(result))
}
