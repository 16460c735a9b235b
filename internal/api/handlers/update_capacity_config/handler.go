package update_capacity_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/capacity"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные данные конфигурации"
	msgSurgePairRequired  = "surge-порог и surge-процент задаются только вместе"
)

type Handler struct {
	service CapacityService
	logger  Logger
}

func NewHandler(service CapacityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/scheduling-limits/{serviceType}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceType := mux.Vars(r)["serviceType"]

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /scheduling-limits/%s - Invalid request body: %v", serviceType, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(serviceType))
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrConfigInvalid):
			h.logger.Warn("PUT /scheduling-limits/%s - Half-configured surge rejected", serviceType)
			handlers.RespondBadRequest(w, msgSurgePairRequired)
		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("PUT /scheduling-limits/%s - Invalid input: %v", serviceType, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)
		default:
			h.logger.Error("PUT /scheduling-limits/%s - Failed: %v", serviceType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /scheduling-limits/%s - Config updated: id=%d", serviceType, result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
