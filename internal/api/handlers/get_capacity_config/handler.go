package get_capacity_config

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/v-demidov/HCS-AdmissionService/internal/api/handlers"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/capacity"
)

const (
	msgConfigNotFound     = "конфигурация не найдена"
	msgInvalidServiceType = "некорректный тип услуги"
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

// Handle GET /api/v1/scheduling-limits/{serviceType}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceType := mux.Vars(r)["serviceType"]

	result, err := h.service.Get(r.Context(), serviceType)
	if err != nil {
		switch {
		case errors.Is(err, capacity.ErrConfigNotFound):
			h.logger.Warn("GET /scheduling-limits/%s - Config not found", serviceType)
			handlers.RespondNotFound(w, msgConfigNotFound)
		case errors.Is(err, capacity.ErrInvalidInput):
			h.logger.Warn("GET /scheduling-limits/%s - Invalid service type", serviceType)
			handlers.RespondBadRequest(w, msgInvalidServiceType)
		default:
			h.logger.Error("GET /scheduling-limits/%s - Failed: %v", serviceType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleList GET /api/v1/scheduling-limits
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /scheduling-limits - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
