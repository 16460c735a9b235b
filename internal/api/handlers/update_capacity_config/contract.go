package update_capacity_config

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/service/capacity/models"
)

type CapacityService interface {
	Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
