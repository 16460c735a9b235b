package get_capacity_config

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/service/capacity/models"
)

type CapacityService interface {
	Get(ctx context.Context, serviceType string) (*models.ConfigResponse, error)
	List(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
