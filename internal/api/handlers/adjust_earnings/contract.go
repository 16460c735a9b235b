package adjust_earnings

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides/models"
)

type OverridesService interface {
	AdjustEarnings(ctx context.Context, req *models.AdjustEarningsRequest) (*models.AdjustmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
