package adjust_schedule

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides/models"
)

type OverridesService interface {
	AdjustSchedule(ctx context.Context, req *models.AdjustScheduleRequest) (*models.AdjustmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
