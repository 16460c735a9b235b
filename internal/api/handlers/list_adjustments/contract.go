package list_adjustments

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides/models"
)

type OverridesService interface {
	ListAdjustments(ctx context.Context, bookingID string) (*models.NoteListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
