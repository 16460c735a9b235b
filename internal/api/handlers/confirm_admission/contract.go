package confirm_admission

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/service/admissions/models"
)

type AdmissionsService interface {
	ConfirmAdmission(ctx context.Context, req *models.ConfirmAdmissionRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
