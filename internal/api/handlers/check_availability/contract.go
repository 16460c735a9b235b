package check_availability

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	checkAvailability "github.com/v-demidov/HCS-AdmissionService/internal/usecase/check_availability"
)

type CheckAvailabilityUseCase interface {
	Execute(ctx context.Context, req *checkAvailability.Request) (*domain.SlotAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
