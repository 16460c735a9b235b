package request_admission

import (
	"context"

	requestAdmission "github.com/v-demidov/HCS-AdmissionService/internal/usecase/request_admission"
)

type RequestAdmissionUseCase interface {
	Execute(ctx context.Context, req *requestAdmission.Request) (*requestAdmission.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
