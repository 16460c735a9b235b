package abandon_admission

import "context"

type AdmissionsService interface {
	AbandonAdmission(ctx context.Context, reservationID string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
