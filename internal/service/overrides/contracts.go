package overrides

import (
	"context"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateSchedule(ctx context.Context, id string, date time.Time, startTime string) error
	UpdateEarnings(ctx context.Context, id string, earningsCents int64) error
}

// AdjustmentRepository интерфейс append-only репозитория корректировок
type AdjustmentRepository interface {
	Append(ctx context.Context, note *domain.AdjustmentNote) (*domain.AdjustmentNote, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*domain.AdjustmentNote, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
