package admissions

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// CapacityLedger интерфейс журнала занятости слотов
type CapacityLedger interface {
	Get(reservationID string) (*domain.Reservation, bool)
	Confirm(reservationID string) error
	Release(reservationID string) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
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
