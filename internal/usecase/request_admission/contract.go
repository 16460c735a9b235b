package request_admission

import (
	"context"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/pricing"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// CapacityLedger интерфейс журнала занятости слотов.
// Reserve возвращает счетчик занятых мест сразу после инкремента: surge и
// остаток мест считаются по нему, без повторного чтения счетчика.
type CapacityLedger interface {
	Reserve(serviceType domain.ServiceType, date time.Time, maxBookings int) (*domain.Reservation, int, error)
	Release(reservationID string) error
	AttachTeam(reservationID, teamName string) error
	AttachSnapshot(reservationID string, snapshot *domain.PriceSnapshot) error
}

// TeamAllocator интерфейс распределителя команд по датам
type TeamAllocator interface {
	Assign(teams []*domain.Team, serviceType domain.ServiceType, date string, reservationID string) (string, error)
	Release(teamName, date string)
}

// ConfigRepository интерфейс репозитория конфигурации допуска
type ConfigRepository interface {
	GetByServiceType(ctx context.Context, serviceType domain.ServiceType) (*domain.CapacityConfig, error)
}

// TeamRepository интерфейс репозитория команд
type TeamRepository interface {
	ListActive(ctx context.Context) ([]*domain.Team, error)
}

// PriceSource источник актуального прайс-листа
type PriceSource interface {
	Get(ctx context.Context) (*pricing.Table, error)
}

// Metrics интерфейс метрик допуска
type Metrics interface {
	IncAdmission(serviceType, result string)
	IncSurgePriced(serviceType string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
