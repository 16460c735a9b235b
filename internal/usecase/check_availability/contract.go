package check_availability

import (
	"context"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// CapacityLedger интерфейс журнала занятости слотов (только чтение)
type CapacityLedger interface {
	CurrentCount(serviceType domain.ServiceType, date time.Time) int
}

// TeamAllocator интерфейс распределителя команд (только чтение)
type TeamAllocator interface {
	AvailableOn(teams []*domain.Team, serviceType domain.ServiceType, date string) []string
}

// ConfigRepository интерфейс репозитория конфигурации допуска
type ConfigRepository interface {
	GetByServiceType(ctx context.Context, serviceType domain.ServiceType) (*domain.CapacityConfig, error)
}

// TeamRepository интерфейс репозитория команд
type TeamRepository interface {
	ListActive(ctx context.Context) ([]*domain.Team, error)
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
