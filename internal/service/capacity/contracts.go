package capacity

import (
	"context"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации допуска
type ConfigRepository interface {
	GetByServiceType(ctx context.Context, serviceType domain.ServiceType) (*domain.CapacityConfig, error)
	List(ctx context.Context) ([]*domain.CapacityConfig, error)
	Upsert(ctx context.Context, cfg *domain.CapacityConfig) (*domain.CapacityConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
