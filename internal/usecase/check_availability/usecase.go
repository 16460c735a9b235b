package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/surge"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	configRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/capacityconfig"
)

// UseCase use case проверки доступности слота. Строго read-only:
// запрос доступности никогда не резервирует место и не меняет счетчики.
type UseCase struct {
	ledger       CapacityLedger
	allocator    TeamAllocator
	configRepo   ConfigRepository
	teamRepo     TeamRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityLedger CapacityLedger,
	allocator TeamAllocator,
	configRepo ConfigRepository,
	teamRepo TeamRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledger:       capacityLedger,
		allocator:    allocator,
		configRepo:   configRepo,
		teamRepo:     teamRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает снимок доступности слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.SlotAvailability, error) {
	// 1. Валидация входных данных
	serviceType, err := domain.ParseServiceType(req.ServiceType)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	// 2. Конфигурация допуска; дефолты при отсутствии строки
	cfg, err := uc.configRepo.GetByServiceType(ctx, serviceType)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CheckAvailability: failed to get config for %s: %v", serviceType, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = &domain.CapacityConfig{
			ServiceType:        serviceType,
			MaxBookingsPerDate: domain.DefaultMaxBookingsPerDate,
			UsesTeams:          serviceType == domain.ServiceDeep || serviceType == domain.ServiceMoveInOut,
		}
	}
	if surge.IsMisconfigured(cfg) {
		uc.logger.Warn("CheckAvailability: surge config for %s is incomplete, surge disabled", serviceType)
	}

	// 3. Текущая занятость слота
	count := uc.ledger.CurrentCount(serviceType, req.Date)
	remaining := cfg.MaxBookingsPerDate - count
	if remaining < 0 {
		remaining = 0
	}

	// 4. Surge показывается таким, каким его заплатит СЛЕДУЮЩИЙ допуск:
	// предпросмотр цены должен совпадать с итогом RequestAdmission
	decision := surge.Evaluate(count+1, cfg)

	availability := &domain.SlotAvailability{
		ServiceType:     serviceType,
		Date:            req.Date.Format(domain.DateFormat),
		CurrentBookings: count,
		MaxBookings:     cfg.MaxBookingsPerDate,
		SlotsRemaining:  remaining,
		SurgeActive:     decision.Active,
		SurgePercentage: decision.Percentage,
		UsesTeams:       cfg.UsesTeams,
	}

	// 5. Для командных услуг доступность дополнительно ограничена командами
	available := remaining > 0
	if cfg.UsesTeams {
		teams, err := uc.teamRepo.ListActive(ctx)
		if err != nil {
			uc.logger.Error("CheckAvailability: failed to list teams: %v", err)
			return nil, fmt.Errorf("%w: failed to list teams: %v", ErrInternal, err)
		}
		availability.AvailableTeams = uc.allocator.AvailableOn(teams, serviceType, availability.Date)
		if len(availability.AvailableTeams) == 0 {
			available = false
		}
	}
	availability.Available = available

	return availability, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
