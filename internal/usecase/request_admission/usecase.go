package request_admission

import (
	"context"
	"errors"
	"fmt"

	"github.com/v-demidov/HCS-AdmissionService/internal/core/ledger"
	"github.com/v-demidov/HCS-AdmissionService/internal/core/pricing"
	"github.com/v-demidov/HCS-AdmissionService/internal/core/surge"
	"github.com/v-demidov/HCS-AdmissionService/internal/core/teamalloc"
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	configRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/capacityconfig"
)

const (
	resultAdmitted = "admitted"
	resultRejected = "rejected"
	resultInvalid  = "invalid"
)

// UseCase use case допуска бронирования: атомарное удержание места в слоте,
// назначение команды и фиксация цены
type UseCase struct {
	ledger       CapacityLedger
	allocator    TeamAllocator
	configRepo   ConfigRepository
	teamRepo     TeamRepository
	prices       PriceSource
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityLedger CapacityLedger,
	allocator TeamAllocator,
	configRepo ConfigRepository,
	teamRepo TeamRepository,
	prices PriceSource,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledger:       capacityLedger,
		allocator:    allocator,
		configRepo:   configRepo,
		teamRepo:     teamRepo,
		prices:       prices,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет допуск бронирования.
// Проверка вместимости и инкремент счетчика атомарны внутри журнала, поэтому
// два конкурирующих запроса на последнее место получат ровно один допуск.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RequestAdmission: service=%s, date=%s, bedrooms=%d, bathrooms=%d",
		req.ServiceType, req.Date.Format(domain.DateFormat), req.Bedrooms, req.Bathrooms)

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	serviceType, frequency, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("RequestAdmission: validation failed: %v", err)
		uc.metrics.IncAdmission(req.ServiceType, resultInvalid)
		return nil, err
	}

	// 2. Получаем конфигурацию допуска; при отсутствии строки действуют дефолты
	cfg, err := uc.configRepo.GetByServiceType(ctx, serviceType)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("RequestAdmission: failed to get config for %s: %v", serviceType, err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = defaultConfig(serviceType)
		uc.logger.Info("RequestAdmission: no config for %s, using defaults", serviceType)
	}
	if surge.IsMisconfigured(cfg) {
		// Сломанная surge-конфигурация не блокирует допуск: surge выключен
		uc.logger.Warn("RequestAdmission: surge config for %s is incomplete, surge disabled", serviceType)
	}

	// 3. Удерживаем место в слоте (атомарная проверка + инкремент).
	// count — счетчик сразу после инкремента, под той же блокировкой
	reservation, count, err := uc.ledger.Reserve(serviceType, req.Date, cfg.MaxBookingsPerDate)
	if err != nil {
		if errors.Is(err, ledger.ErrCapacityExceeded) {
			uc.logger.Warn("RequestAdmission: capacity exceeded for %s on %s",
				serviceType, req.Date.Format(domain.DateFormat))
			uc.metrics.IncAdmission(string(serviceType), resultRejected)
			return nil, ErrCapacityExceeded
		}
		uc.logger.Error("RequestAdmission: failed to reserve: %v", err)
		return nil, fmt.Errorf("%w: failed to reserve: %v", ErrInternal, err)
	}

	// 4. Surge вычисляется по счетчику ПОСЛЕ резервации: пересекающее порог
	// бронирование само платит наценку. Повторное чтение счетчика здесь
	// гналось бы с соседними резервациями того же слота
	decision := surge.Evaluate(count, cfg)

	// 5. Назначаем команду, если тип услуги того требует.
	// Неудача компенсируется освобождением только что занятого места.
	var teamName *string
	if cfg.UsesTeams {
		name, err := uc.assignTeam(ctx, serviceType, reservation)
		if err != nil {
			if relErr := uc.ledger.Release(reservation.ID); relErr != nil {
				uc.logger.Error("RequestAdmission: failed to release reservation %s after team failure: %v",
					reservation.ID, relErr)
			}
			if errors.Is(err, teamalloc.ErrNoTeamAvailable) {
				uc.logger.Warn("RequestAdmission: no team available for %s on %s",
					serviceType, reservation.Date)
				uc.metrics.IncAdmission(string(serviceType), resultRejected)
				return nil, ErrNoTeamAvailable
			}
			return nil, err
		}
		teamName = &name
	}

	// 6. Считаем цену и фиксируем снапшот
	table, err := uc.prices.Get(ctx)
	if err != nil {
		uc.compensate(reservation, teamName)
		uc.logger.Error("RequestAdmission: failed to load price table: %v", err)
		return nil, fmt.Errorf("%w: failed to load price table: %v", ErrInternal, err)
	}

	snapshot, err := pricing.Calculate(table, pricing.Input{
		ServiceType:     serviceType,
		Bedrooms:        req.Bedrooms,
		Bathrooms:       req.Bathrooms,
		Extras:          req.Extras,
		Frequency:       frequency,
		SurgeActive:     decision.Active,
		SurgePercentage: decision.Percentage,
	})
	if err != nil {
		uc.compensate(reservation, teamName)
		uc.logger.Warn("RequestAdmission: pricing failed: %v", err)
		uc.metrics.IncAdmission(string(serviceType), resultInvalid)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 7. Фиксируем снапшот в резервации: подтверждение возьмет цену отсюда,
	// клиентский экземпляр снапшота на цену не влияет
	if err := uc.ledger.AttachSnapshot(reservation.ID, snapshot); err != nil {
		uc.compensate(reservation, teamName)
		uc.logger.Error("RequestAdmission: failed to attach snapshot to reservation %s: %v", reservation.ID, err)
		return nil, fmt.Errorf("%w: failed to attach snapshot: %v", ErrInternal, err)
	}

	uc.metrics.IncAdmission(string(serviceType), resultAdmitted)
	if decision.Active {
		uc.metrics.IncSurgePriced(string(serviceType))
	}

	uc.logger.Info("RequestAdmission: admitted reservation=%s, service=%s, date=%s, total=%d, surge=%t",
		reservation.ID, serviceType, reservation.Date, snapshot.TotalCents, decision.Active)

	return &Response{
		ReservationID:  reservation.ID,
		ServiceType:    serviceType,
		Date:           reservation.Date,
		ExpiresAt:      reservation.ExpiresAt,
		TeamName:       teamName,
		SlotsRemaining: cfg.MaxBookingsPerDate - count,
		SurgeActive:    decision.Active,
		Snapshot:       snapshot,
	}, nil
}

// assignTeam подбирает свободную команду и привязывает ее к резервации
func (uc *UseCase) assignTeam(ctx context.Context, serviceType domain.ServiceType, reservation *domain.Reservation) (string, error) {
	teams, err := uc.teamRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("RequestAdmission: failed to list teams: %v", err)
		return "", fmt.Errorf("%w: failed to list teams: %v", ErrInternal, err)
	}

	name, err := uc.allocator.Assign(teams, serviceType, reservation.Date, reservation.ID)
	if err != nil {
		return "", err
	}

	if err := uc.ledger.AttachTeam(reservation.ID, name); err != nil {
		uc.allocator.Release(name, reservation.Date)
		uc.logger.Error("RequestAdmission: failed to attach team %s to reservation %s: %v",
			name, reservation.ID, err)
		return "", fmt.Errorf("%w: failed to attach team: %v", ErrInternal, err)
	}

	return name, nil
}

// compensate откатывает удержание места и назначение команды
func (uc *UseCase) compensate(reservation *domain.Reservation, teamName *string) {
	if teamName != nil {
		uc.allocator.Release(*teamName, reservation.Date)
	}
	if err := uc.ledger.Release(reservation.ID); err != nil {
		uc.logger.Error("RequestAdmission: failed to release reservation %s: %v", reservation.ID, err)
	}
}
