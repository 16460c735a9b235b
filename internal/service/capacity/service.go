package capacity

import (
	"context"
	"errors"
	"fmt"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	configRepo "github.com/v-demidov/HCS-AdmissionService/internal/infra/storage/capacityconfig"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/capacity/models"
)

// Service сервис административной конфигурации допуска (scheduling limits)
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Get возвращает конфигурацию одного типа услуги
func (s *Service) Get(ctx context.Context, serviceType string) (*models.ConfigResponse, error) {
	st, err := domain.ParseServiceType(serviceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cfg, err := s.configRepo.GetByServiceType(ctx, st)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error for %s: %v", st, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg), nil
}

// List возвращает конфигурации всех типов услуг
func (s *Service) List(ctx context.Context) (*models.ConfigListResponse, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfigList(configs), nil
}

// Update создает или обновляет конфигурацию типа услуги.
// Противоречивая surge-пара (одно поле из двух) отклоняется на записи,
// чтобы чтение никогда не встречало свежесозданную сломанную конфигурацию.
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: service=%s, maxBookings=%d, usesTeams=%t",
		req.ServiceType, req.MaxBookingsPerDate, req.UsesTeams)

	st, err := domain.ParseServiceType(req.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cfg := &domain.CapacityConfig{
		ServiceType:        st,
		MaxBookingsPerDate: req.MaxBookingsPerDate,
		UsesTeams:          req.UsesTeams,
		SurgeThreshold:     req.SurgeThreshold,
		SurgePercentage:    req.SurgePercentage,
	}

	if err := validateConfig(cfg); err != nil {
		s.logger.Warn("Update: validation failed for %s: %v", st, err)
		return nil, err
	}

	if cfg.ThresholdAboveCapacity() {
		// Недостижимый порог валиден, но почти наверняка опечатка
		s.logger.Warn("Update: surge threshold %d for %s exceeds max bookings %d and will never trigger",
			*cfg.SurgeThreshold, st, cfg.MaxBookingsPerDate)
	}

	updated, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		s.logger.Error("Update: failed to upsert config for %s: %v", st, err)
		return nil, fmt.Errorf("%w: failed to upsert config: %v", ErrInternal, err)
	}

	s.logger.Info("Update: config for %s saved, id=%d", st, updated.ID)
	return models.FromDomainConfig(updated), nil
}

func validateConfig(cfg *domain.CapacityConfig) error {
	if cfg.MaxBookingsPerDate < domain.MinBookingsPerDate || cfg.MaxBookingsPerDate > domain.MaxBookingsPerDate {
		return fmt.Errorf("%w: maxBookingsPerDate must be between %d and %d",
			ErrInvalidInput, domain.MinBookingsPerDate, domain.MaxBookingsPerDate)
	}

	if cfg.SurgeMisconfigured() {
		return fmt.Errorf("%w: surge threshold and percentage must be set together", ErrConfigInvalid)
	}

	if cfg.SurgeThreshold != nil && *cfg.SurgeThreshold < domain.MinSurgeThreshold {
		return fmt.Errorf("%w: surge threshold must be at least %d", ErrInvalidInput, domain.MinSurgeThreshold)
	}
	if cfg.SurgePercentage != nil &&
		(*cfg.SurgePercentage < domain.MinSurgePercentage || *cfg.SurgePercentage > domain.MaxSurgePercentage) {
		return fmt.Errorf("%w: surge percentage must be between %.0f and %.0f",
			ErrInvalidInput, domain.MinSurgePercentage, domain.MaxSurgePercentage)
	}

	return nil
}
