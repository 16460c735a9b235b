package request_admission

import (
	"fmt"
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// validateRequest валидирует входные данные и возвращает разобранные значения
func validateRequest(req *Request, now time.Time) (domain.ServiceType, domain.Frequency, error) {
	serviceType, err := domain.ParseServiceType(req.ServiceType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	frequency, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.Date.IsZero() {
		return "", "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if isDateInPast(req.Date, now) {
		return "", "", fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	if req.Bedrooms < domain.MinBedrooms || req.Bedrooms > domain.MaxBedrooms {
		return "", "", fmt.Errorf("%w: bedrooms must be between %d and %d",
			ErrInvalidInput, domain.MinBedrooms, domain.MaxBedrooms)
	}
	if req.Bathrooms < domain.MinBathrooms || req.Bathrooms > domain.MaxBathrooms {
		return "", "", fmt.Errorf("%w: bathrooms must be between %d and %d",
			ErrInvalidInput, domain.MinBathrooms, domain.MaxBathrooms)
	}

	return serviceType, frequency, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// defaultConfig возвращает конфигурацию по умолчанию для типа услуги,
// у которого нет строки в scheduling_limits. Команды обязательны для
// генеральной уборки и уборки при переезде.
func defaultConfig(serviceType domain.ServiceType) *domain.CapacityConfig {
	return &domain.CapacityConfig{
		ServiceType:        serviceType,
		MaxBookingsPerDate: domain.DefaultMaxBookingsPerDate,
		UsesTeams:          serviceType == domain.ServiceDeep || serviceType == domain.ServiceMoveInOut,
	}
}
