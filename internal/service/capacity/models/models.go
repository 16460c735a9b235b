package models

import (
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// UpdateConfigRequest запрос на создание или обновление конфигурации допуска
type UpdateConfigRequest struct {
	ServiceType        string
	MaxBookingsPerDate int
	UsesTeams          bool
	SurgeThreshold     *int
	SurgePercentage    *float64
}

// ConfigResponse конфигурация допуска одного типа услуги
type ConfigResponse struct {
	ID                 int64     `json:"id"`
	ServiceType        string    `json:"serviceType"`
	MaxBookingsPerDate int       `json:"maxBookingsPerDate"`
	UsesTeams          bool      `json:"usesTeams"`
	SurgeThreshold     *int      `json:"surgeThreshold,omitempty"`
	SurgePercentage    *float64  `json:"surgePercentage,omitempty"`
	SurgeMisconfigured bool      `json:"surgeMisconfigured"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ConfigListResponse список конфигураций всех типов услуг
type ConfigListResponse struct {
	Configs []*ConfigResponse `json:"configs"`
}

// FromDomainConfig конвертирует domain модель в response
func FromDomainConfig(cfg *domain.CapacityConfig) *ConfigResponse {
	return &ConfigResponse{
		ID:                 cfg.ID,
		ServiceType:        string(cfg.ServiceType),
		MaxBookingsPerDate: cfg.MaxBookingsPerDate,
		UsesTeams:          cfg.UsesTeams,
		SurgeThreshold:     cfg.SurgeThreshold,
		SurgePercentage:    cfg.SurgePercentage,
		SurgeMisconfigured: cfg.SurgeMisconfigured(),
		CreatedAt:          cfg.CreatedAt,
		UpdatedAt:          cfg.UpdatedAt,
	}
}

// FromDomainConfigList конвертирует список конфигураций в response
func FromDomainConfigList(configs []*domain.CapacityConfig) *ConfigListResponse {
	out := make([]*ConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, FromDomainConfig(cfg))
	}
	return &ConfigListResponse{Configs: out}
}
