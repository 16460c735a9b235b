package update_capacity_config

import "github.com/v-demidov/HCS-AdmissionService/internal/service/capacity/models"

// UpdateConfigRequest HTTP request model
type UpdateConfigRequest struct {
	MaxBookingsPerDate int      `json:"maxBookingsPerDate"`
	UsesTeams          bool     `json:"usesTeams"`
	SurgeThreshold     *int     `json:"surgeThreshold,omitempty"`
	SurgePercentage    *float64 `json:"surgePercentage,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateConfigRequest) ToServiceRequest(serviceType string) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		ServiceType:        serviceType,
		MaxBookingsPerDate: r.MaxBookingsPerDate,
		UsesTeams:          r.UsesTeams,
		SurgeThreshold:     r.SurgeThreshold,
		SurgePercentage:    r.SurgePercentage,
	}
}
