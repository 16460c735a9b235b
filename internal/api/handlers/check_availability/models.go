package check_availability

import "github.com/v-demidov/HCS-AdmissionService/internal/domain"

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ServiceType     string   `json:"serviceType"`
	Date            string   `json:"date"`
	Available       bool     `json:"available"`
	CurrentBookings int      `json:"currentBookings"`
	MaxBookings     int      `json:"maxBookings"`
	SlotsRemaining  int      `json:"slotsRemaining"`
	SurgeActive     bool     `json:"surgeActive"`
	SurgePercentage float64  `json:"surgePercentage"`
	UsesTeams       bool     `json:"usesTeams"`
	AvailableTeams  []string `json:"availableTeams,omitempty"`
}

// FromDomainAvailability конвертирует domain модель в HTTP response
func FromDomainAvailability(a *domain.SlotAvailability) *AvailabilityResponse {
	return &AvailabilityResponse{
		ServiceType:     string(a.ServiceType),
		Date:            a.Date,
		Available:       a.Available,
		CurrentBookings: a.CurrentBookings,
		MaxBookings:     a.MaxBookings,
		SlotsRemaining:  a.SlotsRemaining,
		SurgeActive:     a.SurgeActive,
		SurgePercentage: a.SurgePercentage,
		UsesTeams:       a.UsesTeams,
		AvailableTeams:  a.AvailableTeams,
	}
}
