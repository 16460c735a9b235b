package request_admission

import (
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	requestAdmission "github.com/v-demidov/HCS-AdmissionService/internal/usecase/request_admission"
)

// AdmissionRequest HTTP request model
type AdmissionRequest struct {
	ServiceType string         `json:"serviceType"`
	Date        string         `json:"date"` // "2026-09-10"
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	Extras      map[string]int `json:"extras,omitempty"`
	Frequency   string         `json:"frequency,omitempty"`
}

// AdmissionResponse HTTP response model
type AdmissionResponse struct {
	ReservationID  string                `json:"reservationId"`
	ServiceType    string                `json:"serviceType"`
	Date           string                `json:"date"`
	ExpiresAt      string                `json:"expiresAt"`
	TeamName       *string               `json:"teamName,omitempty"`
	SlotsRemaining int                   `json:"slotsRemaining"`
	SurgeActive    bool                  `json:"surgeActive"`
	PriceSnapshot  *domain.PriceSnapshot `json:"priceSnapshot"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdmissionRequest) ToUseCaseRequest() (*requestAdmission.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &requestAdmission.Request{
		ServiceType: r.ServiceType,
		Date:        date,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Extras:      r.Extras,
		Frequency:   r.Frequency,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *requestAdmission.Response) *AdmissionResponse {
	return &AdmissionResponse{
		ReservationID:  resp.ReservationID,
		ServiceType:    string(resp.ServiceType),
		Date:           resp.Date,
		ExpiresAt:      resp.ExpiresAt.Format(time.RFC3339),
		TeamName:       resp.TeamName,
		SlotsRemaining: resp.SlotsRemaining,
		SurgeActive:    resp.SurgeActive,
		PriceSnapshot:  resp.Snapshot,
	}
}
