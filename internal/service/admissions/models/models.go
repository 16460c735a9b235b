package models

import (
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/pkg/types"
)

// ConfirmAdmissionRequest запрос на подтверждение удержанной резервации.
// Цена в запросе не передается: снапшот зафиксирован при допуске и
// читается из резервации.
type ConfirmAdmissionRequest struct {
	ReservationID string
	StartTime     types.TimeString
	Customer      domain.CustomerInfo
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string                `json:"id"`
	ServiceType   string                `json:"serviceType"`
	BookingDate   string                `json:"bookingDate"`
	StartTime     string                `json:"startTime"`
	Bedrooms      int                   `json:"bedrooms"`
	Bathrooms     int                   `json:"bathrooms"`
	Frequency     string                `json:"frequency"`
	TeamName      *string               `json:"teamName,omitempty"`
	Status        string                `json:"status"`
	CustomerName  string                `json:"customerName"`
	TotalCents    int64                 `json:"totalCents"`
	EarningsCents int64                 `json:"earningsCents"`
	Snapshot      domain.PriceSnapshot  `json:"priceSnapshot"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// FromDomainBooking конвертирует domain модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		ServiceType:   string(b.ServiceType),
		BookingDate:   b.BookingDate.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		Bedrooms:      b.Bedrooms,
		Bathrooms:     b.Bathrooms,
		Frequency:     string(b.Frequency),
		TeamName:      b.TeamName,
		Status:        string(b.Status),
		CustomerName:  b.Customer.Name,
		TotalCents:    b.TotalCents,
		EarningsCents: b.EarningsCents,
		Snapshot:      b.Snapshot,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
