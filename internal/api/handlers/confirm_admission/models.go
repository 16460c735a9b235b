package confirm_admission

import (
	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/admissions/models"
	"github.com/v-demidov/HCS-AdmissionService/pkg/types"
)

// ConfirmRequest HTTP request model.
// Цена клиентом не передается: снапшот зафиксирован при допуске.
type ConfirmRequest struct {
	StartTime string          `json:"startTime"` // "10:00"
	Customer  CustomerPayload `json:"customer"`
}

// CustomerPayload контактные данные клиента
type CustomerPayload struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	Suburb       string `json:"suburb"`
	City         string `json:"city"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ConfirmRequest) ToServiceRequest(reservationID string) (*models.ConfirmAdmissionRequest, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &models.ConfirmAdmissionRequest{
		ReservationID: reservationID,
		StartTime:     startTime,
		Customer: domain.CustomerInfo{
			Name:         r.Customer.Name,
			Email:        r.Customer.Email,
			Phone:        r.Customer.Phone,
			AddressLine1: r.Customer.AddressLine1,
			Suburb:       r.Customer.Suburb,
			City:         r.Customer.City,
		},
	}, nil
}
