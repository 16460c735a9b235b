package adjust_schedule

import (
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
	"github.com/v-demidov/HCS-AdmissionService/internal/service/overrides/models"
)

// AdjustScheduleRequest HTTP request model
type AdjustScheduleRequest struct {
	NewDate  string  `json:"newDate"` // "2026-09-12"
	NewTime  string  `json:"newTime"` // "14:30"
	Reason   string  `json:"reason"`
	FreeText *string `json:"freeText,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *AdjustScheduleRequest) ToServiceRequest(bookingID, actorID string) (*models.AdjustScheduleRequest, error) {
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	return &models.AdjustScheduleRequest{
		BookingID: bookingID,
		ActorID:   actorID,
		NewDate:   newDate,
		NewTime:   r.NewTime,
		Reason:    r.Reason,
		FreeText:  r.FreeText,
	}, nil
}
