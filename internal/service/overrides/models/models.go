package models

import (
	"time"

	"github.com/v-demidov/HCS-AdmissionService/internal/domain"
)

// AdjustEarningsRequest запрос на корректировку заработка
type AdjustEarningsRequest struct {
	BookingID        string
	ActorID          string
	AmountDeltaCents int64
	Reason           string
	FreeText         *string
}

// AdjustScheduleRequest запрос на перенос бронирования
type AdjustScheduleRequest struct {
	BookingID string
	ActorID   string
	NewDate   time.Time
	NewTime   string // HH:MM
	Reason    string
	FreeText  *string
}

// AdjustmentResponse ответ с записью аудита и текущим эффективным значением
type AdjustmentResponse struct {
	Note              *NoteResponse `json:"note"`
	EffectiveEarnings *int64        `json:"effectiveEarningsCents,omitempty"`
}

// NoteResponse одна запись аудита
type NoteResponse struct {
	ID               string    `json:"id"`
	BookingID        string    `json:"bookingId"`
	ActorID          string    `json:"actorId"`
	Kind             string    `json:"kind"`
	Reason           string    `json:"reason"`
	AmountDeltaCents *int64    `json:"amountDeltaCents,omitempty"`
	PreviousDate     *string   `json:"previousDate,omitempty"`
	NewDate          *string   `json:"newDate,omitempty"`
	PreviousTime     *string   `json:"previousTime,omitempty"`
	NewTime          *string   `json:"newTime,omitempty"`
	FreeText         *string   `json:"freeText,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NoteListResponse список записей аудита бронирования
type NoteListResponse struct {
	BookingID string          `json:"bookingId"`
	Notes     []*NoteResponse `json:"notes"`
}

// FromDomainNote конвертирует domain модель в response
func FromDomainNote(n *domain.AdjustmentNote) *NoteResponse {
	return &NoteResponse{
		ID:               n.ID,
		BookingID:        n.BookingID,
		ActorID:          n.ActorID,
		Kind:             string(n.Kind),
		Reason:           n.Reason,
		AmountDeltaCents: n.AmountDeltaCents,
		PreviousDate:     n.PreviousDate,
		NewDate:          n.NewDate,
		PreviousTime:     n.PreviousTime,
		NewTime:          n.NewTime,
		FreeText:         n.FreeText,
		CreatedAt:        n.CreatedAt,
	}
}

// FromDomainNoteList конвертирует список записей аудита в response
func FromDomainNoteList(bookingID string, notes []*domain.AdjustmentNote) *NoteListResponse {
	out := make([]*NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, FromDomainNote(n))
	}
	return &NoteListResponse{BookingID: bookingID, Notes: out}
}
