package domain

import (
	"time"

	"github.com/v-demidov/HCS-AdmissionService/pkg/types"
)

// BookingStatus represents the status of a confirmed booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// CustomerInfo is the contact and address data attached to a booking at
// confirmation time. The core does not manage customers; it only stores what
// the boundary hands over.
type CustomerInfo struct {
	Name         string
	Email        string
	Phone        string
	AddressLine1 string
	Suburb       string
	City         string
}

// Booking represents an admitted and confirmed booking. Its ID is the
// reservation ID that admitted it, so a retried Confirm maps onto the same row.
type Booking struct {
	ID          string // reservation ID
	ServiceType ServiceType
	BookingDate time.Time
	StartTime   types.TimeString
	Bedrooms    int
	Bathrooms   int
	Frequency   Frequency
	TeamName    *string
	Status      BookingStatus

	Customer CustomerInfo

	// Denormalized money, all cents; Snapshot is the authoritative itemization
	TotalCents    int64
	EarningsCents int64
	Snapshot      PriceSnapshot

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeAdjusted returns true if administrative overrides apply to the booking
func (b *Booking) CanBeAdjusted() bool {
	return b.Status != StatusCancelled
}
