package domain

import "time"

// ReservationState represents the lifecycle state of a capacity hold
type ReservationState string

const (
	ReservationHeld      ReservationState = "held"
	ReservationConfirmed ReservationState = "confirmed"
	ReservationReleased  ReservationState = "released"
)

// SlotKey identifies one unit of admission capacity: a service type on a
// calendar date. The date is normalized to YYYY-MM-DD.
type SlotKey struct {
	ServiceType ServiceType
	Date        string
}

// NewSlotKey builds a SlotKey from a service type and a date
func NewSlotKey(serviceType ServiceType, date time.Time) SlotKey {
	return SlotKey{
		ServiceType: serviceType,
		Date:        date.Format(DateFormat),
	}
}

// Reservation is a temporary hold on one unit of slot capacity, pending
// confirmation. A Held reservation past ExpiresAt is eligible for reclamation.
type Reservation struct {
	ID          string
	ServiceType ServiceType
	Date        string // YYYY-MM-DD
	TeamName    *string
	Snapshot    *PriceSnapshot // fixed at admission time, authoritative price record
	State       ReservationState
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Key returns the slot this reservation holds capacity in
func (r *Reservation) Key() SlotKey {
	return SlotKey{ServiceType: r.ServiceType, Date: r.Date}
}

// IsHeld returns true while the reservation still consumes capacity pending confirmation
func (r *Reservation) IsHeld() bool {
	return r.State == ReservationHeld
}

// IsConfirmed returns true once the reservation became a booking
func (r *Reservation) IsConfirmed() bool {
	return r.State == ReservationConfirmed
}

// IsReleased returns true once the hold was returned to the slot
func (r *Reservation) IsReleased() bool {
	return r.State == ReservationReleased
}

// ExpiredAt returns true if a Held reservation is past its TTL at the given instant
func (r *Reservation) ExpiredAt(now time.Time) bool {
	return r.State == ReservationHeld && now.After(r.ExpiresAt)
}
