package domain

// SlotAvailability is a read-only view of one slot's capacity, returned by
// the availability pre-check. It never reflects a reservation made by the
// query itself.
type SlotAvailability struct {
	ServiceType     ServiceType
	Date            string // YYYY-MM-DD
	Available       bool
	CurrentBookings int
	MaxBookings     int
	SlotsRemaining  int
	SurgeActive     bool
	SurgePercentage float64
	UsesTeams       bool
	AvailableTeams  []string
}

// IsFull returns true if the slot has no remaining capacity
func (s *SlotAvailability) IsFull() bool {
	return s.SlotsRemaining <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *SlotAvailability) OccupancyRate() float64 {
	if s.MaxBookings == 0 {
		return 0
	}
	return float64(s.CurrentBookings) / float64(s.MaxBookings) * 100
}
