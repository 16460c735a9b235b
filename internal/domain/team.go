package domain

import "time"

// TeamMember is one cleaner in a team with their share of the team earnings
type TeamMember struct {
	CleanerID    string
	SharePercent float64
}

// Team is a fixed group of cleaners eligible for team-required service types.
// A team takes at most one booking per calendar date.
type Team struct {
	Name             string
	SupervisorID     string
	Members          []TeamMember
	EligibleServices []ServiceType
	Position         int // creation order, defines deterministic allocation order
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// EligibleFor returns true if the team may serve the given service type
func (t *Team) EligibleFor(serviceType ServiceType) bool {
	for _, st := range t.EligibleServices {
		if st == serviceType {
			return true
		}
	}
	return false
}

// HasMember returns true if the cleaner belongs to the team
func (t *Team) HasMember(cleanerID string) bool {
	for _, m := range t.Members {
		if m.CleanerID == cleanerID {
			return true
		}
	}
	return false
}
