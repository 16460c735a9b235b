package domain

import "fmt"

// ServiceType represents a cleaning service offered for booking
type ServiceType string

const (
	ServiceStandard  ServiceType = "standard"
	ServiceDeep      ServiceType = "deep"
	ServiceMoveInOut ServiceType = "move_in_out"
	ServiceAirbnb    ServiceType = "airbnb"
	ServiceCarpet    ServiceType = "carpet"
)

// ServiceTypes enumerates all known service types in display order
var ServiceTypes = []ServiceType{
	ServiceStandard,
	ServiceDeep,
	ServiceMoveInOut,
	ServiceAirbnb,
	ServiceCarpet,
}

// ParseServiceType validates and converts a string into a ServiceType
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	for _, known := range ServiceTypes {
		if st == known {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown service type: %q", s)
}

// Frequency represents how often a customer wants the service repeated
type Frequency string

const (
	FrequencyOneTime  Frequency = "one-time"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "bi-weekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Frequencies enumerates all supported frequencies
var Frequencies = []Frequency{
	FrequencyOneTime,
	FrequencyWeekly,
	FrequencyBiWeekly,
	FrequencyMonthly,
}

// ParseFrequency validates and converts a string into a Frequency
// An empty string is treated as one-time
func ParseFrequency(s string) (Frequency, error) {
	if s == "" {
		return FrequencyOneTime, nil
	}
	f := Frequency(s)
	for _, known := range Frequencies {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown frequency: %q", s)
}
