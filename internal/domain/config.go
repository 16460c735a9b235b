package domain

import "time"

// CapacityConfig represents the admission limits for one service type.
// Mutated only through the admin surface; read on every admission decision.
type CapacityConfig struct {
	ID                 int64
	ServiceType        ServiceType
	MaxBookingsPerDate int
	UsesTeams          bool
	SurgeThreshold     *int     // nil = surge disabled
	SurgePercentage    *float64 // percent on top of the discounted total, nil = surge disabled
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SurgeConfigured returns true if both surge fields are present
func (c *CapacityConfig) SurgeConfigured() bool {
	return c.SurgeThreshold != nil && c.SurgePercentage != nil
}

// SurgeMisconfigured returns true if exactly one of the surge fields is set.
// Such a config must never activate surge and is surfaced to administrators.
func (c *CapacityConfig) SurgeMisconfigured() bool {
	return (c.SurgeThreshold == nil) != (c.SurgePercentage == nil)
}

// ThresholdAboveCapacity returns true if the surge threshold can never be
// reached because it exceeds the per-date booking limit. Not an error, but
// worth flagging in logs.
func (c *CapacityConfig) ThresholdAboveCapacity() bool {
	return c.SurgeThreshold != nil && *c.SurgeThreshold > c.MaxBookingsPerDate
}
