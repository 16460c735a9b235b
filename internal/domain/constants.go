package domain

// Default configuration values
const (
	DefaultMaxBookingsPerDate = 10
	DefaultHoldTTLSeconds     = 900 // 15 minutes
	DefaultSweepSeconds       = 60
)

// Business validation constants
const (
	MinBookingsPerDate = 0
	MaxBookingsPerDate = 500
	MinSurgeThreshold  = 1
	MinSurgePercentage = 0.0
	MaxSurgePercentage = 100.0
	MinBedrooms        = 0
	MaxBedrooms        = 20
	MinBathrooms       = 0
	MaxBathrooms       = 20
	MaxExtraQuantity   = 20
	MaxReasonLength    = 500
	MaxFreeTextLength  = 2000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
