package domain

import "time"

// All monetary amounts are integer minor-currency units (cents) to avoid
// floating-point drift. The cent values are what gets persisted and compared.

// ExtraLine is one priced extra in a snapshot
type ExtraLine struct {
	ExtraID   string `json:"extraId"`
	Quantity  int    `json:"quantity"`
	UnitCents int64  `json:"unitCents"`
	Cents     int64  `json:"cents"`
}

// PriceSnapshot is the immutable, itemized price record created at admission
// time. Later administrative changes are recorded as AdjustmentNote deltas
// against this snapshot, never as snapshot mutation.
type PriceSnapshot struct {
	ServiceType              ServiceType `json:"serviceType"`
	Bedrooms                 int         `json:"bedrooms"`
	Bathrooms                int         `json:"bathrooms"`
	BaseCents                int64       `json:"baseCents"`
	BedroomCents             int64       `json:"bedroomCents"`
	BathroomCents            int64       `json:"bathroomCents"`
	Extras                   []ExtraLine `json:"extras"`
	ExtrasCents              int64       `json:"extrasCents"`
	SubtotalCents            int64       `json:"subtotalCents"`
	Frequency                Frequency   `json:"frequency"`
	FrequencyDiscountPercent float64     `json:"frequencyDiscountPercent"`
	FrequencyDiscountCents   int64       `json:"frequencyDiscountCents"`
	ServiceFeeCents          int64       `json:"serviceFeeCents"`
	SurgeActive              bool        `json:"surgeActive"`
	SurgePercentage          float64     `json:"surgePercentage"`
	SurgeCents               int64       `json:"surgeCents"`
	TotalCents               int64       `json:"totalCents"`
	SnapshotAt               time.Time   `json:"snapshotAt"`
}
