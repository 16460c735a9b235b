package domain

import "time"

// AdjustmentKind distinguishes the two administrative override paths
type AdjustmentKind string

const (
	AdjustmentEarnings AdjustmentKind = "earnings"
	AdjustmentSchedule AdjustmentKind = "schedule"
)

// AdjustmentNote is an append-only audit entry for a manual change to an
// already-admitted booking. Notes are never rewritten or deleted; the current
// effective value is the snapshot value plus the sum of all deltas.
type AdjustmentNote struct {
	ID        string
	BookingID string
	ActorID   string
	Kind      AdjustmentKind
	Reason    string

	// Earnings adjustment
	AmountDeltaCents *int64

	// Schedule adjustment
	PreviousDate *string // YYYY-MM-DD
	NewDate      *string
	PreviousTime *string // HH:MM
	NewTime      *string

	FreeText  *string
	CreatedAt time.Time
}

// EffectiveEarnings applies a sequence of notes to a base earnings amount.
// Schedule notes carry no amount delta and are skipped.
func EffectiveEarnings(baseCents int64, notes []*AdjustmentNote) int64 {
	total := baseCents
	for _, n := range notes {
		if n.Kind == AdjustmentEarnings && n.AmountDeltaCents != nil {
			total += *n.AmountDeltaCents
		}
	}
	return total
}
