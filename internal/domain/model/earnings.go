package model

import "time"

// PlatformFeePercent is the fixed commission retained from every order.
const PlatformFeePercent = 20

// NetAmountCents applies the platform fee to a gross amount.
func NetAmountCents(grossCents int64) int64 {
	return grossCents * (100 - PlatformFeePercent) / 100
}

// EarningsSnapshot is a seller's derived income view. Net figures are over
// COMPLETED orders only; pending figures over ACTIVE, DELIVERED and REVISION.
// The two sets are disjoint so no order is counted twice.
type EarningsSnapshot struct {
	NetIncomeCents        int64
	PendingClearanceCents int64
	WithdrawnCents        int64
	AvailableCents        int64
}

// Withdrawal records one payout from a seller's available earnings.
type Withdrawal struct {
	ID          int64
	UserID      int64
	AmountCents int64
	ProcessedAt time.Time
}
