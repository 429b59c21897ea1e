package dto

import "time"

// EarningsResponse is the seller's income snapshot.
type EarningsResponse struct {
	NetIncomeCents        int64 `json:"net_income_cents"`
	PendingClearanceCents int64 `json:"pending_clearance_cents"`
	WithdrawnCents        int64 `json:"withdrawn_cents"`
	AvailableCents        int64 `json:"available_cents"`
}

// WithdrawRequest describes a payout request.
type WithdrawRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

// WithdrawalResponse describes one withdrawal ledger entry.
type WithdrawalResponse struct {
	ID          int64     `json:"id"`
	AmountCents int64     `json:"amount_cents"`
	ProcessedAt time.Time `json:"processed_at"`
}
