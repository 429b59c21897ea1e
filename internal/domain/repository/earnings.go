package repository

import (
	"context"

	"github.com/zervix/marketplace/internal/domain/model"
)

// EarningsRepository derives income figures from order state. GrossTotals is
// read-only over orders; Withdraw appends to the withdrawal ledger after a
// locked check against the seller's available amount.
type EarningsRepository interface {
	GrossTotals(ctx context.Context, sellerID int64) (completedCents, pendingCents int64, err error)
	WithdrawnTotal(ctx context.Context, sellerID int64) (int64, error)
	Withdraw(ctx context.Context, sellerID, amountCents int64) (*model.Withdrawal, error)
	ListWithdrawals(ctx context.Context, sellerID int64) ([]model.Withdrawal, error)
}
