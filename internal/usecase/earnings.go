package usecase

import (
	"context"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/domain/repository"
)

// EarningsUseCase derives a seller's income view from order state. It never
// mutates orders; the only write path is the withdrawal ledger.
type EarningsUseCase struct {
	earnings repository.EarningsRepository
}

// NewEarningsUseCase constructs EarningsUseCase.
func NewEarningsUseCase(earnings repository.EarningsRepository) *EarningsUseCase {
	return &EarningsUseCase{earnings: earnings}
}

// Snapshot computes the seller's earned and pending figures. Earned sums run
// over COMPLETED orders only, pending over ACTIVE/DELIVERED/REVISION; the
// status sets are disjoint so no order is counted twice.
func (u *EarningsUseCase) Snapshot(ctx context.Context, sellerID int64) (*model.EarningsSnapshot, error) {
	completedGross, pendingGross, err := u.earnings.GrossTotals(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	withdrawn, err := u.earnings.WithdrawnTotal(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	net := model.NetAmountCents(completedGross)
	return &model.EarningsSnapshot{
		NetIncomeCents:        net,
		PendingClearanceCents: model.NetAmountCents(pendingGross),
		WithdrawnCents:        withdrawn,
		AvailableCents:        net - withdrawn,
	}, nil
}

// Withdraw moves part of the available balance into the withdrawal ledger.
func (u *EarningsUseCase) Withdraw(ctx context.Context, sellerID, amountCents int64) (*model.Withdrawal, error) {
	if amountCents <= 0 {
		return nil, domainErrors.ErrValidation
	}
	return u.earnings.Withdraw(ctx, sellerID, amountCents)
}

// WithdrawalsHistory returns the seller's withdrawals, newest first.
func (u *EarningsUseCase) WithdrawalsHistory(ctx context.Context, sellerID int64) ([]model.Withdrawal, error) {
	return u.earnings.ListWithdrawals(ctx, sellerID)
}
