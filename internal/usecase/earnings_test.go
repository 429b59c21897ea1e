package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	testhelpers "github.com/zervix/marketplace/internal/test"
)

func TestEarningsSnapshotAppliesPlatformFee(t *testing.T) {
	repo := &testhelpers.EarningsRepositoryStub{Completed: 95000, Pending: 40000}
	uc := NewEarningsUseCase(repo)

	snapshot, err := uc.Snapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("snapshot returned error: %v", err)
	}
	if snapshot.NetIncomeCents != 76000 {
		t.Fatalf("expected net income 76000, got %d", snapshot.NetIncomeCents)
	}
	if snapshot.PendingClearanceCents != 32000 {
		t.Fatalf("expected pending clearance 32000, got %d", snapshot.PendingClearanceCents)
	}
	if snapshot.AvailableCents != 76000 {
		t.Fatalf("expected available 76000, got %d", snapshot.AvailableCents)
	}
}

func TestEarningsSnapshotSubtractsWithdrawn(t *testing.T) {
	repo := &testhelpers.EarningsRepositoryStub{Completed: 100000, Withdrawn: 30000}
	uc := NewEarningsUseCase(repo)

	snapshot, err := uc.Snapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("snapshot returned error: %v", err)
	}
	if snapshot.NetIncomeCents != 80000 {
		t.Fatalf("expected net income 80000, got %d", snapshot.NetIncomeCents)
	}
	if snapshot.WithdrawnCents != 30000 {
		t.Fatalf("expected withdrawn 30000, got %d", snapshot.WithdrawnCents)
	}
	if snapshot.AvailableCents != 50000 {
		t.Fatalf("expected available 50000, got %d", snapshot.AvailableCents)
	}
}

func TestEarningsSnapshotZeroForNewSeller(t *testing.T) {
	repo := &testhelpers.EarningsRepositoryStub{}
	uc := NewEarningsUseCase(repo)

	snapshot, err := uc.Snapshot(context.Background(), 1)
	if err != nil {
		t.Fatalf("snapshot returned error: %v", err)
	}
	if snapshot.NetIncomeCents != 0 || snapshot.PendingClearanceCents != 0 || snapshot.AvailableCents != 0 {
		t.Fatalf("expected all-zero snapshot, got %+v", snapshot)
	}
}

func TestWithdrawValidatesAmount(t *testing.T) {
	repo := &testhelpers.EarningsRepositoryStub{}
	uc := NewEarningsUseCase(repo)

	if _, err := uc.Withdraw(context.Background(), 1, 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
	if _, err := uc.Withdraw(context.Background(), 1, -5); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for negative amount, got %v", err)
	}
	if len(repo.WithdrawCalls) != 0 {
		t.Fatalf("expected no repository calls, got %d", len(repo.WithdrawCalls))
	}
}

func TestWithdrawPropagatesInsufficientFunds(t *testing.T) {
	repo := &testhelpers.EarningsRepositoryStub{WithdrawErr: domainErrors.ErrInsufficientFunds}
	uc := NewEarningsUseCase(repo)

	if _, err := uc.Withdraw(context.Background(), 1, 100); !errors.Is(err, domainErrors.ErrInsufficientFunds) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
}

func TestWithdrawRecordsLedgerEntry(t *testing.T) {
	repo := &testhelpers.EarningsRepositoryStub{Completed: 100000}
	uc := NewEarningsUseCase(repo)

	withdrawal, err := uc.Withdraw(context.Background(), 1, 5000)
	if err != nil {
		t.Fatalf("withdraw returned error: %v", err)
	}
	if withdrawal.AmountCents != 5000 {
		t.Fatalf("expected amount 5000, got %d", withdrawal.AmountCents)
	}

	history, err := uc.WithdrawalsHistory(context.Background(), 1)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected one withdrawal in history, got %v err=%v", history, err)
	}
}
