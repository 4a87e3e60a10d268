package usecase

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// DepositResult is a deposit request together with the owner's balance after the operation
type DepositResult struct {
	Deposit *entity.DepositRequest
	Balance int64
}

// WithdrawalResult is a withdrawal request together with the owner's balance after the operation
type WithdrawalResult struct {
	Withdrawal *entity.WithdrawalRequest
	Balance    int64
}

// LedgerUseCase drives deposits and withdrawals through their approval lifecycle
type LedgerUseCase interface {
	// RequestDeposit records a pending deposit for the caller; the balance is unchanged
	RequestDeposit(ctx context.Context, actor entity.Actor, amount int64) (*DepositResult, error)

	// ApproveDeposit flips a pending deposit to approved and credits the owner (admin only)
	ApproveDeposit(ctx context.Context, actor entity.Actor, depositID string) (*DepositResult, error)

	// RejectDeposit flips a pending deposit to rejected without any balance effect (admin only)
	RejectDeposit(ctx context.Context, actor entity.Actor, depositID string) (*DepositResult, error)

	// ListDeposits lists all deposits for admins, or the caller's own otherwise
	ListDeposits(ctx context.Context, actor entity.Actor, filter entity.RequestFilter) ([]*entity.DepositRequest, error)

	// RequestWithdrawal locks the amount by debiting it and records a pending withdrawal
	RequestWithdrawal(ctx context.Context, actor entity.Actor, amount int64) (*WithdrawalResult, error)

	// ResolveWithdrawal marks a pending withdrawal processed or rejected (admin only);
	// rejection releases the locked amount back to the owner
	ResolveWithdrawal(ctx context.Context, actor entity.Actor, withdrawalID string, decision entity.RequestStatus) (*WithdrawalResult, error)

	// ListWithdrawals lists all withdrawals for admins, or the caller's own otherwise
	ListWithdrawals(ctx context.Context, actor entity.Actor, filter entity.RequestFilter) ([]*entity.WithdrawalRequest, error)
}
