package ledger

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
)

// RequestDeposit records a pending deposit for the caller. The balance is untouched.
func (l *LedgerUseCase) RequestDeposit(ctx context.Context, actor entity.Actor, amount int64) (*usecase.DepositResult, error) {
	deposit, err := entity.NewDepositRequest(l.idGenerator.NewID(), actor.UserID, amount, l.timeProvider)
	if err != nil {
		return nil, err
	}

	var balance int64
	err = l.txManager.Execute(ctx, "request_deposit", func(txCtx context.Context) error {
		account, err := l.uow.GetAccountRepository(txCtx).GetByID(txCtx, actor.UserID)
		if err != nil {
			return err
		}
		balance = account.Balance()

		if err := l.uow.GetDepositRepository(txCtx).Create(txCtx, deposit); err != nil {
			return err
		}
		return l.recorder.Record(txCtx, entity.EventDepositRequested, deposit.ID, deposit.UserID, outbox.DepositPayload{
			DepositID: deposit.ID,
			UserID:    deposit.UserID,
			Amount:    deposit.Amount,
			Status:    deposit.Status,
		})
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("Deposit requested", map[string]any{
		"depositId": deposit.ID,
		"userId":    deposit.UserID,
		"amount":    deposit.Amount,
	})
	return &usecase.DepositResult{Deposit: deposit, Balance: balance}, nil
}

// ApproveDeposit flips a pending deposit to approved and credits its owner in the same transaction
func (l *LedgerUseCase) ApproveDeposit(ctx context.Context, actor entity.Actor, depositID string) (*usecase.DepositResult, error) {
	return l.resolveDeposit(ctx, actor, depositID, entity.StatusApproved, "approve_deposit")
}

// RejectDeposit flips a pending deposit to rejected; nothing is credited
func (l *LedgerUseCase) RejectDeposit(ctx context.Context, actor entity.Actor, depositID string) (*usecase.DepositResult, error) {
	return l.resolveDeposit(ctx, actor, depositID, entity.StatusRejected, "reject_deposit")
}

func (l *LedgerUseCase) resolveDeposit(
	ctx context.Context,
	actor entity.Actor,
	depositID string,
	target entity.RequestStatus,
	operation string,
) (*usecase.DepositResult, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	var result *usecase.DepositResult
	err := l.txManager.Execute(ctx, operation, func(txCtx context.Context) error {
		deposits := l.uow.GetDepositRepository(txCtx)
		accounts := l.uow.GetAccountRepository(txCtx)

		deposit, err := deposits.GetByID(txCtx, depositID)
		if err != nil {
			return err
		}
		if err := deposit.Resolve(target, actor.UserID, l.timeProvider); err != nil {
			return err
		}
		// Conditional on the stored row still being pending; a concurrent
		// resolution that committed first makes this fail with ErrAlreadyProcessed.
		if err := deposits.Resolve(txCtx, deposit); err != nil {
			return err
		}

		payload := outbox.DepositPayload{
			DepositID:  deposit.ID,
			UserID:     deposit.UserID,
			Amount:     deposit.Amount,
			Status:     deposit.Status,
			ResolvedBy: actor.UserID,
		}

		eventType := entity.EventDepositRejected
		var balance int64
		if target == entity.StatusApproved {
			eventType = entity.EventDepositApproved
			if balance, err = accounts.Credit(txCtx, deposit.UserID, deposit.Amount); err != nil {
				return err
			}
			payload.Balance = &balance
		} else {
			account, err := accounts.GetByID(txCtx, deposit.UserID)
			if err != nil {
				return err
			}
			balance = account.Balance()
		}

		if err := l.recorder.Record(txCtx, eventType, deposit.ID, deposit.UserID, payload); err != nil {
			return err
		}
		result = &usecase.DepositResult{Deposit: deposit, Balance: balance}
		return nil
	})
	if err != nil {
		l.logger.Warn("Deposit resolution failed", map[string]any{
			"depositId": depositID,
			"target":    string(target),
			"adminId":   actor.UserID,
			"error":     err.Error(),
		})
		return nil, err
	}

	l.logger.Info("Deposit resolved", map[string]any{
		"depositId": depositID,
		"userId":    result.Deposit.UserID,
		"status":    string(result.Deposit.Status),
		"amount":    result.Deposit.Amount,
		"balance":   result.Balance,
		"adminId":   actor.UserID,
	})
	return result, nil
}
