package ledger

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
)

// RequestWithdrawal debits the amount up front and records a pending withdrawal.
// When the balance does not cover the amount nothing is written.
func (l *LedgerUseCase) RequestWithdrawal(ctx context.Context, actor entity.Actor, amount int64) (*usecase.WithdrawalResult, error) {
	withdrawal, err := entity.NewWithdrawalRequest(l.idGenerator.NewID(), actor.UserID, amount, l.timeProvider)
	if err != nil {
		return nil, err
	}

	var balance int64
	err = l.txManager.Execute(ctx, "request_withdrawal", func(txCtx context.Context) error {
		var err error
		if balance, err = l.uow.GetAccountRepository(txCtx).Debit(txCtx, actor.UserID, amount); err != nil {
			return err
		}
		if err := l.uow.GetWithdrawalRepository(txCtx).Create(txCtx, withdrawal); err != nil {
			return err
		}
		return l.recorder.Record(txCtx, entity.EventWithdrawalRequested, withdrawal.ID, withdrawal.UserID, outbox.WithdrawalPayload{
			WithdrawalID: withdrawal.ID,
			UserID:       withdrawal.UserID,
			Amount:       withdrawal.Amount,
			Status:       withdrawal.Status,
			Balance:      balance,
		})
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("Withdrawal requested", map[string]any{
		"withdrawalId": withdrawal.ID,
		"userId":       withdrawal.UserID,
		"amount":       withdrawal.Amount,
		"balance":      balance,
	})
	return &usecase.WithdrawalResult{Withdrawal: withdrawal, Balance: balance}, nil
}

// ResolveWithdrawal marks a pending withdrawal processed (the debit stands) or
// rejected (the amount is credited back)
func (l *LedgerUseCase) ResolveWithdrawal(
	ctx context.Context,
	actor entity.Actor,
	withdrawalID string,
	decision entity.RequestStatus,
) (*usecase.WithdrawalResult, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if decision != entity.StatusProcessed && decision != entity.StatusRejected {
		return nil, errs.ErrInvalidDecision
	}

	var result *usecase.WithdrawalResult
	err := l.txManager.Execute(ctx, "resolve_withdrawal", func(txCtx context.Context) error {
		withdrawals := l.uow.GetWithdrawalRepository(txCtx)
		accounts := l.uow.GetAccountRepository(txCtx)

		withdrawal, err := withdrawals.GetByID(txCtx, withdrawalID)
		if err != nil {
			return err
		}
		if err := withdrawal.Resolve(decision, actor.UserID, l.timeProvider); err != nil {
			return err
		}
		if err := withdrawals.Resolve(txCtx, withdrawal); err != nil {
			return err
		}

		var balance int64
		if withdrawal.ReleasesFunds() {
			if balance, err = accounts.Credit(txCtx, withdrawal.UserID, withdrawal.Amount); err != nil {
				return err
			}
		} else {
			account, err := accounts.GetByID(txCtx, withdrawal.UserID)
			if err != nil {
				return err
			}
			balance = account.Balance()
		}

		eventType := entity.EventWithdrawalProcessed
		if decision == entity.StatusRejected {
			eventType = entity.EventWithdrawalRejected
		}
		if err := l.recorder.Record(txCtx, eventType, withdrawal.ID, withdrawal.UserID, outbox.WithdrawalPayload{
			WithdrawalID: withdrawal.ID,
			UserID:       withdrawal.UserID,
			Amount:       withdrawal.Amount,
			Status:       withdrawal.Status,
			Balance:      balance,
			ResolvedBy:   actor.UserID,
		}); err != nil {
			return err
		}

		result = &usecase.WithdrawalResult{Withdrawal: withdrawal, Balance: balance}
		return nil
	})
	if err != nil {
		l.logger.Warn("Withdrawal resolution failed", map[string]any{
			"withdrawalId": withdrawalID,
			"decision":     string(decision),
			"adminId":      actor.UserID,
			"error":        err.Error(),
		})
		return nil, err
	}

	l.logger.Info("Withdrawal resolved", map[string]any{
		"withdrawalId": withdrawalID,
		"userId":       result.Withdrawal.UserID,
		"status":       string(result.Withdrawal.Status),
		"amount":       result.Withdrawal.Amount,
		"balance":      result.Balance,
		"adminId":      actor.UserID,
	})
	return result, nil
}
