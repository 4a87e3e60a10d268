package ledger

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
)

// LedgerUseCase moves money in and out of accounts through admin-approved requests
type LedgerUseCase struct {
	uow          persistence.UnitOfWork
	txManager    *transaction.TransactionManager
	recorder     *outbox.Recorder
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	limits       entity.ListLimits
}

// NewLedgerUseCase creates a new ledger use case instance
func NewLedgerUseCase(
	txManager *transaction.TransactionManager,
	recorder *outbox.Recorder,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	limits entity.ListLimits,
) usecase.LedgerUseCase {
	return &LedgerUseCase{
		uow:          txManager.UnitOfWork(),
		txManager:    txManager,
		recorder:     recorder,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger,
		limits:       limits,
	}
}

// ListDeposits returns every deposit to admins and only the caller's own to everyone else
func (l *LedgerUseCase) ListDeposits(ctx context.Context, actor entity.Actor, filter entity.RequestFilter) ([]*entity.DepositRequest, error) {
	filter = l.scope(actor, filter)
	return l.uow.GetDepositRepository(ctx).List(ctx, filter)
}

// ListWithdrawals returns every withdrawal to admins and only the caller's own to everyone else
func (l *LedgerUseCase) ListWithdrawals(ctx context.Context, actor entity.Actor, filter entity.RequestFilter) ([]*entity.WithdrawalRequest, error) {
	filter = l.scope(actor, filter)
	return l.uow.GetWithdrawalRepository(ctx).List(ctx, filter)
}

func (l *LedgerUseCase) scope(actor entity.Actor, filter entity.RequestFilter) entity.RequestFilter {
	if !actor.IsAdmin {
		filter.UserID = actor.UserID
	}
	filter.Limit = l.limits.Clamp(filter.Limit)
	return filter
}
