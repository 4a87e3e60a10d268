package round

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
)

// RoundUseCase opens rounds and takes bets on them
type RoundUseCase struct {
	uow          persistence.UnitOfWork
	txManager    *transaction.TransactionManager
	recorder     *outbox.Recorder
	payouts      *entity.PayoutTable
	idGenerator  coreport.IDGenerator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	limits       entity.ListLimits
}

// NewRoundUseCase creates a new round use case instance
func NewRoundUseCase(
	txManager *transaction.TransactionManager,
	recorder *outbox.Recorder,
	payouts *entity.PayoutTable,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	limits entity.ListLimits,
) usecase.RoundUseCase {
	return &RoundUseCase{
		uow:          txManager.UnitOfWork(),
		txManager:    txManager,
		recorder:     recorder,
		payouts:      payouts,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger,
		limits:       limits,
	}
}

// CreateRound opens a new round
func (r *RoundUseCase) CreateRound(ctx context.Context, actor entity.Actor) (*entity.Round, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}

	round := entity.NewRound(r.idGenerator.NewID(), actor.UserID, r.timeProvider)
	err := r.txManager.Execute(ctx, "create_round", func(txCtx context.Context) error {
		if err := r.uow.GetRoundRepository(txCtx).Create(txCtx, round); err != nil {
			return err
		}
		return r.recorder.Record(txCtx, entity.EventRoundCreated, round.ID, actor.UserID, outbox.RoundPayload{
			RoundID:   round.ID,
			CreatedBy: round.CreatedBy,
			CreatedAt: round.CreatedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("Round created", map[string]any{
		"roundId": round.ID,
		"adminId": actor.UserID,
	})
	return round, nil
}

// GetRound returns a single round
func (r *RoundUseCase) GetRound(ctx context.Context, roundID string) (*entity.Round, error) {
	if roundID == "" {
		return nil, errs.ErrInvalidInput
	}
	return r.uow.GetRoundRepository(ctx).GetByID(ctx, roundID)
}

// ListRounds returns the most recent rounds first
func (r *RoundUseCase) ListRounds(ctx context.Context, limit int) ([]*entity.Round, error) {
	return r.uow.GetRoundRepository(ctx).ListRecent(ctx, r.limits.Clamp(limit))
}

// ListBetsForUser returns the caller's bets newest first
func (r *RoundUseCase) ListBetsForUser(ctx context.Context, actor entity.Actor, limit int) ([]*entity.Bet, error) {
	return r.uow.GetBetRepository(ctx).ListByUser(ctx, actor.UserID, r.limits.Clamp(limit))
}
