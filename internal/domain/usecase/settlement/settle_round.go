package settlement

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
)

// SettlementUseCase declares round results and pays winners
type SettlementUseCase struct {
	uow          persistence.UnitOfWork
	txManager    *transaction.TransactionManager
	recorder     *outbox.Recorder
	payouts      *entity.PayoutTable
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewSettlementUseCase creates a new settlement use case instance
func NewSettlementUseCase(
	txManager *transaction.TransactionManager,
	recorder *outbox.Recorder,
	payouts *entity.PayoutTable,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) usecase.SettlementUseCase {
	return &SettlementUseCase{
		uow:          txManager.UnitOfWork(),
		txManager:    txManager,
		recorder:     recorder,
		payouts:      payouts,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// SettleRound sets the round's result and settles every bet on it in one
// transaction. The conditional result write makes a second settlement fail
// with ErrAlreadySettled before any credit is applied.
//
// Each bet is paid behind its own savepoint: if one winner's credit fails, that
// bet is left unsettled and reported in the returned report while the result
// and all other payouts still commit.
func (s *SettlementUseCase) SettleRound(ctx context.Context, actor entity.Actor, roundID, resultColor string) (*usecase.SettlementReport, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if roundID == "" {
		return nil, errs.ErrInvalidInput
	}
	color, err := s.payouts.ValidateColor(resultColor)
	if err != nil {
		return nil, err
	}

	var report *usecase.SettlementReport
	err = s.txManager.Execute(ctx, "settle_round", func(txCtx context.Context) error {
		report = nil

		rounds := s.uow.GetRoundRepository(txCtx)
		round, err := rounds.GetByID(txCtx, roundID)
		if err != nil {
			return err
		}
		if err := round.Settle(color, s.timeProvider); err != nil {
			return err
		}
		if err := rounds.Settle(txCtx, round); err != nil {
			return err
		}

		bets, err := s.uow.GetBetRepository(txCtx).ListByRound(txCtx, roundID)
		if err != nil {
			return err
		}

		attempt := &usecase.SettlementReport{Round: round, SettledAt: *round.SettledAt}
		for i, bet := range bets {
			if err := s.settleBet(txCtx, i, bet, color, attempt); err != nil {
				return err
			}
		}

		if err := s.recorder.Record(txCtx, entity.EventRoundSettled, round.ID, actor.UserID, settlementPayload(attempt)); err != nil {
			return err
		}
		report = attempt
		return nil
	})
	if err != nil {
		s.logger.Warn("Round settlement failed", map[string]any{
			"roundId":     roundID,
			"resultColor": color,
			"adminId":     actor.UserID,
			"error":       err.Error(),
		})
		return nil, err
	}

	for _, failure := range report.Failures {
		s.logger.Error("Winning bet could not be paid", failure.LogFields())
	}
	s.metrics.RecordSettlement(report.Winners, len(report.Failures), report.TotalPayout)
	s.logger.Info("Round settled", map[string]any{
		"roundId":      roundID,
		"resultColor":  color,
		"bets":         report.BetsSettled,
		"winners":      report.Winners,
		"failures":     len(report.Failures),
		"total_staked": report.TotalStaked,
		"total_payout": report.TotalPayout,
		"adminId":      actor.UserID,
	})
	return report, nil
}

// settleBet pays one bet behind a savepoint and folds the outcome into the report.
// Only savepoint failures and store conflicts are returned; both abandon the
// attempt and the conflict case is replayed by the transaction manager.
func (s *SettlementUseCase) settleBet(txCtx context.Context, index int, bet *entity.Bet, color string, report *usecase.SettlementReport) error {
	report.TotalStaked += bet.Amount

	payout, err := s.payouts.Payout(bet, color)
	if err != nil {
		report.Failures = append(report.Failures, errs.NewPayoutFailure(bet.ID, bet.UserID, 0, err))
		return nil
	}

	stepErr, err := s.txManager.Isolate(txCtx, fmt.Sprintf("settle_bet_%d", index), func() error {
		if payout > 0 {
			if _, err := s.uow.GetAccountRepository(txCtx).Credit(txCtx, bet.UserID, payout); err != nil {
				return err
			}
		}
		if err := bet.Settle(payout, s.timeProvider); err != nil {
			return err
		}
		return s.uow.GetBetRepository(txCtx).Settle(txCtx, bet)
	})
	if err != nil {
		return err
	}
	if errs.IsRetryable(stepErr) {
		// a serialization conflict invalidates the whole snapshot, not just this bet
		return stepErr
	}
	if stepErr != nil {
		report.Failures = append(report.Failures, errs.NewPayoutFailure(bet.ID, bet.UserID, payout, stepErr))
		return nil
	}

	report.BetsSettled++
	if payout > 0 {
		report.Winners++
		report.TotalPayout += payout
	}
	return nil
}

func settlementPayload(report *usecase.SettlementReport) outbox.SettlementPayload {
	payload := outbox.SettlementPayload{
		RoundID:     report.Round.ID,
		ResultColor: report.Round.Result(),
		BetsSettled: report.BetsSettled,
		Winners:     report.Winners,
		TotalStaked: report.TotalStaked,
		TotalPayout: report.TotalPayout,
		SettledAt:   report.SettledAt,
	}
	for _, f := range report.Failures {
		payload.FailedBets = append(payload.FailedBets, f.BetID)
	}
	return payload
}
