package round

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
)

// PlaceBet debits the stake and records the bet in one transaction.
//
// The round is read with a shared lock, so a settlement that starts while the
// bet is in flight waits for it and then pays it; a bet that arrives after the
// settlement committed sees the result and fails with ErrRoundClosed.
func (r *RoundUseCase) PlaceBet(ctx context.Context, actor entity.Actor, roundID, color string, amount int64) (*usecase.BetResult, error) {
	if roundID == "" {
		return nil, errs.ErrInvalidInput
	}
	color, err := r.payouts.ValidateColor(color)
	if err != nil {
		return nil, err
	}
	bet, err := entity.NewBet(r.idGenerator.NewID(), actor.UserID, roundID, color, amount, r.timeProvider)
	if err != nil {
		return nil, err
	}

	var balance int64
	err = r.txManager.Execute(ctx, "place_bet", func(txCtx context.Context) error {
		round, err := r.uow.GetRoundRepository(txCtx).GetForBet(txCtx, roundID)
		if err != nil {
			return err
		}
		if err := round.AcceptBet(); err != nil {
			return err
		}

		if balance, err = r.uow.GetAccountRepository(txCtx).Debit(txCtx, actor.UserID, amount); err != nil {
			return err
		}
		if err := r.uow.GetBetRepository(txCtx).Create(txCtx, bet); err != nil {
			return err
		}
		return r.recorder.Record(txCtx, entity.EventBetPlaced, bet.ID, bet.UserID, outbox.BetPayload{
			BetID:   bet.ID,
			RoundID: bet.RoundID,
			UserID:  bet.UserID,
			Color:   bet.Color,
			Amount:  bet.Amount,
			Balance: balance,
		})
	})
	if err != nil {
		r.logger.Debug("Bet rejected", map[string]any{
			"roundId": roundID,
			"userId":  actor.UserID,
			"amount":  amount,
			"error":   err.Error(),
		})
		return nil, err
	}

	r.logger.Info("Bet placed", map[string]any{
		"betId":   bet.ID,
		"roundId": roundID,
		"userId":  actor.UserID,
		"color":   bet.Color,
		"amount":  amount,
		"balance": balance,
	})
	return &usecase.BetResult{Bet: bet, Balance: balance}, nil
}
