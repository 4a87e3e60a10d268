package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
)

// SettlementReport summarizes one round settlement
type SettlementReport struct {
	Round       *entity.Round
	BetsSettled int
	Winners     int
	TotalStaked int64
	TotalPayout int64
	// Failures lists winning bets whose credit could not be applied; their
	// siblings and the round result are still committed
	Failures  []*errs.PayoutFailure
	SettledAt time.Time
}

// SettlementUseCase fixes a round's result and pays its winners exactly once
type SettlementUseCase interface {
	// SettleRound declares the result color and credits winners (admin only)
	SettleRound(ctx context.Context, actor entity.Actor, roundID, resultColor string) (*SettlementReport, error)
}
