package usecase

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// BetResult is a placed bet together with the bettor's balance after the stake was debited
type BetResult struct {
	Bet     *entity.Bet
	Balance int64
}

// RoundUseCase owns the round lifecycle and bet placement
type RoundUseCase interface {
	// CreateRound opens a new round (admin only)
	CreateRound(ctx context.Context, actor entity.Actor) (*entity.Round, error)

	// GetRound returns a single round
	GetRound(ctx context.Context, roundID string) (*entity.Round, error)

	// ListRounds returns the most recent rounds; limit <= 0 uses the configured default
	ListRounds(ctx context.Context, limit int) ([]*entity.Round, error)

	// PlaceBet debits the stake and records the bet against an open round
	PlaceBet(ctx context.Context, actor entity.Actor, roundID, color string, amount int64) (*BetResult, error)

	// ListBetsForUser returns the caller's bets newest first
	ListBetsForUser(ctx context.Context, actor entity.Actor, limit int) ([]*entity.Bet, error)
}
