package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// RoundRepository stores rounds
type RoundRepository interface {
	// Create stores a new open round
	Create(ctx context.Context, round *entity.Round) error

	// GetByID retrieves a round without locking it
	//
	// Possible errors:
	// - ErrRoundNotFound: If the round doesn't exist
	GetByID(ctx context.Context, id string) (*entity.Round, error)

	// GetForBet retrieves a round holding a shared lock until the transaction
	// ends, so a concurrent settlement waits for in-flight bets
	//
	// Possible errors:
	// - ErrRoundNotFound: If the round doesn't exist
	GetForBet(ctx context.Context, id string) (*entity.Round, error)

	// Settle records the result carried by round, but only while the stored
	// row has no result
	//
	// Possible errors:
	// - ErrRoundNotFound: If the round doesn't exist
	// - ErrAlreadySettled: If the round already has a result
	Settle(ctx context.Context, round *entity.Round) error

	// ListRecent returns the newest rounds first
	ListRecent(ctx context.Context, limit int) ([]*entity.Round, error)
}

// BetRepository stores bets
type BetRepository interface {
	// Create stores a new unsettled bet
	Create(ctx context.Context, bet *entity.Bet) error

	// ListByRound returns every bet on a round in placement order
	ListByRound(ctx context.Context, roundID string) ([]*entity.Bet, error)

	// ListByUser returns a user's bets newest first
	ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Bet, error)

	// Settle writes the payout carried by bet, but only while the stored row is unsettled
	//
	// Possible errors:
	// - ErrNotFound: If the bet doesn't exist
	// - ErrAlreadySettled: If the bet was already settled
	Settle(ctx context.Context, bet *entity.Bet) error
}
