package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// Bet is a stake on one color in one round; the stake is debited at placement
type Bet struct {
	ID        string
	UserID    string
	RoundID   string
	Color     string
	Amount    int64
	Payout    int64 // zero until a winning settlement
	CreatedAt time.Time
	SettledAt *time.Time
}

// NewBet creates an unsettled bet with a zero payout
func NewBet(id, userID, roundID, color string, amount int64, timeProvider coreport.TimeProvider) (*Bet, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	if color == "" {
		return nil, errs.ErrInvalidColor
	}
	return &Bet{
		ID:        id,
		UserID:    userID,
		RoundID:   roundID,
		Color:     color,
		Amount:    amount,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// Wins reports whether the bet matches the declared result
func (b *Bet) Wins(resultColor string) bool {
	return b.Color == resultColor
}

// IsSettled reports whether the payout has been fixed
func (b *Bet) IsSettled() bool {
	return b.SettledAt != nil
}

// Settle fixes the payout exactly once
func (b *Bet) Settle(payout int64, timeProvider coreport.TimeProvider) error {
	if b.IsSettled() {
		return errs.NewStateTransitionError("bet", b.ID, "settled", "settled", errs.ErrAlreadySettled)
	}
	if payout < 0 {
		return errs.ErrInvalidAmount
	}
	now := timeProvider.Now()
	b.Payout = payout
	b.SettledAt = &now
	return nil
}
