package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// RoundStatus is derived from whether a result has been declared
type RoundStatus string

// Round statuses
const (
	RoundOpen    RoundStatus = "open"
	RoundSettled RoundStatus = "settled"
)

// Round is a single betting event with one eventual result color
type Round struct {
	ID          string
	ResultColor *string // nil while open
	CreatedBy   string
	CreatedAt   time.Time
	SettledAt   *time.Time
}

// NewRound creates an open round
func NewRound(id, createdBy string, timeProvider coreport.TimeProvider) *Round {
	return &Round{
		ID:        id,
		CreatedBy: createdBy,
		CreatedAt: timeProvider.Now(),
	}
}

// IsOpen reports whether bets are still accepted
func (r *Round) IsOpen() bool {
	return r.ResultColor == nil
}

// Status returns open or settled
func (r *Round) Status() RoundStatus {
	if r.IsOpen() {
		return RoundOpen
	}
	return RoundSettled
}

// Result returns the declared color, or empty while open
func (r *Round) Result() string {
	if r.ResultColor == nil {
		return ""
	}
	return *r.ResultColor
}

// AcceptBet fails with ErrRoundClosed once the round is settled
func (r *Round) AcceptBet() error {
	if !r.IsOpen() {
		return errs.ErrRoundClosed
	}
	return nil
}

// Settle declares the result; a round can only be settled once
func (r *Round) Settle(color string, timeProvider coreport.TimeProvider) error {
	if !r.IsOpen() {
		return errs.NewStateTransitionError("round", r.ID, string(RoundSettled), string(RoundSettled), errs.ErrAlreadySettled)
	}
	now := timeProvider.Now()
	r.ResultColor = &color
	r.SettledAt = &now
	return nil
}
