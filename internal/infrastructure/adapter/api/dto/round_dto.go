package dto

import (
	"time"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
)

// PlaceBetRequest is the body of POST /api/bets
type PlaceBetRequest struct {
	RoundID string `json:"round_id" binding:"required"`
	Color   string `json:"color" binding:"required,wagercolor"`
	Amount  int64  `json:"amount" binding:"required,gt=0"`
}

// SettleRoundRequest is the body of the settle endpoint
type SettleRoundRequest struct {
	ResultColor string `json:"result_color" binding:"required,wagercolor"`
}

// LimitQuery bounds a listing
type LimitQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// RoundResponse is the public view of a round
type RoundResponse struct {
	ID          string     `json:"id"`
	Status      string     `json:"status"`
	ResultColor *string    `json:"result_color"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	SettledAt   *time.Time `json:"settled_at,omitempty"`
}

// NewRoundResponse maps a round
func NewRoundResponse(r *entity.Round) RoundResponse {
	return RoundResponse{
		ID:          r.ID,
		Status:      string(r.Status()),
		ResultColor: r.ResultColor,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		SettledAt:   r.SettledAt,
	}
}

// NewRoundList maps a round listing
func NewRoundList(rounds []*entity.Round) []RoundResponse {
	out := make([]RoundResponse, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, NewRoundResponse(r))
	}
	return out
}

// BetResponse is the public view of a bet
type BetResponse struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	RoundID   string     `json:"round_id"`
	Color     string     `json:"color"`
	Amount    int64      `json:"amount"`
	Payout    int64      `json:"payout"`
	CreatedAt time.Time  `json:"created_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// NewBetResponse maps a bet
func NewBetResponse(b *entity.Bet) BetResponse {
	return BetResponse{
		ID:        b.ID,
		UserID:    b.UserID,
		RoundID:   b.RoundID,
		Color:     b.Color,
		Amount:    b.Amount,
		Payout:    b.Payout,
		CreatedAt: b.CreatedAt,
		SettledAt: b.SettledAt,
	}
}

// NewBetList maps a bet listing
func NewBetList(bets []*entity.Bet) []BetResponse {
	out := make([]BetResponse, 0, len(bets))
	for _, b := range bets {
		out = append(out, NewBetResponse(b))
	}
	return out
}

// PlaceBetResponse is the placed bet and the bettor's balance afterwards
type PlaceBetResponse struct {
	Bet     BetResponse `json:"bet"`
	Balance int64       `json:"balance"`
}

// PayoutFailureResponse describes a winning bet that could not be paid
type PayoutFailureResponse struct {
	BetID  string `json:"bet_id"`
	UserID string `json:"user_id"`
	Payout int64  `json:"payout"`
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

// SettlementResponse summarizes a settlement
type SettlementResponse struct {
	Round       RoundResponse           `json:"round"`
	BetsSettled int                     `json:"bets_settled"`
	Winners     int                     `json:"winners"`
	TotalStaked int64                   `json:"total_staked"`
	TotalPayout int64                   `json:"total_payout"`
	Failures    []PayoutFailureResponse `json:"failures"`
}

// NewSettlementResponse maps a settlement report; codeOf classifies each failure
func NewSettlementResponse(report *usecase.SettlementReport, codeOf func(error) int) SettlementResponse {
	failures := make([]PayoutFailureResponse, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, PayoutFailureResponse{
			BetID:  f.BetID,
			UserID: f.UserID,
			Payout: f.Payout,
			Code:   codeOf(f.Err),
			Reason: f.Err.Error(),
		})
	}
	return SettlementResponse{
		Round:       NewRoundResponse(report.Round),
		BetsSettled: report.BetsSettled,
		Winners:     report.Winners,
		TotalStaked: report.TotalStaked,
		TotalPayout: report.TotalPayout,
		Failures:    failures,
	}
}
