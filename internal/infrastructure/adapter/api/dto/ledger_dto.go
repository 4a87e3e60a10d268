package dto

import (
	"time"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// AmountRequest is the body of deposit and withdrawal requests
type AmountRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

// ListRequestsQuery filters request listings
type ListRequestsQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected processed"`
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
}

// RequestResponse is the common shape of a deposit or withdrawal
type RequestResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Amount     int64      `json:"amount"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
}

// RequestWithBalanceResponse is returned by mutations, with the owner's balance afterwards
type RequestWithBalanceResponse struct {
	Request RequestResponse `json:"request"`
	Balance int64           `json:"balance"`
}

// NewDepositResponse maps a deposit request
func NewDepositResponse(d *entity.DepositRequest) RequestResponse {
	return RequestResponse{
		ID:         d.ID,
		UserID:     d.UserID,
		Amount:     d.Amount,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
		ResolvedAt: d.ResolvedAt,
		ResolvedBy: d.ResolvedBy,
	}
}

// NewWithdrawalResponse maps a withdrawal request
func NewWithdrawalResponse(w *entity.WithdrawalRequest) RequestResponse {
	return RequestResponse{
		ID:         w.ID,
		UserID:     w.UserID,
		Amount:     w.Amount,
		Status:     string(w.Status),
		CreatedAt:  w.CreatedAt,
		ResolvedAt: w.ResolvedAt,
		ResolvedBy: w.ResolvedBy,
	}
}

// NewDepositList maps a deposit listing
func NewDepositList(items []*entity.DepositRequest) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, d := range items {
		out = append(out, NewDepositResponse(d))
	}
	return out
}

// NewWithdrawalList maps a withdrawal listing
func NewWithdrawalList(items []*entity.WithdrawalRequest) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, w := range items {
		out = append(out, NewWithdrawalResponse(w))
	}
	return out
}
