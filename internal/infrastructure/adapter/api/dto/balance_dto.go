package dto

import (
	"time"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
)

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID  string `json:"user_id"`
	Balance int64  `json:"balance"`
}

// NewBalanceResponse maps a balance snapshot
func NewBalanceResponse(view *usecase.BalanceView) BalanceResponse {
	return BalanceResponse{UserID: view.UserID, Balance: view.Balance}
}

// AccountResponse is the public view of an account
type AccountResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Balance   int64     `json:"balance"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// NewAccountResponse maps an account without its password hash
func NewAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Balance:   a.Balance(),
		IsAdmin:   a.IsAdmin,
		CreatedAt: a.CreatedAt,
	}
}
