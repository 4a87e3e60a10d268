package usecase

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// BalanceView is a read-only balance snapshot
type BalanceView struct {
	UserID  string
	Balance int64
}

// AccountUseCase defines account registration, authentication and balance reads
type AccountUseCase interface {
	// Register creates a non-admin account with a zero balance
	Register(ctx context.Context, username, password string) (*entity.Account, error)

	// Authenticate verifies credentials and returns the account
	Authenticate(ctx context.Context, username, password string) (*entity.Account, error)

	// GetProfile returns the caller's own account
	GetProfile(ctx context.Context, actor entity.Actor) (*entity.Account, error)

	// GetBalance returns a balance snapshot; non-admins may only read their own
	GetBalance(ctx context.Context, actor entity.Actor, userID string) (*BalanceView, error)

	// EnsureAdmin creates an admin account or promotes an existing one.
	// The boolean reports whether a new account was created.
	EnsureAdmin(ctx context.Context, username, password string) (*entity.Account, bool, error)
}
