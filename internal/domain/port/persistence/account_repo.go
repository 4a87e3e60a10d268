package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// AccountRepository is the sole writer of account balances
type AccountRepository interface {
	// Create stores a new account
	//
	// Possible errors:
	// - ErrDuplicateUser: If the username is already taken
	// - ErrStoreFailure: If the store cannot be reached
	Create(ctx context.Context, account *entity.Account) error

	// GetByID retrieves an account snapshot
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	GetByID(ctx context.Context, id string) (*entity.Account, error)

	// GetByUsername retrieves an account by its login name
	//
	// Possible errors:
	// - ErrUserNotFound: If no account has this username
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Credit increments the balance and returns the new balance
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	// - ErrInvalidAmount: If amount is not positive
	Credit(ctx context.Context, id string, amount int64) (int64, error)

	// Debit decrements the balance only if it covers the amount, as one atomic
	// check-and-apply step, and returns the new balance
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	// - ErrInsufficientBalance: If the balance is lower than amount
	// - ErrInvalidAmount: If amount is not positive
	Debit(ctx context.Context, id string, amount int64) (int64, error)

	// SetAdmin grants admin privileges
	//
	// Possible errors:
	// - ErrUserNotFound: If the account doesn't exist
	SetAdmin(ctx context.Context, id string) error
}
