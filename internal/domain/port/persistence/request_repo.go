package persistence

import (
	"context"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
)

// DepositRepository stores deposit requests
type DepositRepository interface {
	// Create stores a new pending deposit request
	Create(ctx context.Context, deposit *entity.DepositRequest) error

	// GetByID retrieves a deposit request
	//
	// Possible errors:
	// - ErrDepositNotFound: If the request doesn't exist
	GetByID(ctx context.Context, id string) (*entity.DepositRequest, error)

	// Resolve writes the terminal status carried by deposit, but only while the
	// stored row is still pending
	//
	// Possible errors:
	// - ErrDepositNotFound: If the request doesn't exist
	// - ErrAlreadyProcessed: If another resolution already won
	Resolve(ctx context.Context, deposit *entity.DepositRequest) error

	// List returns requests newest first
	List(ctx context.Context, filter entity.RequestFilter) ([]*entity.DepositRequest, error)
}

// WithdrawalRepository stores withdrawal requests
type WithdrawalRepository interface {
	// Create stores a new pending withdrawal request
	Create(ctx context.Context, withdrawal *entity.WithdrawalRequest) error

	// GetByID retrieves a withdrawal request
	//
	// Possible errors:
	// - ErrWithdrawalNotFound: If the request doesn't exist
	GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error)

	// Resolve writes the terminal status carried by withdrawal, but only while
	// the stored row is still pending
	//
	// Possible errors:
	// - ErrWithdrawalNotFound: If the request doesn't exist
	// - ErrAlreadyProcessed: If another resolution already won
	Resolve(ctx context.Context, withdrawal *entity.WithdrawalRequest) error

	// List returns requests newest first
	List(ctx context.Context, filter entity.RequestFilter) ([]*entity.WithdrawalRequest, error)
}
