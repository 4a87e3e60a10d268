package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Savepoint marks a point inside the current transaction that can be rolled back to
	Savepoint(ctx context.Context, name string) error

	// RollbackTo undoes everything after the named savepoint, keeping the transaction open
	RollbackTo(ctx context.Context, name string) error

	// Ping checks that the store is reachable
	Ping(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetDepositRepository returns a deposit repository bound to the current transaction
	GetDepositRepository(ctx context.Context) DepositRepository

	// GetWithdrawalRepository returns a withdrawal repository bound to the current transaction
	GetWithdrawalRepository(ctx context.Context) WithdrawalRepository

	// GetRoundRepository returns a round repository bound to the current transaction
	GetRoundRepository(ctx context.Context) RoundRepository

	// GetBetRepository returns a bet repository bound to the current transaction
	GetBetRepository(ctx context.Context) BetRepository

	// GetOutboxRepository returns an outbox repository bound to the current transaction
	GetOutboxRepository(ctx context.Context) OutboxRepository
}
