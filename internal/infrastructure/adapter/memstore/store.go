// Package memstore is an in-process implementation of the persistence ports.
// Transactions are fully serialized: Begin takes the store's single write
// slot and works on a private copy of the data, which Commit publishes.
// It backs the "memory" database driver and the use case tests.
package memstore

import (
	"context"
	"fmt"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
)

type contextKey string

const txKey contextKey = "memstore.tx"

// Store holds all ledger data in memory
type Store struct {
	slot         chan struct{} // capacity 1; held by the active transaction
	data         *state
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	pingErr      error
}

type memTx struct {
	work       *state
	savepoints map[string]*state
	done       bool
}

// NewStore creates an empty store
func NewStore(logger coreport.Logger, timeProvider coreport.TimeProvider) *Store {
	return &Store{
		slot:         make(chan struct{}, 1),
		data:         newState(),
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// SetUnavailable makes Ping and Begin fail with err until called with nil
func (s *Store) SetUnavailable(err error) {
	s.acquireBlocking()
	defer s.release()
	s.pingErr = err
}

// NewUnitOfWork returns a unit of work over the store
func (s *Store) NewUnitOfWork() persistence.UnitOfWork {
	return &UnitOfWork{store: s}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: waiting for transaction slot: %s", errs.ErrStoreFailure, ctx.Err())
	}
}

func (s *Store) acquireBlocking() {
	s.slot <- struct{}{}
}

func (s *Store) release() {
	<-s.slot
}

// UnitOfWork implements persistence.UnitOfWork over a Store
type UnitOfWork struct {
	store *Store
}

// Begin claims the store and starts a transaction on a private copy of the data
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if _, ok := ctx.Value(txKey).(*memTx); ok {
		return ctx, fmt.Errorf("%w: nested transactions are not supported", errs.ErrInternalServer)
	}
	if err := u.store.acquire(ctx); err != nil {
		return ctx, err
	}
	if u.store.pingErr != nil {
		err := u.store.pingErr
		u.store.release()
		return ctx, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err)
	}

	tx := &memTx{work: u.store.data.clone(), savepoints: make(map[string]*state)}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit publishes the transaction's copy and releases the store
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*memTx)
	if !ok {
		return fmt.Errorf("no transaction found in context")
	}
	if tx.done {
		u.store.logger.Warn("Transaction has already been committed or rolled back", nil)
		return nil
	}
	u.store.data = tx.work
	tx.done = true
	u.store.release()
	return nil
}

// Rollback discards the transaction's copy and releases the store
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*memTx)
	if !ok {
		return fmt.Errorf("no transaction found in context")
	}
	if tx.done {
		return nil
	}
	tx.done = true
	u.store.release()
	return nil
}

// Savepoint snapshots the transaction's current copy
func (u *UnitOfWork) Savepoint(ctx context.Context, name string) error {
	tx, ok := ctx.Value(txKey).(*memTx)
	if !ok || tx.done {
		return fmt.Errorf("savepoint %s requires an open transaction", name)
	}
	tx.savepoints[name] = tx.work.clone()
	return nil
}

// RollbackTo restores the snapshot taken by Savepoint
func (u *UnitOfWork) RollbackTo(ctx context.Context, name string) error {
	tx, ok := ctx.Value(txKey).(*memTx)
	if !ok || tx.done {
		return fmt.Errorf("rollback to %s requires an open transaction", name)
	}
	snapshot, ok := tx.savepoints[name]
	if !ok {
		return fmt.Errorf("savepoint %s does not exist", name)
	}
	tx.work = snapshot.clone()
	return nil
}

// Ping reports the configured availability
func (u *UnitOfWork) Ping(ctx context.Context) error {
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	defer u.store.release()
	if u.store.pingErr != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, u.store.pingErr)
	}
	return nil
}

// GetAccountRepository returns an account repository bound to ctx
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return &accountRepository{view: u.viewFor(ctx), clock: u.store.timeProvider}
}

// GetDepositRepository returns a deposit repository bound to ctx
func (u *UnitOfWork) GetDepositRepository(ctx context.Context) persistence.DepositRepository {
	return &depositRepository{view: u.viewFor(ctx)}
}

// GetWithdrawalRepository returns a withdrawal repository bound to ctx
func (u *UnitOfWork) GetWithdrawalRepository(ctx context.Context) persistence.WithdrawalRepository {
	return &withdrawalRepository{view: u.viewFor(ctx)}
}

// GetRoundRepository returns a round repository bound to ctx
func (u *UnitOfWork) GetRoundRepository(ctx context.Context) persistence.RoundRepository {
	return &roundRepository{view: u.viewFor(ctx)}
}

// GetBetRepository returns a bet repository bound to ctx
func (u *UnitOfWork) GetBetRepository(ctx context.Context) persistence.BetRepository {
	return &betRepository{view: u.viewFor(ctx)}
}

// GetOutboxRepository returns an outbox repository bound to ctx
func (u *UnitOfWork) GetOutboxRepository(ctx context.Context) persistence.OutboxRepository {
	return &outboxRepository{view: u.viewFor(ctx)}
}

// view gives a repository access to the data it should read and write.
// Inside a transaction that is the transaction's copy; outside one every
// call claims the store for its own duration and writes through directly.
type view func(ctx context.Context, fn func(st *state) error) error

func (u *UnitOfWork) viewFor(bound context.Context) view {
	tx, inTx := bound.Value(txKey).(*memTx)
	return func(ctx context.Context, fn func(st *state) error) error {
		if inTx {
			if tx.done {
				return fmt.Errorf("%w: transaction already finished", errs.ErrInternalServer)
			}
			return fn(tx.work)
		}
		if err := u.store.acquire(ctx); err != nil {
			return err
		}
		defer u.store.release()
		if u.store.pingErr != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, u.store.pingErr)
		}
		return fn(u.store.data)
	}
}
