package database

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	isolation    sql.IsolationLevel
	errorMapper  *ErrorMapper
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, isolation sql.IsolationLevel) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		isolation:    isolation,
		errorMapper:  NewErrorMapper(),
	}
}

// Begin starts a new database transaction at the configured isolation level
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return ctx, fmt.Errorf("%w: nested transactions are not supported", errs.ErrInternalServer)
	}

	u.logger.Debug("Beginning database transaction", map[string]any{
		"isolation":  u.isolation.String(),
		"request_id": coreport.RequestIDFrom(ctx),
	})

	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: u.isolation})
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, u.errorMapper.MapError(tx.Error, "begin")
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		mapped := u.errorMapper.MapError(err, "commit")
		if !errs.IsRetryable(mapped) {
			u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		}
		return mapped
	}

	return nil
}

// Rollback rolls back the current transaction. Rolling back a finished
// transaction is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error
	if err != nil && u.errorMapper.IsAlreadyFinished(err) {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return u.errorMapper.MapError(err, "rollback")
	}

	return nil
}

// Savepoint issues SAVEPOINT name inside the current transaction
func (u *UnitOfWork) Savepoint(ctx context.Context, name string) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("savepoint %s requires an open transaction", name)
	}
	if err := tx.SavePoint(name).Error; err != nil {
		return u.errorMapper.MapError(err, "savepoint "+name)
	}
	return nil
}

// RollbackTo issues ROLLBACK TO SAVEPOINT name, keeping the transaction open
func (u *UnitOfWork) RollbackTo(ctx context.Context, name string) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("rollback to %s requires an open transaction", name)
	}
	if err := tx.RollbackTo(name).Error; err != nil {
		return u.errorMapper.MapError(err, "rollback to "+name)
	}
	return nil
}

// Ping checks that the database answers
func (u *UnitOfWork) Ping(ctx context.Context) error {
	sqlDB, err := u.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return nil
}

// GetAccountRepository returns an account repository in the current transaction
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetDepositRepository returns a deposit repository in the current transaction
func (u *UnitOfWork) GetDepositRepository(ctx context.Context) persistence.DepositRepository {
	return repository.NewDepositRepository(u.getDbFromContext(ctx), u.logger)
}

// GetWithdrawalRepository returns a withdrawal repository in the current transaction
func (u *UnitOfWork) GetWithdrawalRepository(ctx context.Context) persistence.WithdrawalRepository {
	return repository.NewWithdrawalRepository(u.getDbFromContext(ctx), u.logger)
}

// GetRoundRepository returns a round repository in the current transaction
func (u *UnitOfWork) GetRoundRepository(ctx context.Context) persistence.RoundRepository {
	return repository.NewRoundRepository(u.getDbFromContext(ctx), u.logger)
}

// GetBetRepository returns a bet repository in the current transaction
func (u *UnitOfWork) GetBetRepository(ctx context.Context) persistence.BetRepository {
	return repository.NewBetRepository(u.getDbFromContext(ctx), u.logger)
}

// GetOutboxRepository returns an outbox repository in the current transaction
func (u *UnitOfWork) GetOutboxRepository(ctx context.Context) persistence.OutboxRepository {
	return repository.NewOutboxRepository(u.getDbFromContext(ctx))
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
