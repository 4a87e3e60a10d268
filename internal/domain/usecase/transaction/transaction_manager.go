package transaction

import (
	"context"
	"fmt"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
)

// RetryPolicy controls how a unit of work is retried after a store conflict
type RetryPolicy struct {
	MaxRetries   int
	BaseInterval coreport.Duration
	MaxInterval  coreport.Duration
	JitterFactor float64 // 0.0-1.0
}

// DefaultRetryPolicy returns the policy used when none is configured
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   3,
		BaseInterval: 20 * coreport.Millisecond,
		MaxInterval:  500 * coreport.Millisecond,
		JitterFactor: 0.2,
	}
}

// Work is the body of a unit of work; every repository it touches must be
// obtained from the UnitOfWork with txCtx
type Work func(txCtx context.Context) error

// TransactionManager runs units of work atomically against the store.
// A failed attempt leaves no trace; attempts that lose a serialization race
// are replayed from the start.
type TransactionManager struct {
	uow          persistence.UnitOfWork
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	metrics      coreport.Metrics
	policy       RetryPolicy
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(
	uow persistence.UnitOfWork,
	logger coreport.Logger,
	timeProvider coreport.TimeProvider,
	metrics coreport.Metrics,
	policy RetryPolicy,
) *TransactionManager {
	if uow == nil {
		panic("unit of work cannot be nil")
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}

	return &TransactionManager{
		uow:          uow,
		logger:       logger,
		timeProvider: timeProvider,
		metrics:      metrics,
		policy:       policy,
	}
}

// UnitOfWork exposes the underlying unit of work for repository access inside Work
func (m *TransactionManager) UnitOfWork() persistence.UnitOfWork {
	return m.uow
}

// Execute runs work in a transaction and commits it. Any error rolls the
// transaction back. Store conflicts are retried with exponential backoff; once
// retries are exhausted the caller receives ErrStoreFailure.
func (m *TransactionManager) Execute(ctx context.Context, operation string, work Work) error {
	start := m.timeProvider.Now()
	err := m.executeWithRetry(ctx, operation, work)

	result := coreport.ResultSuccess
	if err != nil {
		result = coreport.ResultFail
	}
	m.metrics.RecordOperation(operation, result, m.timeProvider.Since(start))
	return err
}

func (m *TransactionManager) executeWithRetry(ctx context.Context, operation string, work Work) error {
	var err error
	for attempt := 0; attempt <= m.policy.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := m.backoff(attempt - 1)
			m.logger.Warn("Store conflict, retrying unit of work", map[string]any{
				"operation":   operation,
				"attempt":     attempt + 1,
				"max_retries": m.policy.MaxRetries,
				"retry_after": backoff.Std().String(),
				"error":       err.Error(),
			})

			select {
			case <-m.timeProvider.After(backoff):
			case <-ctx.Done():
				return fmt.Errorf("%w: %s canceled while retrying: %s", errs.ErrStoreFailure, operation, ctx.Err())
			}
		}

		err = m.runOnce(ctx, operation, work)
		if err == nil || !errs.IsRetryable(err) {
			return err
		}
	}

	m.logger.Error("Unit of work kept conflicting, giving up", map[string]any{
		"operation": operation,
		"attempts":  m.policy.MaxRetries + 1,
		"error":     err.Error(),
	})
	return fmt.Errorf("%w: %s: %s", errs.ErrStoreFailure, operation, err)
}

func (m *TransactionManager) runOnce(ctx context.Context, operation string, work Work) (err error) {
	txCtx, err := m.uow.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if p := recover(); p != nil {
			_ = m.uow.Rollback(txCtx)
			panic(p)
		}
		if !committed {
			if rbErr := m.uow.Rollback(txCtx); rbErr != nil {
				m.logger.Error("Failed to rollback unit of work", map[string]any{
					"operation": operation,
					"error":     rbErr.Error(),
				})
			}
		}
	}()

	if err = work(txCtx); err != nil {
		return err
	}

	if err = m.uow.Commit(txCtx); err != nil {
		return err
	}
	committed = true
	return nil
}

// Isolate runs step behind a savepoint inside an open transaction. When step
// fails its writes are undone, its error is returned as stepErr and the
// enclosing transaction stays usable. A non-nil err means the savepoint itself
// could not be set or restored and the transaction must be abandoned.
func (m *TransactionManager) Isolate(txCtx context.Context, savepoint string, step func() error) (stepErr error, err error) {
	if err = m.uow.Savepoint(txCtx, savepoint); err != nil {
		return nil, err
	}

	if stepErr = step(); stepErr == nil {
		return nil, nil
	}

	if err = m.uow.RollbackTo(txCtx, savepoint); err != nil {
		m.logger.Error("Failed to rollback to savepoint", map[string]any{
			"savepoint": savepoint,
			"step_err":  stepErr.Error(),
			"error":     err.Error(),
		})
		return stepErr, err
	}
	return stepErr, nil
}

// backoff computes base * 2^attempt capped at MaxInterval, plus jitter
func (m *TransactionManager) backoff(attempt int) coreport.Duration {
	backoff := m.policy.BaseInterval * coreport.Duration(1<<uint(attempt))
	if m.policy.MaxInterval > 0 && backoff > m.policy.MaxInterval {
		backoff = m.policy.MaxInterval
	}

	if m.policy.JitterFactor > 0 {
		spread := float64(m.timeProvider.Now().UnixNano()%100) / 100.0
		backoff += coreport.Duration(float64(backoff) * m.policy.JitterFactor * spread)
	}
	return backoff
}
