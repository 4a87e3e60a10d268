package transaction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/time"
	mockcore "github.com/amirhossein-jamali/wager-ledger/mocks/port/core"
	mockpersistence "github.com/amirhossein-jamali/wager-ledger/mocks/port/persistence"
)

type txKey struct{}

func fastPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   2,
		BaseInterval: coreport.Millisecond,
		MaxInterval:  5 * coreport.Millisecond,
	}
}

func setup(t *testing.T, policy RetryPolicy) (*TransactionManager, *mockpersistence.MockUnitOfWork, *mockcore.MockMetrics, context.Context) {
	uow := mockpersistence.NewMockUnitOfWork(t)
	metrics := mockcore.NewMockMetrics(t)
	tm := NewTransactionManager(uow, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider(), metrics, policy)
	txCtx := context.WithValue(context.Background(), txKey{}, "tx")
	return tm, uow, metrics, txCtx
}

func TestNewTransactionManager(t *testing.T) {
	t.Run("Nil unit of work should panic", func(t *testing.T) {
		assert.Panics(t, func() {
			NewTransactionManager(nil, logger.NewNoopLogger(), timeprovider.NewRealTimeProvider(), mockcore.NewMockMetrics(t), DefaultRetryPolicy())
		})
	})

	t.Run("Negative retries are clamped", func(t *testing.T) {
		tm, uow, _, _ := setup(t, RetryPolicy{MaxRetries: -3})
		assert.Equal(t, 0, tm.policy.MaxRetries)
		assert.Equal(t, uow, tm.UnitOfWork())
	})
}

func TestTransactionManager_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("Commits successful work", func(t *testing.T) {
		tm, uow, metrics, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Begin(ctx).Return(txCtx, nil).Once()
		uow.EXPECT().Commit(txCtx).Return(nil).Once()
		metrics.EXPECT().RecordOperation("op", coreport.ResultSuccess, mock.Anything).Once()

		var seen context.Context
		err := tm.Execute(ctx, "op", func(c context.Context) error {
			seen = c
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, txCtx, seen)
	})

	t.Run("Rolls back and returns the work error untouched", func(t *testing.T) {
		tm, uow, metrics, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Begin(ctx).Return(txCtx, nil).Once()
		uow.EXPECT().Rollback(txCtx).Return(nil).Once()
		metrics.EXPECT().RecordOperation("op", coreport.ResultFail, mock.Anything).Once()

		calls := 0
		err := tm.Execute(ctx, "op", func(context.Context) error {
			calls++
			return errs.ErrInsufficientBalance
		})

		assert.Equal(t, errs.ErrInsufficientBalance, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("Retries store conflicts until the work succeeds", func(t *testing.T) {
		tm, uow, metrics, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Begin(ctx).Return(txCtx, nil).Times(2)
		uow.EXPECT().Rollback(txCtx).Return(nil).Once()
		uow.EXPECT().Commit(txCtx).Return(nil).Once()
		metrics.EXPECT().RecordOperation("op", coreport.ResultSuccess, mock.Anything).Once()

		calls := 0
		err := tm.Execute(ctx, "op", func(context.Context) error {
			calls++
			if calls == 1 {
				return errs.ErrStoreConflict
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("Conflicting commit is replayed", func(t *testing.T) {
		tm, uow, metrics, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Begin(ctx).Return(txCtx, nil).Times(2)
		uow.EXPECT().Commit(txCtx).Return(errs.ErrStoreConflict).Once()
		uow.EXPECT().Commit(txCtx).Return(nil).Once()
		uow.EXPECT().Rollback(txCtx).Return(nil).Once()
		metrics.EXPECT().RecordOperation("op", coreport.ResultSuccess, mock.Anything).Once()

		err := tm.Execute(ctx, "op", func(context.Context) error { return nil })
		require.NoError(t, err)
	})

	t.Run("Exhausted retries surface a store failure", func(t *testing.T) {
		tm, uow, metrics, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Begin(ctx).Return(txCtx, nil).Times(3)
		uow.EXPECT().Rollback(txCtx).Return(nil).Times(3)
		metrics.EXPECT().RecordOperation("op", coreport.ResultFail, mock.Anything).Once()

		calls := 0
		err := tm.Execute(ctx, "op", func(context.Context) error {
			calls++
			return errs.ErrStoreConflict
		})

		assert.ErrorIs(t, err, errs.ErrStoreFailure)
		assert.Equal(t, 3, calls)
	})

	t.Run("Cancellation stops the retry loop", func(t *testing.T) {
		policy := fastPolicy()
		policy.BaseInterval = coreport.Second
		policy.MaxInterval = coreport.Second
		tm, uow, metrics, _ := setup(t, policy)

		cctx, cancel := context.WithCancel(ctx)
		txCtx := context.WithValue(cctx, txKey{}, "tx")
		uow.EXPECT().Begin(cctx).Return(txCtx, nil).Once()
		uow.EXPECT().Rollback(txCtx).Return(nil).Once()
		metrics.EXPECT().RecordOperation("op", coreport.ResultFail, mock.Anything).Once()

		err := tm.Execute(cctx, "op", func(context.Context) error {
			cancel()
			return errs.ErrStoreConflict
		})

		assert.ErrorIs(t, err, errs.ErrStoreFailure)
	})

	t.Run("Begin failure is returned", func(t *testing.T) {
		tm, uow, metrics, _ := setup(t, fastPolicy())
		uow.EXPECT().Begin(ctx).Return(ctx, errs.ErrDatabaseConnection).Once()
		metrics.EXPECT().RecordOperation("op", coreport.ResultFail, mock.Anything).Once()

		err := tm.Execute(ctx, "op", func(context.Context) error {
			t.Fatal("work must not run without a transaction")
			return nil
		})
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})

	t.Run("Panicking work is rolled back and re-panics", func(t *testing.T) {
		tm, uow, _, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Begin(ctx).Return(txCtx, nil).Once()
		uow.EXPECT().Rollback(txCtx).Return(nil).Once()

		assert.PanicsWithValue(t, "boom", func() {
			_ = tm.Execute(ctx, "op", func(context.Context) error { panic("boom") })
		})
	})
}

func TestTransactionManager_Isolate(t *testing.T) {
	t.Run("Successful step keeps its writes", func(t *testing.T) {
		tm, uow, _, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Savepoint(txCtx, "sp").Return(nil).Once()

		stepErr, err := tm.Isolate(txCtx, "sp", func() error { return nil })
		assert.NoError(t, stepErr)
		assert.NoError(t, err)
	})

	t.Run("Failed step is rolled back to the savepoint", func(t *testing.T) {
		tm, uow, _, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Savepoint(txCtx, "sp").Return(nil).Once()
		uow.EXPECT().RollbackTo(txCtx, "sp").Return(nil).Once()

		stepErr, err := tm.Isolate(txCtx, "sp", func() error { return errs.ErrAmountOverflow })
		assert.ErrorIs(t, stepErr, errs.ErrAmountOverflow)
		assert.NoError(t, err)
	})

	t.Run("Savepoint failure aborts", func(t *testing.T) {
		tm, uow, _, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Savepoint(txCtx, "sp").Return(errors.New("no savepoints")).Once()

		ran := false
		stepErr, err := tm.Isolate(txCtx, "sp", func() error { ran = true; return nil })
		assert.Error(t, err)
		assert.NoError(t, stepErr)
		assert.False(t, ran)
	})

	t.Run("Failed restore aborts", func(t *testing.T) {
		tm, uow, _, txCtx := setup(t, fastPolicy())
		uow.EXPECT().Savepoint(txCtx, "sp").Return(nil).Once()
		uow.EXPECT().RollbackTo(txCtx, "sp").Return(errors.New("connection lost")).Once()

		stepErr, err := tm.Isolate(txCtx, "sp", func() error { return errs.ErrUserNotFound })
		assert.ErrorIs(t, stepErr, errs.ErrUserNotFound)
		assert.Error(t, err)
	})
}

func TestTransactionManager_Backoff(t *testing.T) {
	tm, _, _, _ := setup(t, RetryPolicy{
		MaxRetries:   5,
		BaseInterval: 10 * coreport.Millisecond,
		MaxInterval:  50 * coreport.Millisecond,
	})

	assert.Equal(t, 10*coreport.Millisecond, tm.backoff(0))
	assert.Equal(t, 20*coreport.Millisecond, tm.backoff(1))
	assert.Equal(t, 40*coreport.Millisecond, tm.backoff(2))
	assert.Equal(t, 50*coreport.Millisecond, tm.backoff(3))

	tm.policy.JitterFactor = 0.5
	for i := 0; i < 20; i++ {
		d := tm.backoff(0)
		assert.GreaterOrEqual(t, d, 10*coreport.Millisecond)
		assert.Less(t, d, 15*coreport.Millisecond)
	}
}
