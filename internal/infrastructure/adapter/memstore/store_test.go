package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/logger"
	timeprovider "github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/time"
)

func newTestStore(t *testing.T) (*Store, persistence.UnitOfWork) {
	t.Helper()
	store := NewStore(logger.NewNoopLogger(), timeprovider.NewRealTimeProvider())
	uow := store.NewUnitOfWork()

	now := time.Now().UTC()
	require.NoError(t, uow.GetAccountRepository(context.Background()).Create(context.Background(),
		entity.RestoreAccount("u1", "alice", "hash", 100, false, now, now)))
	return store, uow
}

func balanceOf(t *testing.T, uow persistence.UnitOfWork, ctx context.Context, id string) int64 {
	t.Helper()
	account, err := uow.GetAccountRepository(ctx).GetByID(ctx, id)
	require.NoError(t, err)
	return account.Balance()
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("Committed writes become visible", func(t *testing.T) {
		_, uow := newTestStore(t)

		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		balance, err := uow.GetAccountRepository(txCtx).Credit(txCtx, "u1", 50)
		require.NoError(t, err)
		assert.Equal(t, int64(150), balance)
		assert.Equal(t, int64(150), balanceOf(t, uow, txCtx, "u1"))
		require.NoError(t, uow.Commit(txCtx))

		assert.Equal(t, int64(150), balanceOf(t, uow, ctx, "u1"))
	})

	t.Run("Rolled back writes vanish", func(t *testing.T) {
		_, uow := newTestStore(t)

		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		_, err = uow.GetAccountRepository(txCtx).Debit(txCtx, "u1", 60)
		require.NoError(t, err)
		require.NoError(t, uow.Rollback(txCtx))
		require.NoError(t, uow.Rollback(txCtx))

		assert.Equal(t, int64(100), balanceOf(t, uow, ctx, "u1"))
	})

	t.Run("Writes through a finished transaction are refused", func(t *testing.T) {
		_, uow := newTestStore(t)

		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		repo := uow.GetAccountRepository(txCtx)
		require.NoError(t, uow.Commit(txCtx))

		_, err = repo.Credit(txCtx, "u1", 1)
		assert.ErrorIs(t, err, errs.ErrInternalServer)
	})

	t.Run("Nested transactions are rejected", func(t *testing.T) {
		_, uow := newTestStore(t)

		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = uow.Rollback(txCtx) }()

		_, err = uow.Begin(txCtx)
		assert.Error(t, err)
	})

	t.Run("A second transaction waits for the first", func(t *testing.T) {
		_, uow := newTestStore(t)

		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)

		waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		_, err = uow.Begin(waitCtx)
		assert.ErrorIs(t, err, errs.ErrStoreFailure)

		require.NoError(t, uow.Commit(txCtx))
		next, err := uow.Begin(ctx)
		require.NoError(t, err)
		require.NoError(t, uow.Rollback(next))
	})
}

func TestUnitOfWork_Savepoints(t *testing.T) {
	ctx := context.Background()
	_, uow := newTestStore(t)

	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	accounts := uow.GetAccountRepository(txCtx)

	_, err = accounts.Credit(txCtx, "u1", 10)
	require.NoError(t, err)
	require.NoError(t, uow.Savepoint(txCtx, "sp1"))
	_, err = accounts.Credit(txCtx, "u1", 1000)
	require.NoError(t, err)
	require.NoError(t, uow.RollbackTo(txCtx, "sp1"))

	assert.Equal(t, int64(110), balanceOf(t, uow, txCtx, "u1"))
	assert.Error(t, uow.RollbackTo(txCtx, "unknown"))

	require.NoError(t, uow.Commit(txCtx))
	assert.Equal(t, int64(110), balanceOf(t, uow, ctx, "u1"))
	assert.Error(t, uow.Savepoint(ctx, "outside"))
}

func TestUnitOfWork_Unavailable(t *testing.T) {
	ctx := context.Background()
	store, uow := newTestStore(t)

	store.SetUnavailable(errors.New("disk gone"))
	assert.ErrorIs(t, uow.Ping(ctx), errs.ErrStoreFailure)
	_, err := uow.Begin(ctx)
	assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	_, err = uow.GetAccountRepository(ctx).GetByID(ctx, "u1")
	assert.ErrorIs(t, err, errs.ErrStoreFailure)

	store.SetUnavailable(nil)
	assert.NoError(t, uow.Ping(ctx))
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	_, uow := newTestStore(t)
	repo := uow.GetAccountRepository(ctx)
	now := time.Now().UTC()

	t.Run("Usernames are unique", func(t *testing.T) {
		err := repo.Create(ctx, entity.RestoreAccount("u2", "alice", "hash", 0, false, now, now))
		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})

	t.Run("Debit checks the balance atomically", func(t *testing.T) {
		_, err := repo.Debit(ctx, "u1", 101)
		var balanceErr *errs.InsufficientBalanceError
		require.ErrorAs(t, err, &balanceErr)
		assert.Equal(t, int64(100), balanceErr.CurrBalance)

		balance, err := repo.Debit(ctx, "u1", 100)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("Amounts must be positive", func(t *testing.T) {
		_, err := repo.Credit(ctx, "u1", 0)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		_, err = repo.Debit(ctx, "u1", -1)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})

	t.Run("Lookups", func(t *testing.T) {
		account, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "u1", account.ID)

		_, err = repo.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		_, err = repo.Credit(ctx, "ghost", 5)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		require.NoError(t, repo.SetAdmin(ctx, "u1"))
		account, err = repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, account.IsAdmin)
	})

	t.Run("Returned snapshots are detached", func(t *testing.T) {
		account, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		account.IsAdmin = false
		account.Username = "mallory"

		again, err := repo.GetByID(ctx, "u1")
		require.NoError(t, err)
		assert.True(t, again.IsAdmin)
		assert.Equal(t, "alice", again.Username)
	})
}

func TestRequestRepositories_ConditionalResolve(t *testing.T) {
	ctx := context.Background()
	_, uow := newTestStore(t)
	clock := timeprovider.NewRealTimeProvider()
	deposits := uow.GetDepositRepository(ctx)

	deposit, err := entity.NewDepositRequest("d1", "u1", 10, clock)
	require.NoError(t, err)
	require.NoError(t, deposits.Create(ctx, deposit))

	orphan, err := entity.NewDepositRequest("d2", "ghost", 10, clock)
	require.NoError(t, err)
	assert.ErrorIs(t, deposits.Create(ctx, orphan), errs.ErrUserNotFound)

	first, err := deposits.GetByID(ctx, "d1")
	require.NoError(t, err)
	second, err := deposits.GetByID(ctx, "d1")
	require.NoError(t, err)

	require.NoError(t, first.Resolve(entity.StatusApproved, "admin", clock))
	require.NoError(t, second.Resolve(entity.StatusRejected, "admin", clock))

	require.NoError(t, deposits.Resolve(ctx, first))
	assert.ErrorIs(t, deposits.Resolve(ctx, second), errs.ErrAlreadyProcessed)

	stored, err := deposits.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, stored.Status)

	withdrawals := uow.GetWithdrawalRepository(ctx)
	w, err := entity.NewWithdrawalRequest("w1", "u1", 10, clock)
	require.NoError(t, err)
	require.NoError(t, withdrawals.Create(ctx, w))
	require.NoError(t, w.Resolve(entity.StatusProcessed, "admin", clock))
	require.NoError(t, withdrawals.Resolve(ctx, w))
	assert.ErrorIs(t, withdrawals.Resolve(ctx, w), errs.ErrAlreadyProcessed)
	_, err = withdrawals.GetByID(ctx, "w404")
	assert.ErrorIs(t, err, errs.ErrWithdrawalNotFound)
}

func TestRoundAndBetRepositories(t *testing.T) {
	ctx := context.Background()
	_, uow := newTestStore(t)
	clock := timeprovider.NewRealTimeProvider()
	rounds := uow.GetRoundRepository(ctx)
	bets := uow.GetBetRepository(ctx)

	round := entity.NewRound("r1", "admin", clock)
	require.NoError(t, rounds.Create(ctx, round))

	for _, id := range []string{"b1", "b2", "b3"} {
		bet, err := entity.NewBet(id, "u1", "r1", "red", 5, clock)
		require.NoError(t, err)
		require.NoError(t, bets.Create(ctx, bet))
	}
	orphan, err := entity.NewBet("b4", "u1", "r404", "red", 5, clock)
	require.NoError(t, err)
	assert.ErrorIs(t, bets.Create(ctx, orphan), errs.ErrRoundNotFound)

	onRound, err := bets.ListByRound(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, onRound, 3)
	assert.Equal(t, "b1", onRound[0].ID)
	assert.Equal(t, "b3", onRound[2].ID)

	mine, err := bets.ListByUser(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "b3", mine[0].ID)

	require.NoError(t, onRound[0].Settle(10, clock))
	require.NoError(t, bets.Settle(ctx, onRound[0]))
	assert.ErrorIs(t, bets.Settle(ctx, onRound[0]), errs.ErrAlreadySettled)

	require.NoError(t, round.Settle("red", clock))
	require.NoError(t, rounds.Settle(ctx, round))
	assert.ErrorIs(t, rounds.Settle(ctx, round), errs.ErrAlreadySettled)

	locked, err := rounds.GetForBet(ctx, "r1")
	require.NoError(t, err)
	assert.ErrorIs(t, locked.AcceptBet(), errs.ErrRoundClosed)

	recent, err := rounds.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestRepositories_DuplicateIDsConflict(t *testing.T) {
	ctx := context.Background()
	_, uow := newTestStore(t)
	clock := timeprovider.NewRealTimeProvider()

	require.NoError(t, uow.GetRoundRepository(ctx).Create(ctx, entity.NewRound("r1", "admin", clock)))
	err := uow.GetRoundRepository(ctx).Create(ctx, entity.NewRound("r1", "admin", clock))
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.NotErrorIs(t, err, errs.ErrDuplicateUser)

	bet, err := entity.NewBet("b1", "u1", "r1", "red", 5, clock)
	require.NoError(t, err)
	require.NoError(t, uow.GetBetRepository(ctx).Create(ctx, bet))
	err = uow.GetBetRepository(ctx).Create(ctx, bet)
	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.NotErrorIs(t, err, errs.ErrDuplicateUser)

	now := time.Now().UTC()
	err = uow.GetAccountRepository(ctx).Create(ctx, entity.RestoreAccount("u1", "bob", "hash", 0, false, now, now))
	assert.ErrorIs(t, err, errs.ErrDuplicateUser)
}

func TestState_CopyOnWrite(t *testing.T) {
	ctx := context.Background()
	store, uow := newTestStore(t)
	clock := timeprovider.NewRealTimeProvider()
	require.NoError(t, uow.GetRoundRepository(ctx).Create(ctx, entity.NewRound("r1", "admin", clock)))

	t.Run("Snapshots share tables until one side writes", func(t *testing.T) {
		base := store.data
		snapshot := base.clone()

		assert.True(t, base.rounds.shared)
		assert.True(t, snapshot.rounds.shared)

		snapshot.rounds.set("r2", row[entity.Round]{seq: snapshot.nextSeq(), value: *entity.NewRound("r2", "admin", clock)})

		assert.False(t, snapshot.rounds.shared)
		assert.True(t, snapshot.rounds.has("r2"))
		assert.False(t, base.rounds.has("r2"))
		assert.Len(t, base.rounds.rows, 1)
		assert.True(t, snapshot.bets.shared)
	})

	t.Run("Transactions leave committed data untouched until commit", func(t *testing.T) {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		bet, err := entity.NewBet("b1", "u1", "r1", "red", 5, clock)
		require.NoError(t, err)
		require.NoError(t, uow.GetBetRepository(txCtx).Create(txCtx, bet))
		_, err = uow.GetAccountRepository(txCtx).Debit(txCtx, "u1", 5)
		require.NoError(t, err)

		assert.False(t, store.data.bets.has("b1"))
		committed, _ := store.data.accounts.get("u1")
		assert.Equal(t, int64(100), committed.value.Balance())

		require.NoError(t, uow.Rollback(txCtx))
		assert.Equal(t, int64(100), balanceOf(t, uow, ctx, "u1"))
	})

	t.Run("Rolling back to a savepoint twice restores it each time", func(t *testing.T) {
		txCtx, err := uow.Begin(ctx)
		require.NoError(t, err)
		accounts := uow.GetAccountRepository(txCtx)

		require.NoError(t, uow.Savepoint(txCtx, "sp"))
		_, err = accounts.Credit(txCtx, "u1", 7)
		require.NoError(t, err)
		require.NoError(t, uow.RollbackTo(txCtx, "sp"))
		_, err = accounts.Credit(txCtx, "u1", 9)
		require.NoError(t, err)
		require.NoError(t, uow.RollbackTo(txCtx, "sp"))

		assert.Equal(t, int64(100), balanceOf(t, uow, txCtx, "u1"))
		require.NoError(t, uow.Commit(txCtx))
		assert.Equal(t, int64(100), balanceOf(t, uow, ctx, "u1"))
	})
}

func TestOutboxRepository_DropsSentEvents(t *testing.T) {
	ctx := context.Background()
	store, uow := newTestStore(t)
	clock := timeprovider.NewRealTimeProvider()
	outbox := uow.GetOutboxRepository(ctx)

	for _, id := range []string{"e1", "e2"} {
		event, err := entity.NewLedgerEvent(id, entity.EventRoundCreated, "r1", "admin", map[string]string{"round_id": "r1"}, clock)
		require.NoError(t, err)
		require.NoError(t, outbox.Append(ctx, event))
	}

	pending, err := outbox.FetchPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	pending[0].MarkSent(clock)
	require.NoError(t, outbox.UpdateDelivery(ctx, pending[0]))
	pending[1].MarkAttemptFailed(errors.New("broker down"), 1)
	require.NoError(t, outbox.UpdateDelivery(ctx, pending[1]))

	assert.False(t, store.data.outbox.has("e1"))
	failed, ok := store.data.outbox.get("e2")
	require.True(t, ok)
	assert.Equal(t, entity.OutboxFailed, failed.value.Status)

	remaining, err := outbox.FetchPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.ErrorIs(t, outbox.UpdateDelivery(ctx, pending[0]), errs.ErrNotFound)
}
