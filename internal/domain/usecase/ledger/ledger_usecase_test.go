package ledger

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/outbox"
	"github.com/amirhossein-jamali/wager-ledger/internal/testkit"
)

func newLedger(t *testing.T) (usecase.LedgerUseCase, *testkit.Harness) {
	h := testkit.NewHarness(t)
	uc := NewLedgerUseCase(h.TxManager, h.Recorder, h.IDs, h.Clock, h.Logger, entity.DefaultListLimits())
	h.SeedAccount(t, "admin", 0, true)
	return uc, h
}

func TestLedgerUseCase_Deposits(t *testing.T) {
	ctx := context.Background()
	admin := testkit.Admin("admin")

	t.Run("Request leaves the balance untouched until approval", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 0, false)

		res, err := uc.RequestDeposit(ctx, testkit.User("u1"), 500)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, res.Deposit.Status)
		assert.Equal(t, int64(0), res.Balance)
		assert.Equal(t, int64(0), h.Balance(t, "u1"))

		approved, err := uc.ApproveDeposit(ctx, admin, res.Deposit.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusApproved, approved.Deposit.Status)
		assert.Equal(t, "admin", approved.Deposit.ResolvedBy)
		assert.Equal(t, int64(500), approved.Balance)
		assert.Equal(t, int64(500), h.Balance(t, "u1"))

		assert.Equal(t, []entity.EventType{entity.EventDepositRequested, entity.EventDepositApproved}, h.EventTypes(t))
	})

	t.Run("Second approval is rejected and credits only once", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 0, false)
		res, err := uc.RequestDeposit(ctx, testkit.User("u1"), 500)
		require.NoError(t, err)

		_, err = uc.ApproveDeposit(ctx, admin, res.Deposit.ID)
		require.NoError(t, err)

		_, err = uc.ApproveDeposit(ctx, admin, res.Deposit.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)
		_, err = uc.RejectDeposit(ctx, admin, res.Deposit.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)

		assert.Equal(t, int64(500), h.Balance(t, "u1"))
	})

	t.Run("Reject records the outcome without crediting", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 50, false)
		res, err := uc.RequestDeposit(ctx, testkit.User("u1"), 500)
		require.NoError(t, err)

		rejected, err := uc.RejectDeposit(ctx, admin, res.Deposit.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusRejected, rejected.Deposit.Status)
		assert.Equal(t, int64(50), rejected.Balance)
		assert.Equal(t, int64(50), h.Balance(t, "u1"))

		_, err = uc.ApproveDeposit(ctx, admin, res.Deposit.ID)
		assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)
	})

	t.Run("Non-admin cannot approve", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 0, false)
		res, err := uc.RequestDeposit(ctx, testkit.User("u1"), 500)
		require.NoError(t, err)

		_, err = uc.ApproveDeposit(ctx, testkit.User("u1"), res.Deposit.ID)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		assert.Equal(t, int64(0), h.Balance(t, "u1"))
	})

	t.Run("Invalid amounts and unknown ids", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 0, false)

		_, err := uc.RequestDeposit(ctx, testkit.User("u1"), 0)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
		_, err = uc.RequestDeposit(ctx, testkit.User("u1"), -5)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
		_, err = uc.RequestDeposit(ctx, testkit.User("ghost"), 10)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		_, err = uc.ApproveDeposit(ctx, admin, "missing")
		assert.ErrorIs(t, err, errs.ErrDepositNotFound)

		assert.Empty(t, h.PendingEvents(t))
	})

	t.Run("Approval that would overflow the balance leaves the request pending", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "rich", 1<<62, false)
		res, err := uc.RequestDeposit(ctx, testkit.User("rich"), 1<<62)
		require.NoError(t, err)

		_, err = uc.ApproveDeposit(ctx, admin, res.Deposit.ID)
		assert.ErrorIs(t, err, errs.ErrAmountOverflow)

		list, err := uc.ListDeposits(ctx, admin, entity.RequestFilter{Status: entity.StatusPending})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, res.Deposit.ID, list[0].ID)
	})

	t.Run("Concurrent approvals credit exactly once", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 0, false)
		res, err := uc.RequestDeposit(ctx, testkit.User("u1"), 500)
		require.NoError(t, err)

		const workers = 8
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
		)
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := uc.ApproveDeposit(ctx, admin, res.Deposit.ID)
				if err == nil {
					mu.Lock()
					successes++
					mu.Unlock()
					return
				}
				assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, int64(500), h.Balance(t, "u1"))
	})
}

func TestLedgerUseCase_Withdrawals(t *testing.T) {
	ctx := context.Background()
	admin := testkit.Admin("admin")

	t.Run("Request debits up front and processing keeps the debit", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 500, false)

		res, err := uc.RequestWithdrawal(ctx, testkit.User("u1"), 300)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, res.Withdrawal.Status)
		assert.Equal(t, int64(200), res.Balance)
		assert.Equal(t, int64(200), h.Balance(t, "u1"))

		processed, err := uc.ResolveWithdrawal(ctx, admin, res.Withdrawal.ID, entity.StatusProcessed)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusProcessed, processed.Withdrawal.Status)
		assert.Equal(t, int64(200), processed.Balance)
		assert.Equal(t, int64(200), h.Balance(t, "u1"))
	})

	t.Run("Rejection releases the locked amount", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 500, false)
		res, err := uc.RequestWithdrawal(ctx, testkit.User("u1"), 300)
		require.NoError(t, err)

		rejected, err := uc.ResolveWithdrawal(ctx, admin, res.Withdrawal.ID, entity.StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, int64(500), rejected.Balance)
		assert.Equal(t, int64(500), h.Balance(t, "u1"))

		_, err = uc.ResolveWithdrawal(ctx, admin, res.Withdrawal.ID, entity.StatusRejected)
		assert.ErrorIs(t, err, errs.ErrAlreadyProcessed)
		assert.Equal(t, int64(500), h.Balance(t, "u1"))

		assert.Equal(t, []entity.EventType{entity.EventWithdrawalRequested, entity.EventWithdrawalRejected}, h.EventTypes(t))
	})

	t.Run("Insufficient balance writes nothing", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 200, false)

		_, err := uc.RequestWithdrawal(ctx, testkit.User("u1"), 300)
		require.Error(t, err)
		assert.True(t, errs.IsInsufficientBalanceError(err))

		var balanceErr *errs.InsufficientBalanceError
		require.ErrorAs(t, err, &balanceErr)
		assert.Equal(t, int64(200), balanceErr.CurrBalance)

		assert.Equal(t, int64(200), h.Balance(t, "u1"))
		list, err := uc.ListWithdrawals(ctx, admin, entity.RequestFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
		assert.Empty(t, h.PendingEvents(t))
	})

	t.Run("Decision must be processed or rejected", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 500, false)
		res, err := uc.RequestWithdrawal(ctx, testkit.User("u1"), 100)
		require.NoError(t, err)

		_, err = uc.ResolveWithdrawal(ctx, admin, res.Withdrawal.ID, entity.StatusApproved)
		assert.ErrorIs(t, err, errs.ErrInvalidDecision)
		_, err = uc.ResolveWithdrawal(ctx, testkit.User("u1"), res.Withdrawal.ID, entity.StatusRejected)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		_, err = uc.ResolveWithdrawal(ctx, admin, "missing", entity.StatusRejected)
		assert.ErrorIs(t, err, errs.ErrWithdrawalNotFound)
	})

	t.Run("Concurrent requests never overdraw", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 1000, false)

		const workers = 10
		var wg sync.WaitGroup
		errCh := make(chan error, workers)
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				_, err := uc.RequestWithdrawal(ctx, testkit.User("u1"), 300)
				errCh <- err
			}()
		}
		wg.Wait()
		close(errCh)

		succeeded := 0
		for err := range errCh {
			if err == nil {
				succeeded++
				continue
			}
			assert.True(t, errs.IsInsufficientBalanceError(err))
		}
		assert.Equal(t, 3, succeeded)
		assert.Equal(t, int64(100), h.Balance(t, "u1"))
	})

	t.Run("Event payload carries the new balance", func(t *testing.T) {
		uc, h := newLedger(t)
		h.SeedAccount(t, "u1", 500, false)
		_, err := uc.RequestWithdrawal(ctx, testkit.User("u1"), 300)
		require.NoError(t, err)

		events := h.PendingEvents(t)
		require.Len(t, events, 1)
		var payload outbox.WithdrawalPayload
		require.NoError(t, json.Unmarshal(events[0].Payload, &payload))
		assert.Equal(t, int64(200), payload.Balance)
		assert.Equal(t, "u1", payload.UserID)
		assert.Equal(t, "u1", events[0].UserID)
	})
}

func TestLedgerUseCase_Listings(t *testing.T) {
	ctx := context.Background()
	uc, h := newLedger(t)
	h.SeedAccount(t, "u1", 1000, false)
	h.SeedAccount(t, "u2", 1000, false)

	for _, id := range []string{"u1", "u1", "u2"} {
		_, err := uc.RequestDeposit(ctx, testkit.User(id), 10)
		require.NoError(t, err)
		_, err = uc.RequestWithdrawal(ctx, testkit.User(id), 10)
		require.NoError(t, err)
	}

	t.Run("Users only see their own requests", func(t *testing.T) {
		deposits, err := uc.ListDeposits(ctx, testkit.User("u1"), entity.RequestFilter{UserID: "u2"})
		require.NoError(t, err)
		require.Len(t, deposits, 2)
		for _, d := range deposits {
			assert.Equal(t, "u1", d.UserID)
		}

		withdrawals, err := uc.ListWithdrawals(ctx, testkit.User("u2"), entity.RequestFilter{})
		require.NoError(t, err)
		require.Len(t, withdrawals, 1)
		assert.Equal(t, "u2", withdrawals[0].UserID)
	})

	t.Run("Admins see everything newest first", func(t *testing.T) {
		deposits, err := uc.ListDeposits(ctx, testkit.Admin("admin"), entity.RequestFilter{})
		require.NoError(t, err)
		require.Len(t, deposits, 3)
		assert.Equal(t, "u2", deposits[0].UserID)
	})

	t.Run("Limit and status filter apply", func(t *testing.T) {
		deposits, err := uc.ListDeposits(ctx, testkit.Admin("admin"), entity.RequestFilter{Limit: 1})
		require.NoError(t, err)
		assert.Len(t, deposits, 1)

		deposits, err = uc.ListDeposits(ctx, testkit.Admin("admin"), entity.RequestFilter{Status: entity.StatusApproved})
		require.NoError(t, err)
		assert.Empty(t, deposits)
	})
}
