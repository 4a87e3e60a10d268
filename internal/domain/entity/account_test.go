package entity

import (
	"math"
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/wager-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	fixedTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Valid account creation", func(t *testing.T) {
		account, err := NewAccount("u-1", "  alice ", "hash", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "u-1", account.ID)
		assert.Equal(t, "alice", account.Username)
		assert.Equal(t, int64(0), account.Balance())
		assert.False(t, account.IsAdmin)
		assert.Equal(t, fixedTime, account.CreatedAt)
	})

	t.Run("Empty username should return error", func(t *testing.T) {
		account, err := NewAccount("u-1", "   ", "hash", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidInput)
		assert.Nil(t, account)
	})

	t.Run("Empty ID should return error", func(t *testing.T) {
		_, err := NewAccount("", "alice", "hash", mockTime)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestAccountCreditDebit(t *testing.T) {
	fixedTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Credit then debit", func(t *testing.T) {
		account := RestoreAccount("u-1", "alice", "hash", 1000, false, fixedTime, fixedTime)

		require.NoError(t, account.Debit(400, mockTime))
		assert.Equal(t, int64(600), account.Balance())

		require.NoError(t, account.Credit(800, mockTime))
		assert.Equal(t, int64(1400), account.Balance())
	})

	t.Run("Debit of exact balance leaves zero", func(t *testing.T) {
		account := RestoreAccount("u-1", "alice", "hash", 300, false, fixedTime, fixedTime)

		require.NoError(t, account.Debit(300, mockTime))
		assert.Equal(t, int64(0), account.Balance())
	})

	t.Run("Insufficient balance leaves balance unchanged", func(t *testing.T) {
		account := RestoreAccount("u-1", "alice", "hash", 200, false, fixedTime, fixedTime)

		err := account.Debit(300, mockTime)

		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		assert.Equal(t, int64(200), account.Balance())
	})

	t.Run("Non-positive amounts are rejected", func(t *testing.T) {
		account := RestoreAccount("u-1", "alice", "hash", 200, false, fixedTime, fixedTime)

		assert.ErrorIs(t, account.Credit(0, mockTime), errs.ErrInvalidAmount)
		assert.ErrorIs(t, account.Debit(-5, mockTime), errs.ErrInvalidAmount)
		assert.Equal(t, int64(200), account.Balance())
	})

	t.Run("Credit overflow is rejected", func(t *testing.T) {
		account := RestoreAccount("u-1", "alice", "hash", math.MaxInt64-1, false, fixedTime, fixedTime)

		assert.ErrorIs(t, account.Credit(2, mockTime), errs.ErrAmountOverflow)
		assert.Equal(t, int64(math.MaxInt64-1), account.Balance())
	})

	t.Run("Promote grants admin", func(t *testing.T) {
		account := RestoreAccount("u-1", "alice", "hash", 0, false, fixedTime, fixedTime)
		account.Promote(mockTime)
		assert.True(t, account.IsAdmin)
	})
}

func TestMoneyHelpers(t *testing.T) {
	sum, err := AddAmounts(600, 800)
	require.NoError(t, err)
	assert.Equal(t, int64(1400), sum)

	_, err = AddAmounts(math.MaxInt64, 1)
	assert.ErrorIs(t, err, errs.ErrAmountOverflow)

	product, err := MultiplyAmount(400, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(800), product)

	_, err = MultiplyAmount(math.MaxInt64/2+1, 2)
	assert.ErrorIs(t, err, errs.ErrAmountOverflow)

	assert.NoError(t, ValidateAmount(1))
	assert.ErrorIs(t, ValidateAmount(0), errs.ErrInvalidAmount)
}
