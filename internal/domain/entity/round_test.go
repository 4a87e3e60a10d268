package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/wager-ledger/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundLifecycle(t *testing.T) {
	fixedTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	round := NewRound("r-1", "admin", mockTime)
	assert.True(t, round.IsOpen())
	assert.Equal(t, RoundOpen, round.Status())
	assert.Equal(t, "", round.Result())
	assert.NoError(t, round.AcceptBet())

	require.NoError(t, round.Settle("red", mockTime))
	assert.False(t, round.IsOpen())
	assert.Equal(t, RoundSettled, round.Status())
	assert.Equal(t, "red", round.Result())
	assert.Equal(t, fixedTime, *round.SettledAt)

	assert.ErrorIs(t, round.AcceptBet(), errs.ErrRoundClosed)
	assert.ErrorIs(t, round.Settle("black", mockTime), errs.ErrAlreadySettled)
	assert.Equal(t, "red", round.Result())
}

func TestBetSettlement(t *testing.T) {
	fixedTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	bet, err := NewBet("b-1", "u-1", "r-1", "red", 400, mockTime)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bet.Payout)
	assert.True(t, bet.Wins("red"))
	assert.False(t, bet.Wins("black"))

	require.NoError(t, bet.Settle(800, mockTime))
	assert.True(t, bet.IsSettled())
	assert.Equal(t, int64(800), bet.Payout)
	assert.ErrorIs(t, bet.Settle(800, mockTime), errs.ErrAlreadySettled)

	_, err = NewBet("b-2", "u-1", "r-1", "", 400, mockTime)
	assert.ErrorIs(t, err, errs.ErrInvalidColor)

	_, err = NewBet("b-3", "u-1", "r-1", "red", 0, mockTime)
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
}

func TestPayoutTable(t *testing.T) {
	fixedTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	t.Run("Default table pays double on a match", func(t *testing.T) {
		table := DefaultPayoutTable()
		bet, _ := NewBet("b-1", "u-1", "r-1", "red", 400, mockTime)

		payout, err := table.Payout(bet, "red")
		require.NoError(t, err)
		assert.Equal(t, int64(800), payout)

		payout, err = table.Payout(bet, "black")
		require.NoError(t, err)
		assert.Equal(t, int64(0), payout)
	})

	t.Run("Per-color override", func(t *testing.T) {
		table, err := NewPayoutTable(2, []string{"red", "black", "green"}, map[string]int64{"Green": 14})
		require.NoError(t, err)
		bet, _ := NewBet("b-1", "u-1", "r-1", "green", 10, mockTime)

		payout, err := table.Payout(bet, "green")
		require.NoError(t, err)
		assert.Equal(t, int64(140), payout)
		assert.Equal(t, int64(2), table.Multiplier("red"))
	})

	t.Run("Color validation normalizes case", func(t *testing.T) {
		table := DefaultPayoutTable()

		color, err := table.ValidateColor(" RED ")
		require.NoError(t, err)
		assert.Equal(t, "red", color)

		_, err = table.ValidateColor("purple")
		assert.ErrorIs(t, err, errs.ErrInvalidColor)

		_, err = table.ValidateColor("")
		assert.ErrorIs(t, err, errs.ErrInvalidColor)
		assert.Equal(t, []string{"red", "black", "green"}, table.Colors())
	})

	t.Run("Empty color list accepts any color", func(t *testing.T) {
		table, err := NewPayoutTable(2, nil, nil)
		require.NoError(t, err)

		color, err := table.ValidateColor("Purple")
		require.NoError(t, err)
		assert.Equal(t, "purple", color)
	})

	t.Run("Invalid multipliers", func(t *testing.T) {
		_, err := NewPayoutTable(0, nil, nil)
		assert.ErrorIs(t, err, errs.ErrInvalidInput)

		_, err = NewPayoutTable(2, nil, map[string]int64{"red": -1})
		assert.ErrorIs(t, err, errs.ErrInvalidInput)
	})
}

func TestActor(t *testing.T) {
	admin := Actor{UserID: "a-1", IsAdmin: true}
	user := Actor{UserID: "u-1"}

	assert.NoError(t, admin.RequireAdmin())
	assert.ErrorIs(t, user.RequireAdmin(), errs.ErrForbidden)
	assert.True(t, admin.CanAccess("u-1"))
	assert.True(t, user.CanAccess("u-1"))
	assert.False(t, user.CanAccess("u-2"))
}

func TestLedgerEvent(t *testing.T) {
	fixedTime := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.EXPECT().Now().Return(fixedTime).Maybe()

	event, err := NewLedgerEvent("e-1", EventDepositApproved, "d-1", "u-1", map[string]any{"amount": 500}, mockTime)
	require.NoError(t, err)
	assert.Equal(t, OutboxPending, event.Status)
	assert.JSONEq(t, `{"amount":500}`, string(event.Payload))

	event.MarkAttemptFailed(assert.AnError, 2)
	assert.Equal(t, OutboxPending, event.Status)
	assert.Equal(t, 1, event.Attempts)

	event.MarkAttemptFailed(assert.AnError, 2)
	assert.Equal(t, OutboxFailed, event.Status)

	event.MarkSent(mockTime)
	assert.Equal(t, OutboxSent, event.Status)
	assert.Equal(t, fixedTime, *event.SentAt)
	assert.Empty(t, event.LastError)
}
