package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpecificErrorsUnwrapToKind(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind error
	}{
		{"UserNotFound", ErrUserNotFound, ErrNotFound},
		{"DepositNotFound", ErrDepositNotFound, ErrNotFound},
		{"WithdrawalNotFound", ErrWithdrawalNotFound, ErrNotFound},
		{"RoundNotFound", ErrRoundNotFound, ErrNotFound},
		{"InvalidAmount", ErrInvalidAmount, ErrInvalidInput},
		{"InvalidColor", ErrInvalidColor, ErrInvalidInput},
		{"AmountOverflow", ErrAmountOverflow, ErrInvalidInput},
		{"StoreConflict", ErrStoreConflict, ErrStoreFailure},
		{"DatabaseConnection", ErrDatabaseConnection, ErrStoreFailure},
		{"DuplicateUser", ErrDuplicateUser, ErrConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.err, tc.kind)
			assert.Equal(t, tc.kind, Kind(fmt.Errorf("wrapped: %w", tc.err)))
		})
	}
}

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"InsufficientBalance", ErrInsufficientBalance, CodeInsufficientBalance},
		{"InvalidAmount", ErrInvalidAmount, CodeInvalidAmount},
		{"InvalidColor", ErrInvalidColor, CodeInvalidColor},
		{"RoundNotFound", ErrRoundNotFound, CodeRoundNotFound},
		{"GenericNotFound", ErrNotFound, CodeNotFound},
		{"Forbidden", ErrForbidden, CodeForbidden},
		{"AlreadyProcessed", ErrAlreadyProcessed, CodeAlreadyProcessed},
		{"AlreadySettled", ErrAlreadySettled, CodeAlreadySettled},
		{"RoundClosed", ErrRoundClosed, CodeRoundClosed},
		{"DuplicateUser", ErrDuplicateUser, CodeDuplicateUser},
		{"GenericConflict", fmt.Errorf("%w: bets b1", ErrConflict), CodeConflict},
		{"StoreConflict", ErrStoreConflict, CodeStoreFailure},
		{"UnknownError", errors.New("unknown error"), CodeInternalServer},
		{"WrappedError", fmt.Errorf("wrapped: %w", ErrWithdrawalNotFound), CodeWithdrawalNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestKindUnknownError(t *testing.T) {
	assert.Equal(t, ErrInternalServer, Kind(errors.New("boom")))
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError("u-1", 300, 200)

	assert.Equal(t, "insufficient balance for user u-1: required 300, available 200", err.Error())
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, IsInsufficientBalanceError(fmt.Errorf("debit: %w", err)))

	var detailed *InsufficientBalanceError
	assert.True(t, errors.As(err, &detailed))
	fields := detailed.LogFields()
	assert.Equal(t, "u-1", fields["user_id"])
	assert.Equal(t, int64(300), fields["amount"])
	assert.Equal(t, CodeInsufficientBalance, fields["error_code"])
}

func TestStateTransitionError(t *testing.T) {
	err := NewStateTransitionError("deposit", "d-1", "approved", "approved", ErrAlreadyProcessed)

	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	assert.Contains(t, err.Error(), "deposit d-1 cannot move from approved to approved")
	assert.Equal(t, CodeAlreadyProcessed, ErrorCode(err))

	var detailed *StateTransitionError
	assert.True(t, errors.As(err, &detailed))
	assert.Equal(t, "state_transition", detailed.LogFields()["error_type"])
}

func TestPayoutFailure(t *testing.T) {
	err := &PayoutFailure{BetID: "b-1", UserID: "u-1", Payout: 800, Err: ErrUserNotFound}

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "payout of 800 for bet b-1 (user u-1) failed: user not found", err.Error())
	assert.Equal(t, CodeUserNotFound, err.LogFields()["error_code"])
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("commit: %w", ErrStoreConflict)))
	assert.False(t, IsRetryable(ErrDatabaseConnection))
	assert.False(t, IsRetryable(ErrInsufficientBalance))
}
