package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientBalance = 4001
	CodeInvalidAmount       = 4002
	CodeInvalidInput        = 4003
	CodeInvalidColor        = 4004
	CodeAmountOverflow      = 4006
	CodeInvalidCredentials  = 4010
	CodeForbidden           = 4030
	CodeNotFound            = 4040
	CodeUserNotFound        = 4041
	CodeDepositNotFound     = 4042
	CodeWithdrawalNotFound  = 4043
	CodeRoundNotFound       = 4044
	CodeAlreadyProcessed    = 4090
	CodeAlreadySettled      = 4091
	CodeRoundClosed         = 4092
	CodeDuplicateUser       = 4093
	CodeConflict            = 4094

	// 5xxx - Server errors
	CodeInternalServer = 5000
	CodeStoreFailure   = 5030
)

// Error kinds. Every error returned by the domain unwraps to exactly one of these.
var (
	// ErrNotFound is returned when a referenced user, request, round or bet does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the caller lacks admin privilege for an admin-only operation
	ErrForbidden = errors.New("admin privilege required")

	// ErrInvalidInput is returned for missing or malformed input
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientBalance is returned when a debit exceeds the current balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAlreadyProcessed is returned when a request is no longer pending
	ErrAlreadyProcessed = errors.New("request already processed")

	// ErrAlreadySettled is returned when a round already has a result
	ErrAlreadySettled = errors.New("round already settled")

	// ErrRoundClosed is returned when a bet targets a settled round
	ErrRoundClosed = errors.New("round is closed for betting")

	// ErrStoreFailure is returned when the transactional store could not commit
	ErrStoreFailure = errors.New("store failure")

	// ErrConflict is returned when a unique resource already exists
	ErrConflict = errors.New("resource already exists")

	// ErrUnauthorized is returned when credentials or tokens cannot be verified
	ErrUnauthorized = errors.New("unauthorized")
)

// Specific errors, each classified under one kind
var (
	ErrUserNotFound       = newKindError("user not found", ErrNotFound)
	ErrDepositNotFound    = newKindError("deposit request not found", ErrNotFound)
	ErrWithdrawalNotFound = newKindError("withdrawal request not found", ErrNotFound)
	ErrRoundNotFound      = newKindError("round not found", ErrNotFound)

	ErrInvalidAmount   = newKindError("amount must be a positive integer", ErrInvalidInput)
	ErrInvalidColor    = newKindError("color is missing or not allowed", ErrInvalidInput)
	ErrInvalidDecision = newKindError("decision must be processed or rejected", ErrInvalidInput)
	ErrInvalidUsername = newKindError("username is required", ErrInvalidInput)
	ErrInvalidPassword = newKindError("password is too short", ErrInvalidInput)
	ErrAmountOverflow  = newKindError("amount is too large and would cause overflow", ErrInvalidInput)

	ErrDuplicateUser      = newKindError("user already exists", ErrConflict)
	ErrInvalidCredentials = newKindError("invalid username or password", ErrUnauthorized)

	// ErrStoreConflict marks a serialization or lock conflict that may succeed on retry
	ErrStoreConflict = newKindError("concurrent update conflict", ErrStoreFailure)

	// ErrDatabaseConnection is returned when there's a problem reaching the database
	ErrDatabaseConnection = newKindError("database connection error", ErrStoreFailure)

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// kindError is a named error that classifies under a kind sentinel
type kindError struct {
	msg  string
	kind error
}

func newKindError(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrDepositNotFound):
		return CodeDepositNotFound
	case errors.Is(err, ErrWithdrawalNotFound):
		return CodeWithdrawalNotFound
	case errors.Is(err, ErrRoundNotFound):
		return CodeRoundNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidColor):
		return CodeInvalidColor
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrUnauthorized):
		return CodeInvalidCredentials
	case errors.Is(err, ErrAlreadyProcessed):
		return CodeAlreadyProcessed
	case errors.Is(err, ErrAlreadySettled):
		return CodeAlreadySettled
	case errors.Is(err, ErrRoundClosed):
		return CodeRoundClosed
	case errors.Is(err, ErrDuplicateUser):
		return CodeDuplicateUser
	case errors.Is(err, ErrConflict):
		return CodeConflict
	case errors.Is(err, ErrStoreFailure):
		return CodeStoreFailure
	default:
		return CodeInternalServer
	}
}

// Kind returns the sentinel kind the error belongs to, or ErrInternalServer
func Kind(err error) error {
	for _, kind := range []error{
		ErrNotFound, ErrForbidden, ErrInvalidInput, ErrInsufficientBalance,
		ErrAlreadyProcessed, ErrAlreadySettled, ErrRoundClosed, ErrStoreFailure,
		ErrConflict, ErrUnauthorized,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternalServer
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	UserID      string
	Amount      int64
	CurrBalance int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for user %s: required %d, available %d",
		e.UserID, e.Amount, e.CurrBalance)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"user_id":         e.UserID,
		"amount":          e.Amount,
		"current_balance": e.CurrBalance,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(userID string, amount, currentBalance int64) error {
	return &InsufficientBalanceError{
		UserID:      userID,
		Amount:      amount,
		CurrBalance: currentBalance,
	}
}

// StateTransitionError reports a rejected status change on a request or round
type StateTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
	Err    error
}

// Error implements the error interface
func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("%s %s cannot move from %s to %s: %v", e.Entity, e.ID, e.From, e.To, e.Err)
}

// Unwrap returns the underlying error
func (e *StateTransitionError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *StateTransitionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "state_transition",
		"entity":     e.Entity,
		"id":         e.ID,
		"from":       e.From,
		"to":         e.To,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewStateTransitionError creates a detailed state transition error
func NewStateTransitionError(entity, id, from, to string, err error) error {
	return &StateTransitionError{Entity: entity, ID: id, From: from, To: to, Err: err}
}

// PayoutFailure describes a winning bet whose credit could not be applied during settlement
type PayoutFailure struct {
	BetID  string
	UserID string
	Payout int64
	Err    error
}

// Error implements the error interface
func (e *PayoutFailure) Error() string {
	return fmt.Sprintf("payout of %d for bet %s (user %s) failed: %v", e.Payout, e.BetID, e.UserID, e.Err)
}

// Unwrap returns the underlying error
func (e *PayoutFailure) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *PayoutFailure) LogFields() map[string]any {
	return map[string]any{
		"error_type": "payout_failure",
		"bet_id":     e.BetID,
		"user_id":    e.UserID,
		"payout":     e.Payout,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewPayoutFailure records a bet that could not be paid
func NewPayoutFailure(betID, userID string, payout int64, err error) *PayoutFailure {
	return &PayoutFailure{BetID: betID, UserID: userID, Payout: payout, Err: err}
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsRetryable reports whether the whole operation may be retried against the store
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreConflict)
}
