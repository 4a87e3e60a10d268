package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// RequestStatus is the lifecycle status of a deposit or withdrawal request
type RequestStatus string

// Request statuses
const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusProcessed RequestStatus = "processed"
)

// IsTerminal reports whether no further transition is permitted
func (s RequestStatus) IsTerminal() bool {
	return s != StatusPending
}

// ParseRequestStatus parses an optional status filter
func ParseRequestStatus(s string) (RequestStatus, error) {
	switch status := RequestStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case StatusPending, StatusApproved, StatusRejected, StatusProcessed:
		return status, nil
	default:
		return "", errs.ErrInvalidInput
	}
}

// ParseWithdrawalDecision parses an admin decision on a withdrawal
func ParseWithdrawalDecision(s string) (RequestStatus, error) {
	switch status := RequestStatus(strings.ToLower(strings.TrimSpace(s))); status {
	case StatusProcessed, StatusRejected:
		return status, nil
	default:
		return "", errs.ErrInvalidDecision
	}
}

// DepositRequest is a user's request to have funds credited after admin approval
type DepositRequest struct {
	ID         string
	UserID     string
	Amount     int64
	Status     RequestStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ResolvedBy string
}

// NewDepositRequest creates a pending deposit request
func NewDepositRequest(id, userID string, amount int64, timeProvider coreport.TimeProvider) (*DepositRequest, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	return &DepositRequest{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// Resolve moves the deposit from pending to approved or rejected
func (d *DepositRequest) Resolve(target RequestStatus, adminID string, timeProvider coreport.TimeProvider) error {
	if target != StatusApproved && target != StatusRejected {
		return errs.ErrInvalidDecision
	}
	if d.Status != StatusPending {
		return errs.NewStateTransitionError("deposit", d.ID, string(d.Status), string(target), errs.ErrAlreadyProcessed)
	}
	now := timeProvider.Now()
	d.Status = target
	d.ResolvedAt = &now
	d.ResolvedBy = adminID
	return nil
}

// WithdrawalRequest is a user's request to take funds out; the amount is locked at creation
type WithdrawalRequest struct {
	ID         string
	UserID     string
	Amount     int64
	Status     RequestStatus
	CreatedAt  time.Time
	ResolvedAt *time.Time
	ResolvedBy string
}

// NewWithdrawalRequest creates a pending withdrawal request
func NewWithdrawalRequest(id, userID string, amount int64, timeProvider coreport.TimeProvider) (*WithdrawalRequest, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	return &WithdrawalRequest{
		ID:        id,
		UserID:    userID,
		Amount:    amount,
		Status:    StatusPending,
		CreatedAt: timeProvider.Now(),
	}, nil
}

// Resolve moves the withdrawal from pending to processed or rejected
func (w *WithdrawalRequest) Resolve(target RequestStatus, adminID string, timeProvider coreport.TimeProvider) error {
	if target != StatusProcessed && target != StatusRejected {
		return errs.ErrInvalidDecision
	}
	if w.Status != StatusPending {
		return errs.NewStateTransitionError("withdrawal", w.ID, string(w.Status), string(target), errs.ErrAlreadyProcessed)
	}
	now := timeProvider.Now()
	w.Status = target
	w.ResolvedAt = &now
	w.ResolvedBy = adminID
	return nil
}

// ReleasesFunds reports whether the locked amount goes back to the user
func (w *WithdrawalRequest) ReleasesFunds() bool {
	return w.Status == StatusRejected
}

// RequestFilter narrows request listings
type RequestFilter struct {
	UserID string        // empty means all users
	Status RequestStatus // empty means any status
	Limit  int
}
