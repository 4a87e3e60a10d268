package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
)

// Account represents a custodial user account holding an integer balance
type Account struct {
	ID           string    // Opaque unique identifier
	Username     string    // Unique login name
	PasswordHash string    // Hash produced by the configured password hasher
	balance      int64     // Balance in minor currency units, never negative (private)
	IsAdmin      bool      // Grants approval and settlement authority
	CreatedAt    time.Time // When the account was registered
	UpdatedAt    time.Time // When the account was last mutated
}

// NewAccount creates a non-admin account with a zero balance
func NewAccount(id, username, passwordHash string, timeProvider coreport.TimeProvider) (*Account, error) {
	username = strings.TrimSpace(username)
	if id == "" {
		return nil, errs.ErrInvalidInput
	}
	if username == "" {
		return nil, errs.ErrInvalidUsername
	}

	now := timeProvider.Now()
	return &Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// RestoreAccount rebuilds an account from persisted state
func RestoreAccount(id, username, passwordHash string, balance int64, isAdmin bool, createdAt, updatedAt time.Time) *Account {
	return &Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		balance:      balance,
		IsAdmin:      isAdmin,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// Balance returns the current balance in minor units
func (a *Account) Balance() int64 {
	return a.balance
}

// SetBalance updates the balance directly (for repositories reading back a conditional update)
func (a *Account) SetBalance(balance int64, timeProvider coreport.TimeProvider) {
	a.balance = balance
	a.UpdatedAt = timeProvider.Now()
}

// Credit adds a positive amount to the balance
func (a *Account) Credit(amount int64, timeProvider coreport.TimeProvider) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	next, err := AddAmounts(a.balance, amount)
	if err != nil {
		return err
	}
	a.balance = next
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// Debit subtracts a positive amount, refusing to take the balance below zero
func (a *Account) Debit(amount int64, timeProvider coreport.TimeProvider) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if a.balance < amount {
		return errs.NewInsufficientBalanceError(a.ID, amount, a.balance)
	}
	a.balance -= amount
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// Promote grants admin privileges
func (a *Account) Promote(timeProvider coreport.TimeProvider) {
	a.IsAdmin = true
	a.UpdatedAt = timeProvider.Now()
}
