package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/wager-ledger/internal/domain/usecase/transaction"
)

// Credential limits
const (
	MaxUsernameLength = 64
	MaxPasswordBytes  = 72 // bcrypt ignores anything longer
)

// AccountUseCase implements account registration, login and balance reads
type AccountUseCase struct {
	uow               persistence.UnitOfWork
	txManager         *transaction.TransactionManager
	hasher            coreport.PasswordHasher
	idGenerator       coreport.IDGenerator
	timeProvider      coreport.TimeProvider
	logger            coreport.Logger
	minPasswordLength int
}

// NewAccountUseCase creates a new account use case instance
func NewAccountUseCase(
	txManager *transaction.TransactionManager,
	hasher coreport.PasswordHasher,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	minPasswordLength int,
) usecase.AccountUseCase {
	if minPasswordLength < 1 {
		minPasswordLength = 1
	}
	return &AccountUseCase{
		uow:               txManager.UnitOfWork(),
		txManager:         txManager,
		hasher:            hasher,
		idGenerator:       idGenerator,
		timeProvider:      timeProvider,
		logger:            logger,
		minPasswordLength: minPasswordLength,
	}
}

// Register creates a non-admin account with a zero balance
func (u *AccountUseCase) Register(ctx context.Context, username, password string) (*entity.Account, error) {
	username, err := u.validateCredentials(username, password)
	if err != nil {
		return nil, err
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %s", errs.ErrInternalServer, err)
	}

	account, err := entity.NewAccount(u.idGenerator.NewID(), username, hash, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.uow.GetAccountRepository(ctx).Create(ctx, account); err != nil {
		if !errors.Is(err, errs.ErrDuplicateUser) {
			u.logger.Error("Failed to create account", map[string]any{
				"username": username,
				"error":    err.Error(),
			})
		}
		return nil, err
	}

	u.logger.Info("Account registered", map[string]any{
		"userId":   account.ID,
		"username": account.Username,
	})
	return account, nil
}

// Authenticate verifies credentials; unknown users and wrong passwords are indistinguishable
func (u *AccountUseCase) Authenticate(ctx context.Context, username, password string) (*entity.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.ErrInvalidCredentials
	}

	account, err := u.uow.GetAccountRepository(ctx).GetByUsername(ctx, username)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(account.PasswordHash, password); err != nil {
		u.logger.Debug("Password mismatch", map[string]any{"userId": account.ID})
		return nil, errs.ErrInvalidCredentials
	}
	return account, nil
}

// GetProfile returns the caller's own account
func (u *AccountUseCase) GetProfile(ctx context.Context, actor entity.Actor) (*entity.Account, error) {
	return u.uow.GetAccountRepository(ctx).GetByID(ctx, actor.UserID)
}

// GetBalance returns a balance snapshot
func (u *AccountUseCase) GetBalance(ctx context.Context, actor entity.Actor, userID string) (*usecase.BalanceView, error) {
	if userID == "" {
		return nil, errs.ErrInvalidInput
	}
	if !actor.CanAccess(userID) {
		return nil, errs.ErrForbidden
	}

	account, err := u.uow.GetAccountRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &usecase.BalanceView{
		UserID:  account.ID,
		Balance: account.Balance(),
	}, nil
}

// EnsureAdmin creates an admin account, or promotes the existing account with this username.
// An existing account keeps its password.
func (u *AccountUseCase) EnsureAdmin(ctx context.Context, username, password string) (*entity.Account, bool, error) {
	username, err := u.validateCredentials(username, password)
	if err != nil {
		return nil, false, err
	}

	var (
		account *entity.Account
		created bool
	)
	err = u.txManager.Execute(ctx, "ensure_admin", func(txCtx context.Context) error {
		repo := u.uow.GetAccountRepository(txCtx)

		existing, err := repo.GetByUsername(txCtx, username)
		switch {
		case err == nil:
			if !existing.IsAdmin {
				if err := repo.SetAdmin(txCtx, existing.ID); err != nil {
					return err
				}
				existing.Promote(u.timeProvider)
			}
			account, created = existing, false
			return nil
		case !errs.IsNotFoundError(err):
			return err
		}

		hash, err := u.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("%w: hash password: %s", errs.ErrInternalServer, err)
		}
		fresh, err := entity.NewAccount(u.idGenerator.NewID(), username, hash, u.timeProvider)
		if err != nil {
			return err
		}
		fresh.Promote(u.timeProvider)
		if err := repo.Create(txCtx, fresh); err != nil {
			return err
		}
		account, created = fresh, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	u.logger.Info("Admin account ensured", map[string]any{
		"userId":   account.ID,
		"username": account.Username,
		"created":  created,
	})
	return account, created, nil
}

func (u *AccountUseCase) validateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > MaxUsernameLength {
		return "", errs.ErrInvalidUsername
	}
	if len(password) < u.minPasswordLength || len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%w: must be %d to %d bytes", errs.ErrInvalidPassword, u.minPasswordLength, MaxPasswordBytes)
	}
	return username, nil
}
