package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/model"
)

// AccountRepository implements persistence.AccountRepository using GORM.
// Balance changes are single conditional UPDATE statements, so the check
// and the write cannot be separated by a concurrent writer.
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func accountToEntity(m *model.Account) *entity.Account {
	return entity.RestoreAccount(m.ID, m.Username, m.PasswordHash, m.Balance, m.IsAdmin, m.CreatedAt, m.UpdatedAt)
}

// Create stores a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	m := model.Account{
		ID:           account.ID,
		Username:     account.Username,
		PasswordHash: account.PasswordHash,
		Balance:      account.Balance(),
		IsAdmin:      account.IsAdmin,
		CreatedAt:    account.CreatedAt,
		UpdatedAt:    account.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		mapped := r.errorClassifier.MapError(err, "create account", errs.ErrUserNotFound)
		if errors.Is(mapped, errs.ErrConflict) {
			// both unique keys of an account identify the user
			return errs.ErrDuplicateUser
		}
		if !errs.IsRetryable(mapped) {
			r.logger.Error("Failed to create account", map[string]any{
				"user_id": account.ID,
				"error":   err.Error(),
			})
		}
		return mapped
	}
	return nil
}

// GetByID retrieves an account snapshot
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var m model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "get account", errs.ErrUserNotFound)
	}
	return accountToEntity(&m), nil
}

// GetByUsername retrieves an account by its login name
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var m model.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&m).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "get account by username", errs.ErrUserNotFound)
	}
	return accountToEntity(&m), nil
}

// Credit increments the balance with UPDATE ... SET balance = balance + ? RETURNING balance
func (r *AccountRepository) Credit(ctx context.Context, id string, amount int64) (int64, error) {
	if err := entity.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var updated model.Account
	result := r.db.WithContext(ctx).Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "balance"}}}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.errorClassifier.MapError(result.Error, "credit account", errs.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return 0, errs.ErrUserNotFound
	}

	r.logger.Debug("Account credited", map[string]any{
		"user_id": id,
		"amount":  amount,
		"balance": updated.Balance,
	})
	return updated.Balance, nil
}

// Debit decrements the balance only where balance >= amount. When no row
// matches, a follow-up read tells a missing account apart from a short one.
func (r *AccountRepository) Debit(ctx context.Context, id string, amount int64) (int64, error) {
	if err := entity.ValidateAmount(amount); err != nil {
		return 0, err
	}

	var updated model.Account
	result := r.db.WithContext(ctx).Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "balance"}}}).
		Where("id = ? AND balance >= ?", id, amount).
		Updates(map[string]any{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return 0, r.errorClassifier.MapError(result.Error, "debit account", errs.ErrUserNotFound)
	}

	if result.RowsAffected == 0 {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return 0, err
		}
		r.logger.Debug("Insufficient balance for debit", map[string]any{
			"user_id":         id,
			"amount":          amount,
			"current_balance": current.Balance(),
		})
		return 0, errs.NewInsufficientBalanceError(id, amount, current.Balance())
	}

	r.logger.Debug("Account debited", map[string]any{
		"user_id": id,
		"amount":  amount,
		"balance": updated.Balance,
	})
	return updated.Balance, nil
}

// SetAdmin grants admin privileges
func (r *AccountRepository) SetAdmin(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_admin":   true,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, "promote account", errs.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
