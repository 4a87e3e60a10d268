package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/model"
)

// resolution is the column set written when a request leaves pending
func resolution(status entity.RequestStatus, resolvedAt *time.Time, resolvedBy string) map[string]any {
	return map[string]any{
		"status":      string(status),
		"resolved_at": resolvedAt,
		"resolved_by": resolvedBy,
	}
}

// resolvePending flips a request only while it is still pending. A lost race
// and a missing row both affect zero rows; the follow-up read separates them.
func resolvePending(
	ctx context.Context,
	db *gorm.DB,
	classifier *ErrorClassifier,
	table any,
	kind, id string,
	target entity.RequestStatus,
	values map[string]any,
	notFound error,
) error {
	result := db.WithContext(ctx).Model(table).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(values)
	if result.Error != nil {
		return classifier.MapError(result.Error, "resolve "+kind, notFound)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var current struct{ Status string }
	err := db.WithContext(ctx).Model(table).Select("status").Where("id = ?", id).Take(&current).Error
	if err != nil {
		return classifier.MapError(err, "resolve "+kind, notFound)
	}
	return errs.NewStateTransitionError(kind, id, current.Status, string(target), errs.ErrAlreadyProcessed)
}

func applyRequestFilter(db *gorm.DB, filter entity.RequestFilter) *gorm.DB {
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", string(filter.Status))
	}
	if filter.Limit > 0 {
		db = db.Limit(filter.Limit)
	}
	return db.Order("created_at DESC").Order("id DESC")
}

// DepositRepository implements persistence.DepositRepository using GORM
type DepositRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewDepositRepository creates a new DepositRepository instance
func NewDepositRepository(db *gorm.DB, logger coreport.Logger) *DepositRepository {
	return &DepositRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

func depositToEntity(m *model.DepositRequest) *entity.DepositRequest {
	return &entity.DepositRequest{
		ID:         m.ID,
		UserID:     m.UserID,
		Amount:     m.Amount,
		Status:     entity.RequestStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		ResolvedAt: m.ResolvedAt,
		ResolvedBy: m.ResolvedBy,
	}
}

// Create stores a new pending deposit request
func (r *DepositRepository) Create(ctx context.Context, deposit *entity.DepositRequest) error {
	m := model.DepositRequest{
		ID:        deposit.ID,
		UserID:    deposit.UserID,
		Amount:    deposit.Amount,
		Status:    string(deposit.Status),
		CreatedAt: deposit.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return r.errorClassifier.MapError(err, "create deposit", errs.ErrUserNotFound)
	}
	return nil
}

// GetByID retrieves a deposit request
func (r *DepositRepository) GetByID(ctx context.Context, id string) (*entity.DepositRequest, error) {
	var m model.DepositRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "get deposit", errs.ErrDepositNotFound)
	}
	return depositToEntity(&m), nil
}

// Resolve writes the terminal status while the row is still pending
func (r *DepositRepository) Resolve(ctx context.Context, deposit *entity.DepositRequest) error {
	err := resolvePending(ctx, r.db, r.errorClassifier, &model.DepositRequest{}, "deposit", deposit.ID, deposit.Status,
		resolution(deposit.Status, deposit.ResolvedAt, deposit.ResolvedBy), errs.ErrDepositNotFound)
	if err != nil {
		r.logger.Debug("Deposit resolution refused", map[string]any{
			"deposit_id": deposit.ID,
			"target":     string(deposit.Status),
			"error":      err.Error(),
		})
	}
	return err
}

// List returns requests newest first
func (r *DepositRepository) List(ctx context.Context, filter entity.RequestFilter) ([]*entity.DepositRequest, error) {
	var rows []model.DepositRequest
	if err := applyRequestFilter(r.db.WithContext(ctx), filter).Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "list deposits", errs.ErrNotFound)
	}
	out := make([]*entity.DepositRequest, 0, len(rows))
	for i := range rows {
		out = append(out, depositToEntity(&rows[i]))
	}
	return out, nil
}

// WithdrawalRepository implements persistence.WithdrawalRepository using GORM
type WithdrawalRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWithdrawalRepository creates a new WithdrawalRepository instance
func NewWithdrawalRepository(db *gorm.DB, logger coreport.Logger) *WithdrawalRepository {
	return &WithdrawalRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

func withdrawalToEntity(m *model.WithdrawalRequest) *entity.WithdrawalRequest {
	return &entity.WithdrawalRequest{
		ID:         m.ID,
		UserID:     m.UserID,
		Amount:     m.Amount,
		Status:     entity.RequestStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		ResolvedAt: m.ResolvedAt,
		ResolvedBy: m.ResolvedBy,
	}
}

// Create stores a new pending withdrawal request
func (r *WithdrawalRepository) Create(ctx context.Context, withdrawal *entity.WithdrawalRequest) error {
	m := model.WithdrawalRequest{
		ID:        withdrawal.ID,
		UserID:    withdrawal.UserID,
		Amount:    withdrawal.Amount,
		Status:    string(withdrawal.Status),
		CreatedAt: withdrawal.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return r.errorClassifier.MapError(err, "create withdrawal", errs.ErrUserNotFound)
	}
	return nil
}

// GetByID retrieves a withdrawal request
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	var m model.WithdrawalRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "get withdrawal", errs.ErrWithdrawalNotFound)
	}
	return withdrawalToEntity(&m), nil
}

// Resolve writes the terminal status while the row is still pending
func (r *WithdrawalRepository) Resolve(ctx context.Context, withdrawal *entity.WithdrawalRequest) error {
	err := resolvePending(ctx, r.db, r.errorClassifier, &model.WithdrawalRequest{}, "withdrawal", withdrawal.ID, withdrawal.Status,
		resolution(withdrawal.Status, withdrawal.ResolvedAt, withdrawal.ResolvedBy), errs.ErrWithdrawalNotFound)
	if err != nil {
		r.logger.Debug("Withdrawal resolution refused", map[string]any{
			"withdrawal_id": withdrawal.ID,
			"target":        string(withdrawal.Status),
			"error":         err.Error(),
		})
	}
	return err
}

// List returns requests newest first
func (r *WithdrawalRepository) List(ctx context.Context, filter entity.RequestFilter) ([]*entity.WithdrawalRequest, error) {
	var rows []model.WithdrawalRequest
	if err := applyRequestFilter(r.db.WithContext(ctx), filter).Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "list withdrawals", errs.ErrNotFound)
	}
	out := make([]*entity.WithdrawalRequest, 0, len(rows))
	for i := range rows {
		out = append(out, withdrawalToEntity(&rows[i]))
	}
	return out, nil
}
