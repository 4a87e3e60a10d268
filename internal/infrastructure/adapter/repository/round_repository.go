package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/wager-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/model"
)

// RoundRepository implements persistence.RoundRepository using GORM
type RoundRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewRoundRepository creates a new RoundRepository instance
func NewRoundRepository(db *gorm.DB, logger coreport.Logger) *RoundRepository {
	return &RoundRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

func roundToEntity(m *model.Round) *entity.Round {
	return &entity.Round{
		ID:          m.ID,
		ResultColor: m.ResultColor,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		SettledAt:   m.SettledAt,
	}
}

// Create stores a new open round
func (r *RoundRepository) Create(ctx context.Context, round *entity.Round) error {
	m := model.Round{
		ID:        round.ID,
		CreatedBy: round.CreatedBy,
		CreatedAt: round.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.errorClassifier.MapError(err, "create round", errs.ErrRoundNotFound)
	}
	return nil
}

// GetByID retrieves a round without locking it
func (r *RoundRepository) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForBet reads the round FOR SHARE. Bets on the same round do not block
// each other, but the settlement's UPDATE waits until they commit.
func (r *RoundRepository) GetForBet(ctx context.Context, id string) (*entity.Round, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthShare}), id)
}

func (r *RoundRepository) get(_ context.Context, db *gorm.DB, id string) (*entity.Round, error) {
	var m model.Round
	if err := db.Where("id = ?", id).Take(&m).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "get round", errs.ErrRoundNotFound)
	}
	return roundToEntity(&m), nil
}

// Settle records the result only while result_color IS NULL
func (r *RoundRepository) Settle(ctx context.Context, round *entity.Round) error {
	result := r.db.WithContext(ctx).Model(&model.Round{}).
		Where("id = ? AND result_color IS NULL", round.ID).
		Updates(map[string]any{
			"result_color": round.ResultColor,
			"settled_at":   round.SettledAt,
		})
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, "settle round", errs.ErrRoundNotFound)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	if _, err := r.GetByID(ctx, round.ID); err != nil {
		return err
	}
	return errs.NewStateTransitionError("round", round.ID, string(entity.RoundSettled), string(entity.RoundSettled), errs.ErrAlreadySettled)
}

// ListRecent returns the newest rounds first
func (r *RoundRepository) ListRecent(ctx context.Context, limit int) ([]*entity.Round, error) {
	var rows []model.Round
	db := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "list rounds", errs.ErrNotFound)
	}
	out := make([]*entity.Round, 0, len(rows))
	for i := range rows {
		out = append(out, roundToEntity(&rows[i]))
	}
	return out, nil
}

// BetRepository implements persistence.BetRepository using GORM
type BetRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewBetRepository creates a new BetRepository instance
func NewBetRepository(db *gorm.DB, logger coreport.Logger) *BetRepository {
	return &BetRepository{db: db, logger: logger, errorClassifier: NewErrorClassifier()}
}

func betToEntity(m *model.Bet) *entity.Bet {
	return &entity.Bet{
		ID:        m.ID,
		UserID:    m.UserID,
		RoundID:   m.RoundID,
		Color:     m.Color,
		Amount:    m.Amount,
		Payout:    m.Payout,
		CreatedAt: m.CreatedAt,
		SettledAt: m.SettledAt,
	}
}

// Create stores a new unsettled bet
func (r *BetRepository) Create(ctx context.Context, bet *entity.Bet) error {
	m := model.Bet{
		ID:        bet.ID,
		UserID:    bet.UserID,
		RoundID:   bet.RoundID,
		Color:     bet.Color,
		Amount:    bet.Amount,
		CreatedAt: bet.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return r.errorClassifier.MapError(err, "create bet", errs.ErrRoundNotFound)
	}
	return nil
}

// ListByRound returns every bet on a round in placement order
func (r *BetRepository) ListByRound(ctx context.Context, roundID string) ([]*entity.Bet, error) {
	var rows []model.Bet
	err := r.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.errorClassifier.MapError(err, "list round bets", errs.ErrRoundNotFound)
	}
	return betsToEntities(rows), nil
}

// ListByUser returns a user's bets newest first
func (r *BetRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*entity.Bet, error) {
	var rows []model.Bet
	db := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "list user bets", errs.ErrUserNotFound)
	}
	return betsToEntities(rows), nil
}

// Settle writes the payout only while settled_at IS NULL
func (r *BetRepository) Settle(ctx context.Context, bet *entity.Bet) error {
	result := r.db.WithContext(ctx).Model(&model.Bet{}).
		Where("id = ? AND settled_at IS NULL", bet.ID).
		Updates(map[string]any{
			"payout":     bet.Payout,
			"settled_at": bet.SettledAt,
		})
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, "settle bet", errs.ErrNotFound)
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Bet{}).Where("id = ?", bet.ID).Count(&count).Error; err != nil {
		return r.errorClassifier.MapError(err, "settle bet", errs.ErrNotFound)
	}
	if count == 0 {
		return errs.ErrNotFound
	}
	return errs.NewStateTransitionError("bet", bet.ID, "settled", "settled", errs.ErrAlreadySettled)
}

func betsToEntities(rows []model.Bet) []*entity.Bet {
	out := make([]*entity.Bet, 0, len(rows))
	for i := range rows {
		out = append(out, betToEntity(&rows[i]))
	}
	return out
}
