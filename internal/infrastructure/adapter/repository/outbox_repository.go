package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/amirhossein-jamali/wager-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/wager-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/wager-ledger/internal/infrastructure/adapter/model"
)

// OutboxRepository implements persistence.OutboxRepository using GORM
type OutboxRepository struct {
	db              *gorm.DB
	errorClassifier *ErrorClassifier
}

// NewOutboxRepository creates a new OutboxRepository instance
func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db, errorClassifier: NewErrorClassifier()}
}

func eventToEntity(m *model.OutboxEvent) *entity.LedgerEvent {
	return &entity.LedgerEvent{
		ID:          m.ID,
		Type:        entity.EventType(m.Type),
		AggregateID: m.AggregateID,
		UserID:      m.UserID,
		Payload:     m.Payload,
		Status:      entity.OutboxStatus(m.Status),
		Attempts:    m.Attempts,
		LastError:   m.LastError,
		CreatedAt:   m.CreatedAt,
		SentAt:      m.SentAt,
	}
}

// Append stores a pending event in the current transaction
func (r *OutboxRepository) Append(ctx context.Context, event *entity.LedgerEvent) error {
	m := model.OutboxEvent{
		ID:          event.ID,
		Type:        string(event.Type),
		AggregateID: event.AggregateID,
		UserID:      event.UserID,
		Payload:     event.Payload,
		Status:      string(event.Status),
		Attempts:    event.Attempts,
		CreatedAt:   event.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.errorClassifier.MapError(err, "append ledger event", errs.ErrNotFound)
	}
	return nil
}

// FetchPending returns up to limit pending events, oldest first
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]*entity.LedgerEvent, error) {
	var rows []model.OutboxEvent
	db := r.db.WithContext(ctx).
		Where("status = ?", string(entity.OutboxPending)).
		Order("created_at ASC").Order("id ASC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&rows).Error; err != nil {
		return nil, r.errorClassifier.MapError(err, "fetch pending ledger events", errs.ErrNotFound)
	}

	out := make([]*entity.LedgerEvent, 0, len(rows))
	for i := range rows {
		out = append(out, eventToEntity(&rows[i]))
	}
	return out, nil
}

// UpdateDelivery persists status, attempts, last error and sent time
func (r *OutboxRepository) UpdateDelivery(ctx context.Context, event *entity.LedgerEvent) error {
	result := r.db.WithContext(ctx).Model(&model.OutboxEvent{}).
		Where("id = ?", event.ID).
		Updates(map[string]any{
			"status":     string(event.Status),
			"attempts":   event.Attempts,
			"last_error": event.LastError,
			"sent_at":    event.SentAt,
		})
	if result.Error != nil {
		return r.errorClassifier.MapError(result.Error, "update ledger event", errs.ErrNotFound)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}
