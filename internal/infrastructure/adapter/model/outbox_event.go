package model

import (
	"time"
)

// OutboxEvent is a ledger event waiting for, or done with, delivery
type OutboxEvent struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	Type        string    `gorm:"not null;size:64"`
	AggregateID string    `gorm:"type:varchar(36);not null"`
	UserID      string    `gorm:"type:varchar(36)"`
	Payload     []byte    `gorm:"type:jsonb;not null"`
	Status      string    `gorm:"not null;size:16;index:idx_outbox_status_created,priority:1"`
	Attempts    int       `gorm:"not null;default:0"`
	LastError   string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null;index:idx_outbox_status_created,priority:2"`
	SentAt      *time.Time
}

// TableName specifies the table name for OutboxEvent
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
