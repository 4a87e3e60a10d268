package model

import (
	"time"
)

// DepositRequest is the stored form of a deposit request
type DepositRequest struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `gorm:"type:varchar(36);not null;index"`
	Amount     int64     `gorm:"not null;check:deposit_amount_positive,amount > 0"`
	Status     string    `gorm:"not null;size:16;index"`
	CreatedAt  time.Time `gorm:"not null;index"`
	ResolvedAt *time.Time
	ResolvedBy string `gorm:"type:varchar(36)"`

	Account Account `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for DepositRequest
func (DepositRequest) TableName() string {
	return "deposit_requests"
}

// WithdrawalRequest is the stored form of a withdrawal request
type WithdrawalRequest struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)"`
	UserID     string    `gorm:"type:varchar(36);not null;index"`
	Amount     int64     `gorm:"not null;check:withdrawal_amount_positive,amount > 0"`
	Status     string    `gorm:"not null;size:16;index"`
	CreatedAt  time.Time `gorm:"not null;index"`
	ResolvedAt *time.Time
	ResolvedBy string `gorm:"type:varchar(36)"`

	Account Account `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for WithdrawalRequest
func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
