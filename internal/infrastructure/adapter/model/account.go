package model

import (
	"time"
)

// Account is the stored form of a ledger account.
// Balance is in minor units and guarded by a CHECK constraint.
type Account struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Username     string    `gorm:"not null;size:64;uniqueIndex"`
	PasswordHash string    `gorm:"not null;size:255"`
	Balance      int64     `gorm:"not null;default:0;check:balance_non_negative,balance >= 0"`
	IsAdmin      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name for Account
func (Account) TableName() string {
	return "accounts"
}
