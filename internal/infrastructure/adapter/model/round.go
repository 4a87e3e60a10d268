package model

import (
	"time"
)

// Round is the stored form of a betting round; ResultColor is NULL while open
type Round struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"`
	ResultColor *string   `gorm:"size:32"`
	CreatedBy   string    `gorm:"type:varchar(36);not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
	SettledAt   *time.Time
}

// TableName specifies the table name for Round
func (Round) TableName() string {
	return "rounds"
}

// Bet is the stored form of a bet; SettledAt is NULL until its round is settled
type Bet struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"type:varchar(36);not null;index"`
	RoundID   string    `gorm:"type:varchar(36);not null;index"`
	Color     string    `gorm:"not null;size:32"`
	Amount    int64     `gorm:"not null;check:bet_amount_positive,amount > 0"`
	Payout    int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	SettledAt *time.Time

	Account Account `gorm:"foreignKey:UserID;references:ID"`
	Round   Round   `gorm:"foreignKey:RoundID;references:ID"`
}

// TableName specifies the table name for Bet
func (Bet) TableName() string {
	return "bets"
}
