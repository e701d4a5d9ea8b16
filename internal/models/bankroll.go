package models

import (
	"time"
)

// Bankroll is an independent pool of sessions and ledger transactions.
// Exactly one row is flagged as the default (unnamed) bankroll.
type Bankroll struct {
	ID   uint64 `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"type:varchar(100);not null;uniqueIndex"`

	IsDefault bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Bankroll) TableName() string {
	return "bankrolls"
}
