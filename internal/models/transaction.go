package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TxDeposit    = "deposit"
	TxWithdrawal = "withdrawal"
	TxExpense    = "expense"
)

// Transaction is a ledger entry against a bankroll, independent of sessions.
type Transaction struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	BankrollID uint64 `gorm:"not null;index"`

	Kind   string `gorm:"type:varchar(20);not null;index"`
	Amount int64  `gorm:"not null"`

	Note string         `gorm:"type:text"`
	Tags datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (Transaction) TableName() string {
	return "transactions"
}
