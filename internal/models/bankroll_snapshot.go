package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankrollSnapshot is a materialized overview row written by the snapshot
// cron job, one per bankroll per run, for trend reads without recomputing
// the whole session history.
type BankrollSnapshot struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement"`
	BankrollID uint64    `gorm:"not null;index:idx_snapshot_bankroll_at,unique"`
	SnapshotAt time.Time `gorm:"type:timestamptz;not null;index:idx_snapshot_bankroll_at,unique"`

	Sessions     int   `gorm:"not null"`
	TotalProfit  int64 `gorm:"not null"`
	TotalHours   int   `gorm:"not null"`
	TotalMinutes int   `gorm:"not null"`
	HourlyRate   int64 `gorm:"not null"`

	WinRatio decimal.Decimal `gorm:"type:numeric(12,10);not null"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (BankrollSnapshot) TableName() string {
	return "bankroll_snapshots"
}
