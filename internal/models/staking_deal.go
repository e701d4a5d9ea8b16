package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StakingDeal is one backer's share of a tournament entry. Percentage is a
// fraction of the action in [0,1]; Markup defaults to 1.0 (backer pays face
// value for their share). The engine does not reject deal sums above 1 —
// that is an upstream validation concern.
type StakingDeal struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	SessionID uint64 `gorm:"not null;index"`

	Percentage decimal.Decimal  `gorm:"type:numeric(12,10);not null"`
	Markup     *decimal.Decimal `gorm:"type:numeric(10,4)"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
}

func (StakingDeal) TableName() string {
	return "staking_deals"
}

func (d StakingDeal) MarkupOrOne() decimal.Decimal {
	if d.Markup == nil {
		return decimal.NewFromInt(1)
	}
	return *d.Markup
}
