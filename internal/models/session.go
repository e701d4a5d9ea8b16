package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GameCash       = "cash"
	GameTournament = "tournament"
)

// Session is one completed play session. Rows are immutable once written:
// an edit replaces the row (same ExternalID) inside a single transaction,
// and Profit is recomputed at every write. All money columns are signed
// integers in minor currency units.
type Session struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	ExternalID string `gorm:"type:uuid;not null;uniqueIndex"`
	BankrollID uint64 `gorm:"not null;index"`

	GameType string `gorm:"type:varchar(20);not null;index"`
	Location string `gorm:"type:varchar(200)"`
	Stakes   string `gorm:"type:varchar(50)"`

	Date          time.Time  `gorm:"type:timestamptz;not null;index"`
	StartAt       time.Time  `gorm:"type:timestamptz;not null"`
	EndAt         time.Time  `gorm:"type:timestamptz;not null"`
	DayTwoStartAt *time.Time `gorm:"type:timestamptz"`
	DayTwoEndAt   *time.Time `gorm:"type:timestamptz"`

	BuyIn    int64 `gorm:"not null"`
	CashOut  int64 `gorm:"not null"`
	Expenses int64 `gorm:"not null;default:0"`

	// Cash games only.
	HighHandBonus int64 `gorm:"not null;default:0"`

	// Tournaments only; nil everywhere else and treated as zero by aggregates.
	RebuyCount   *int
	Bounties     *int64
	Entrants     *int
	Finish       *int
	TourneySize  *string `gorm:"type:varchar(20)"`
	TourneySpeed *string `gorm:"type:varchar(20)"`
	DayCount     *int

	HandsPerHour int `gorm:"not null;default:25"`

	Notes string         `gorm:"type:text"`
	Tags  datatypes.JSON `gorm:"type:jsonb"`

	// Written once at save time by the staking settlement (tournaments) or
	// cash-out minus buy-in (cash games). Never derived again at read time.
	Profit int64 `gorm:"not null"`

	StakingDeals []StakingDeal `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s Session) IsTournament() bool {
	return s.GameType == GameTournament
}

// RebuyCountOrZero and BountiesOrZero keep nil tournament fields out of the
// arithmetic paths.
func (s Session) RebuyCountOrZero() int {
	if s.RebuyCount == nil {
		return 0
	}
	return *s.RebuyCount
}

func (s Session) BountiesOrZero() int64 {
	if s.Bounties == nil {
		return 0
	}
	return *s.Bounties
}
