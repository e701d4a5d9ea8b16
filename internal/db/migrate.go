package db

import (
	"stakebook/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Bankroll{},
		&models.Session{},
		&models.StakingDeal{},
		&models.Transaction{},
		&models.BankrollSnapshot{},
	)
}
