package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stakebook/internal/models"
)

type ListSessionsParams struct {
	BankrollID *uint64
	GameType   *string
	Since      *time.Time
	Until      *time.Time
	Limit      int
	Offset     int
	OrderBy    string
	Asc        *bool
}

type ListTransactionsParams struct {
	BankrollID *uint64
	Kind       *string
	Limit      int
	Offset     int
}

type ListSnapshotsParams struct {
	BankrollID *uint64
	Since      *time.Time
	Limit      int
	Offset     int
}

// Repository is the storage surface behind the registry and services. Reads
// used by the analytics engine return full value snapshots; the engine itself
// never touches the store.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Bankrolls.
	CreateBankroll(ctx context.Context, item *models.Bankroll) error
	GetBankrollByID(ctx context.Context, id uint64) (*models.Bankroll, error)
	GetDefaultBankroll(ctx context.Context) (*models.Bankroll, error)
	EnsureDefaultBankroll(ctx context.Context) (*models.Bankroll, error)
	ListBankrolls(ctx context.Context) ([]models.Bankroll, error)
	DeleteBankroll(ctx context.Context, id uint64) error

	// Sessions. Writes go through InsertSessionTx/DeleteSessionTx so that
	// edit-as-replace stays atomic inside one transaction.
	InsertSessionTx(ctx context.Context, tx *gorm.DB, item *models.Session) error
	DeleteSessionTx(ctx context.Context, tx *gorm.DB, id uint64) error
	GetSessionByID(ctx context.Context, id uint64) (*models.Session, error)
	GetSessionByExternalID(ctx context.Context, externalID string) (*models.Session, error)
	ListSessions(ctx context.Context, params ListSessionsParams) ([]models.Session, error)
	CountSessions(ctx context.Context, params ListSessionsParams) (int64, error)
	ListAllSessions(ctx context.Context) ([]models.Session, error)

	// Ledger transactions.
	InsertTransaction(ctx context.Context, item *models.Transaction) error
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]models.Transaction, error)
	SumTransactions(ctx context.Context, bankrollID uint64, kind string) (int64, error)

	// Metric snapshots.
	UpsertBankrollSnapshot(ctx context.Context, item *models.BankrollSnapshot) error
	ListBankrollSnapshots(ctx context.Context, params ListSnapshotsParams) ([]models.BankrollSnapshot, error)
}
