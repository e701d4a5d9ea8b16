package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"stakebook/internal/models"
	"stakebook/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but only the write path and registry reads
// are backed by real state; ops records the transaction boundaries and
// session writes so tests can assert edit-as-replace atomicity.
type stubRepo struct {
	bankrolls    map[uint64]models.Bankroll
	sessions     map[uint64]models.Session
	transactions []models.Transaction
	snapshots    []models.BankrollSnapshot

	nextBankrollID uint64
	nextSessionID  uint64
	ops            []string
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		bankrolls: map[uint64]models.Bankroll{},
		sessions:  map[uint64]models.Session{},
	}
}

func (s *stubRepo) addBankroll(name string, isDefault bool) uint64 {
	s.nextBankrollID++
	s.bankrolls[s.nextBankrollID] = models.Bankroll{
		ID:        s.nextBankrollID,
		Name:      name,
		IsDefault: isDefault,
	}
	return s.nextBankrollID
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.ops = append(s.ops, "begin")
	err := fn(nil)
	s.ops = append(s.ops, "end")
	return err
}

func (s *stubRepo) CreateBankroll(ctx context.Context, item *models.Bankroll) error {
	s.nextBankrollID++
	item.ID = s.nextBankrollID
	s.bankrolls[item.ID] = *item
	return nil
}

func (s *stubRepo) GetBankrollByID(ctx context.Context, id uint64) (*models.Bankroll, error) {
	if item, ok := s.bankrolls[id]; ok {
		out := item
		return &out, nil
	}
	return nil, nil
}

func (s *stubRepo) GetDefaultBankroll(ctx context.Context) (*models.Bankroll, error) {
	for _, item := range s.bankrolls {
		if item.IsDefault {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) EnsureDefaultBankroll(ctx context.Context) (*models.Bankroll, error) {
	if item, _ := s.GetDefaultBankroll(ctx); item != nil {
		return item, nil
	}
	id := s.addBankroll("default", true)
	out := s.bankrolls[id]
	return &out, nil
}

func (s *stubRepo) ListBankrolls(ctx context.Context) ([]models.Bankroll, error) {
	out := make([]models.Bankroll, 0, len(s.bankrolls))
	for id := uint64(1); id <= s.nextBankrollID; id++ {
		if item, ok := s.bankrolls[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubRepo) DeleteBankroll(ctx context.Context, id uint64) error {
	delete(s.bankrolls, id)
	return nil
}

func (s *stubRepo) InsertSessionTx(ctx context.Context, tx *gorm.DB, item *models.Session) error {
	s.nextSessionID++
	item.ID = s.nextSessionID
	s.sessions[item.ID] = *item
	s.ops = append(s.ops, fmt.Sprintf("insert:%d", item.ID))
	return nil
}

func (s *stubRepo) DeleteSessionTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	delete(s.sessions, id)
	s.ops = append(s.ops, fmt.Sprintf("delete:%d", id))
	return nil
}

func (s *stubRepo) GetSessionByID(ctx context.Context, id uint64) (*models.Session, error) {
	if item, ok := s.sessions[id]; ok {
		out := item
		return &out, nil
	}
	return nil, nil
}

func (s *stubRepo) GetSessionByExternalID(ctx context.Context, externalID string) (*models.Session, error) {
	for _, item := range s.sessions {
		if item.ExternalID == externalID {
			out := item
			return &out, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) ListSessions(ctx context.Context, params repository.ListSessionsParams) ([]models.Session, error) {
	return nil, nil
}

func (s *stubRepo) CountSessions(ctx context.Context, params repository.ListSessionsParams) (int64, error) {
	return 0, nil
}

func (s *stubRepo) ListAllSessions(ctx context.Context) ([]models.Session, error) {
	out := make([]models.Session, 0, len(s.sessions))
	for id := uint64(1); id <= s.nextSessionID; id++ {
		if item, ok := s.sessions[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubRepo) InsertTransaction(ctx context.Context, item *models.Transaction) error {
	s.transactions = append(s.transactions, *item)
	return nil
}

func (s *stubRepo) ListTransactions(ctx context.Context, params repository.ListTransactionsParams) ([]models.Transaction, error) {
	return nil, nil
}

func (s *stubRepo) SumTransactions(ctx context.Context, bankrollID uint64, kind string) (int64, error) {
	var total int64
	for _, item := range s.transactions {
		if bankrollID != 0 && item.BankrollID != bankrollID {
			continue
		}
		if strings.TrimSpace(kind) != "" && item.Kind != kind {
			continue
		}
		total += item.Amount
	}
	return total, nil
}

func (s *stubRepo) UpsertBankrollSnapshot(ctx context.Context, item *models.BankrollSnapshot) error {
	s.snapshots = append(s.snapshots, *item)
	return nil
}

func (s *stubRepo) ListBankrollSnapshots(ctx context.Context, params repository.ListSnapshotsParams) ([]models.BankrollSnapshot, error) {
	return nil, nil
}
