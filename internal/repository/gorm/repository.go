package gormrepository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"stakebook/internal/models"
	"stakebook/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Bankrolls ---------------------------------------------------------------

func (s *Store) CreateBankroll(ctx context.Context, item *models.Bankroll) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetBankrollByID(ctx context.Context, id uint64) (*models.Bankroll, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Bankroll
	err := s.db.WithContext(ctx).First(&item, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetDefaultBankroll(ctx context.Context) (*models.Bankroll, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Bankroll
	err := s.db.WithContext(ctx).Where("is_default = ?", true).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// EnsureDefaultBankroll creates the unnamed default bankroll on first run.
func (s *Store) EnsureDefaultBankroll(ctx context.Context) (*models.Bankroll, error) {
	existing, err := s.GetDefaultBankroll(ctx)
	if err != nil || existing != nil {
		return existing, err
	}
	item := &models.Bankroll{Name: "Default", IsDefault: true}
	if err := s.CreateBankroll(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) ListBankrolls(ctx context.Context) ([]models.Bankroll, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Bankroll
	if err := s.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteBankroll(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil || id == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sessionIDs []uint64
		if err := tx.Model(&models.Session{}).Where("bankroll_id = ?", id).
			Pluck("id", &sessionIDs).Error; err != nil {
			return err
		}
		if len(sessionIDs) > 0 {
			if err := tx.Where("session_id IN ?", sessionIDs).
				Delete(&models.StakingDeal{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", sessionIDs).
				Delete(&models.Session{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("bankroll_id = ?", id).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("bankroll_id = ?", id).
			Delete(&models.BankrollSnapshot{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Bankroll{}, id).Error
	})
}

// --- Sessions ----------------------------------------------------------------

func (s *Store) InsertSessionTx(ctx context.Context, tx *gorm.DB, item *models.Session) error {
	if s == nil || tx == nil || item == nil {
		return nil
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) DeleteSessionTx(ctx context.Context, tx *gorm.DB, id uint64) error {
	if s == nil || tx == nil || id == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Where("session_id = ?", id).
		Delete(&models.StakingDeal{}).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&models.Session{}, id).Error
}

func (s *Store) GetSessionByID(ctx context.Context, id uint64) (*models.Session, error) {
	if s == nil || s.db == nil || id == 0 {
		return nil, nil
	}
	var item models.Session
	err := s.db.WithContext(ctx).Preload("StakingDeals").First(&item, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetSessionByExternalID(ctx context.Context, externalID string) (*models.Session, error) {
	if s == nil || s.db == nil || strings.TrimSpace(externalID) == "" {
		return nil, nil
	}
	var item models.Session
	err := s.db.WithContext(ctx).Preload("StakingDeals").
		Where("external_id = ?", strings.TrimSpace(externalID)).First(&item).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSessions(ctx context.Context, params repository.ListSessionsParams) ([]models.Session, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.sessionQuery(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "date")
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Session
	if err := query.Preload("StakingDeals").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountSessions(ctx context.Context, params repository.ListSessionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.sessionQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) sessionQuery(ctx context.Context, params repository.ListSessionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Session{})
	if params.BankrollID != nil && *params.BankrollID != 0 {
		query = query.Where("bankroll_id = ?", *params.BankrollID)
	}
	if params.GameType != nil && strings.TrimSpace(*params.GameType) != "" {
		query = query.Where("game_type = ?", strings.TrimSpace(*params.GameType))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("date >= ?", *params.Since)
	}
	if params.Until != nil && !params.Until.IsZero() {
		query = query.Where("date < ?", *params.Until)
	}
	return query
}

// ListAllSessions loads the full collection with deals, ordered by date, as
// the consistent snapshot the analytics engine computes over.
func (s *Store) ListAllSessions(ctx context.Context) ([]models.Session, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Session
	err := s.db.WithContext(ctx).Preload("StakingDeals").
		Order("date asc, id asc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- Transactions ------------------------------------------------------------

func (s *Store) InsertTransaction(ctx context.Context, item *models.Transaction) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListTransactions(ctx context.Context, params repository.ListTransactionsParams) ([]models.Transaction, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Transaction{})
	if params.BankrollID != nil && *params.BankrollID != 0 {
		query = query.Where("bankroll_id = ?", *params.BankrollID)
	}
	if params.Kind != nil && strings.TrimSpace(*params.Kind) != "" {
		query = query.Where("kind = ?", strings.TrimSpace(*params.Kind))
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.Transaction
	if err := query.Order("created_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) SumTransactions(ctx context.Context, bankrollID uint64, kind string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Transaction{})
	if bankrollID != 0 {
		query = query.Where("bankroll_id = ?", bankrollID)
	}
	if strings.TrimSpace(kind) != "" {
		query = query.Where("kind = ?", strings.TrimSpace(kind))
	}
	var total int64
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// --- Snapshots ---------------------------------------------------------------

func (s *Store) UpsertBankrollSnapshot(ctx context.Context, item *models.BankrollSnapshot) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	var existing models.BankrollSnapshot
	err := s.db.WithContext(ctx).
		Where("bankroll_id = ? AND snapshot_at = ?", item.BankrollID, item.SnapshotAt).
		First(&existing).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if err == gorm.ErrRecordNotFound {
		return s.db.WithContext(ctx).Create(item).Error
	}
	item.ID = existing.ID
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) ListBankrollSnapshots(ctx context.Context, params repository.ListSnapshotsParams) ([]models.BankrollSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.BankrollSnapshot{})
	if params.BankrollID != nil && *params.BankrollID != 0 {
		query = query.Where("bankroll_id = ?", *params.BankrollID)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("snapshot_at >= ?", *params.Since)
	}
	limit := normalizeLimit(params.Limit, 200)
	offset := normalizeOffset(params.Offset)
	var items []models.BankrollSnapshot
	if err := query.Order("snapshot_at desc").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Helpers -----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
