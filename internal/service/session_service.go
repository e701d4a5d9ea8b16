package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stakebook/internal/analytics"
	"stakebook/internal/models"
	"stakebook/internal/repository"
)

var (
	ErrBankrollNotFound = errors.New("bankroll not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidGameType  = errors.New("invalid game type")
)

// SessionService owns the write path. Every write recomputes Profit through
// the staking settlement before the row is stored; edits replace the row
// (delete-old, insert-new) inside one transaction so a bankroll move can
// never be observed half-applied.
type SessionService struct {
	Repo repository.Repository
}

func (s *SessionService) Create(ctx context.Context, item *models.Session) error {
	if s == nil || s.Repo == nil || item == nil {
		return nil
	}
	if err := s.prepare(ctx, item); err != nil {
		return err
	}
	if item.ExternalID == "" {
		item.ExternalID = uuid.NewString()
	}
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.InsertSessionTx(ctx, tx, item)
	})
}

// Replace supersedes the session identified by externalID with next,
// keeping the external identity stable across the edit.
func (s *SessionService) Replace(ctx context.Context, externalID string, next *models.Session) error {
	if s == nil || s.Repo == nil || next == nil {
		return nil
	}
	old, err := s.Repo.GetSessionByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrSessionNotFound
	}
	if err := s.prepare(ctx, next); err != nil {
		return err
	}
	next.ID = 0
	next.ExternalID = old.ExternalID
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.DeleteSessionTx(ctx, tx, old.ID); err != nil {
			return err
		}
		return s.Repo.InsertSessionTx(ctx, tx, next)
	})
}

func (s *SessionService) Delete(ctx context.Context, externalID string) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	old, err := s.Repo.GetSessionByExternalID(ctx, externalID)
	if err != nil {
		return err
	}
	if old == nil {
		return ErrSessionNotFound
	}
	return s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.DeleteSessionTx(ctx, tx, old.ID)
	})
}

// prepare normalizes a record and stamps its derived profit. Malformed
// staking percentages are not rejected here — the settlement arithmetic is
// defined over them and entry validation is an upstream concern.
func (s *SessionService) prepare(ctx context.Context, item *models.Session) error {
	item.GameType = strings.TrimSpace(item.GameType)
	switch item.GameType {
	case models.GameCash:
		item.RebuyCount = nil
		item.Bounties = nil
		item.Entrants = nil
		item.Finish = nil
		item.TourneySize = nil
		item.TourneySpeed = nil
		item.DayCount = nil
		item.StakingDeals = nil
	case models.GameTournament:
		item.HighHandBonus = 0
	default:
		return ErrInvalidGameType
	}

	bankroll, err := s.Repo.GetBankrollByID(ctx, item.BankrollID)
	if err != nil {
		return err
	}
	if bankroll == nil {
		return ErrBankrollNotFound
	}

	if item.HandsPerHour <= 0 {
		item.HandsPerHour = 25
	}
	if item.Date.IsZero() {
		item.Date = item.StartAt
	}

	item.Profit = analytics.SessionProfit(*item)
	return nil
}
