package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stakebook/internal/analytics"
	"stakebook/internal/models"
	"stakebook/internal/repository"
)

// SnapshotService materializes one overview row per bankroll per run so
// trend charts read precomputed rows instead of replaying every session.
// Rows are keyed by (bankroll, day); a rerun on the same day overwrites.
type SnapshotService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *SnapshotService) RunOnce(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	bankrolls, err := s.Repo.ListBankrolls(ctx)
	if err != nil {
		return err
	}
	sessions, err := s.Repo.ListAllSessions(ctx)
	if err != nil {
		return err
	}
	day := time.Now().UTC().Truncate(24 * time.Hour)
	for _, b := range bankrolls {
		id := b.ID
		subset := analytics.Filter(sessions, analytics.Scope{BankrollID: &id}, day)
		total := analytics.TotalDuration(subset)
		item := &models.BankrollSnapshot{
			BankrollID:   b.ID,
			SnapshotAt:   day,
			Sessions:     len(subset),
			TotalProfit:  analytics.TotalProfit(subset),
			TotalHours:   total.Hours,
			TotalMinutes: total.Minutes,
			HourlyRate:   analytics.HourlyRate(subset),
			WinRatio:     analytics.WinRatio(subset),
		}
		if err := s.Repo.UpsertBankrollSnapshot(ctx, item); err != nil {
			if s.Logger != nil {
				s.Logger.Warn("snapshot upsert failed",
					zap.Uint64("bankroll_id", b.ID), zap.Error(err))
			}
			continue
		}
	}
	return nil
}
