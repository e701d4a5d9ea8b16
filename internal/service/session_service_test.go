package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"stakebook/internal/models"
)

func writeSession(bankrollID uint64, gameType string, buyIn, cashOut int64) *models.Session {
	start := time.Date(2026, 4, 1, 19, 0, 0, 0, time.UTC)
	return &models.Session{
		BankrollID: bankrollID,
		GameType:   gameType,
		StartAt:    start,
		EndAt:      start.Add(4 * time.Hour),
		BuyIn:      buyIn,
		CashOut:    cashOut,
	}
}

func TestSessionService_CreateStampsCashProfit(t *testing.T) {
	repo := newStubRepo()
	id := repo.addBankroll("main", true)
	svc := &SessionService{Repo: repo}

	item := writeSession(id, models.GameCash, 20000, 27500)
	if err := svc.Create(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.ExternalID == "" {
		t.Fatalf("external id not assigned")
	}
	stored, err := repo.GetSessionByExternalID(context.Background(), item.ExternalID)
	if err != nil || stored == nil {
		t.Fatalf("stored=%v err=%v", stored, err)
	}
	if stored.Profit != 7500 {
		t.Fatalf("profit=%d want 7500", stored.Profit)
	}
	if stored.Date != item.StartAt {
		t.Fatalf("date=%v want start time", stored.Date)
	}
	if stored.HandsPerHour != 25 {
		t.Fatalf("hands/hour=%d want default 25", stored.HandsPerHour)
	}
}

func TestSessionService_CreateSettlesStakedTournament(t *testing.T) {
	repo := newStubRepo()
	id := repo.addBankroll("main", true)
	svc := &SessionService{Repo: repo}

	item := writeSession(id, models.GameTournament, 10000, 50000)
	rebuys := 1
	item.RebuyCount = &rebuys
	markup := decimal.RequireFromString("1.2")
	item.StakingDeals = []models.StakingDeal{
		{Percentage: decimal.RequireFromString("0.5"), Markup: &markup},
	}
	if err := svc.Create(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, _ := repo.GetSessionByExternalID(context.Background(), item.ExternalID)
	if stored == nil {
		t.Fatalf("session not stored")
	}
	// Backer takes half of the 50000 winnings; player covered 10000 of the
	// two bullets and earned 1000 in markup: 50000-25000-10000+1000.
	if stored.Profit != 16000 {
		t.Fatalf("profit=%d want 16000", stored.Profit)
	}
}

func TestSessionService_CreateClearsTournamentFieldsForCash(t *testing.T) {
	repo := newStubRepo()
	id := repo.addBankroll("main", true)
	svc := &SessionService{Repo: repo}

	item := writeSession(id, models.GameCash, 10000, 12000)
	rebuys := 2
	bounties := int64(500)
	item.RebuyCount = &rebuys
	item.Bounties = &bounties
	item.StakingDeals = []models.StakingDeal{{Percentage: decimal.RequireFromString("0.5")}}
	if err := svc.Create(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	stored, _ := repo.GetSessionByExternalID(context.Background(), item.ExternalID)
	if stored.RebuyCount != nil || stored.Bounties != nil || stored.StakingDeals != nil {
		t.Fatalf("cash session kept tournament fields: %+v", stored)
	}
	if stored.Profit != 2000 {
		t.Fatalf("profit=%d want 2000", stored.Profit)
	}
}

func TestSessionService_CreateRejectsBadInput(t *testing.T) {
	repo := newStubRepo()
	id := repo.addBankroll("main", true)
	svc := &SessionService{Repo: repo}

	bad := writeSession(id, "sitngo", 100, 0)
	if err := svc.Create(context.Background(), bad); err != ErrInvalidGameType {
		t.Fatalf("err=%v want ErrInvalidGameType", err)
	}
	orphan := writeSession(id+99, models.GameCash, 100, 0)
	if err := svc.Create(context.Background(), orphan); err != ErrBankrollNotFound {
		t.Fatalf("err=%v want ErrBankrollNotFound", err)
	}
}

func TestSessionService_ReplaceKeepsExternalID(t *testing.T) {
	repo := newStubRepo()
	id := repo.addBankroll("main", true)
	second := repo.addBankroll("vegas trip", false)
	svc := &SessionService{Repo: repo}

	item := writeSession(id, models.GameCash, 20000, 27500)
	if err := svc.Create(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	oldID := item.ID

	repo.ops = nil
	next := writeSession(second, models.GameCash, 20000, 15000)
	if err := svc.Replace(context.Background(), item.ExternalID, next); err != nil {
		t.Fatalf("replace: %v", err)
	}

	if next.ExternalID != item.ExternalID {
		t.Fatalf("external id changed: %q -> %q", item.ExternalID, next.ExternalID)
	}
	if gone, _ := repo.GetSessionByID(context.Background(), oldID); gone != nil {
		t.Fatalf("old row still present")
	}
	stored, _ := repo.GetSessionByExternalID(context.Background(), item.ExternalID)
	if stored == nil {
		t.Fatalf("replacement not stored")
	}
	if stored.BankrollID != second {
		t.Fatalf("bankroll=%d want %d", stored.BankrollID, second)
	}
	if stored.Profit != -5000 {
		t.Fatalf("profit=%d want -5000, replace must restamp", stored.Profit)
	}

	// Delete-old and insert-new happen inside one transaction.
	want := []string{"begin", "delete:1", "insert:2", "end"}
	if len(repo.ops) != len(want) {
		t.Fatalf("ops=%v want %v", repo.ops, want)
	}
	for i := range want {
		if repo.ops[i] != want[i] {
			t.Fatalf("ops=%v want %v", repo.ops, want)
		}
	}
}

func TestSessionService_ReplaceMissingSession(t *testing.T) {
	repo := newStubRepo()
	repo.addBankroll("main", true)
	svc := &SessionService{Repo: repo}

	next := writeSession(1, models.GameCash, 100, 200)
	if err := svc.Replace(context.Background(), "no-such-id", next); err != ErrSessionNotFound {
		t.Fatalf("err=%v want ErrSessionNotFound", err)
	}
}

func TestSessionService_Delete(t *testing.T) {
	repo := newStubRepo()
	id := repo.addBankroll("main", true)
	svc := &SessionService{Repo: repo}

	item := writeSession(id, models.GameCash, 100, 200)
	if err := svc.Create(context.Background(), item); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), item.ExternalID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if left, _ := repo.GetSessionByExternalID(context.Background(), item.ExternalID); left != nil {
		t.Fatalf("session still present after delete")
	}
	if err := svc.Delete(context.Background(), item.ExternalID); err != ErrSessionNotFound {
		t.Fatalf("err=%v want ErrSessionNotFound", err)
	}
}
