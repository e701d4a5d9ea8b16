package analytics

import (
	"testing"

	"github.com/shopspring/decimal"

	"stakebook/internal/models"
)

func deal(percentage string, markup string) models.StakingDeal {
	d := models.StakingDeal{Percentage: decimal.RequireFromString(percentage)}
	if markup != "" {
		m := decimal.RequireFromString(markup)
		d.Markup = &m
	}
	return d
}

func TestSettle_BackedWithMarkupAndRebuy(t *testing.T) {
	got := Settle(100, 1, 500, 0, []models.StakingDeal{deal("0.5", "1.2")})

	if got.TotalBuyIn != 200 {
		t.Fatalf("TotalBuyIn=%d want 200", got.TotalBuyIn)
	}
	if got.TotalWinnings != 500 {
		t.Fatalf("TotalWinnings=%d want 500", got.TotalWinnings)
	}
	if got.StakerPayout.Cmp(decimal.NewFromInt(250)) != 0 {
		t.Fatalf("StakerPayout=%s want 250", got.StakerPayout)
	}
	if got.StakerContribution.Cmp(decimal.NewFromInt(100)) != 0 {
		t.Fatalf("StakerContribution=%s want 100", got.StakerContribution)
	}
	if got.PlayerBuyInCost.Cmp(decimal.NewFromInt(100)) != 0 {
		t.Fatalf("PlayerBuyInCost=%s want 100", got.PlayerBuyInCost)
	}
	if got.MarkupEarned.Cmp(decimal.NewFromInt(10)) != 0 {
		t.Fatalf("MarkupEarned=%s want 10", got.MarkupEarned)
	}
	if got.NetProfit != 160 {
		t.Fatalf("NetProfit=%d want 160", got.NetProfit)
	}
}

func TestSettle_NoDealsDegeneratesToPlainProfit(t *testing.T) {
	got := Settle(100, 1, 500, 0, nil)
	if got.NetProfit != 300 {
		t.Fatalf("NetProfit=%d want 300", got.NetProfit)
	}
	if !got.StakerPayout.IsZero() || !got.MarkupEarned.IsZero() {
		t.Fatalf("staking components should be zero: %+v", got)
	}
}

func TestSettle_MarkupUsesOriginalBuyInOnly(t *testing.T) {
	// Markup income must not grow with rebuys.
	noRebuys := Settle(100, 0, 0, 0, []models.StakingDeal{deal("0.5", "1.2")})
	withRebuys := Settle(100, 3, 0, 0, []models.StakingDeal{deal("0.5", "1.2")})
	if noRebuys.MarkupEarned.Cmp(withRebuys.MarkupEarned) != 0 {
		t.Fatalf("markup changed with rebuys: %s vs %s",
			noRebuys.MarkupEarned, withRebuys.MarkupEarned)
	}
}

func TestSettle_DefaultMarkupIsFaceValue(t *testing.T) {
	// At markup 1.0 a fully backed entry with no winnings costs the player
	// nothing and earns nothing.
	got := Settle(100, 0, 0, 0, []models.StakingDeal{deal("1.0", "")})
	if got.NetProfit != 0 {
		t.Fatalf("NetProfit=%d want 0", got.NetProfit)
	}
}

func TestSettle_BountiesCountAsWinnings(t *testing.T) {
	got := Settle(100, 0, 200, 50, []models.StakingDeal{deal("0.2", "")})
	// Winnings 250, payout 50, player cost 80: net 120.
	if got.NetProfit != 120 {
		t.Fatalf("NetProfit=%d want 120", got.NetProfit)
	}
}

func TestSettle_PartialBackingMultipleDeals(t *testing.T) {
	got := Settle(1000, 0, 3000, 0, []models.StakingDeal{
		deal("0.25", "1.1"),
		deal("0.1", ""),
	})
	// Payout 750+300, contribution 350, player cost 650, markup 25.
	if got.NetProfit != 1325 {
		t.Fatalf("NetProfit=%d want 1325", got.NetProfit)
	}
}

func TestSettle_RoundsFractionalResult(t *testing.T) {
	got := Settle(100, 0, 101, 0, []models.StakingDeal{deal("0.333", "")})
	// Payout 33.633, player cost 66.7: net 0.667 rounds to 1.
	if got.NetProfit != 1 {
		t.Fatalf("NetProfit=%d want 1", got.NetProfit)
	}
}

func TestSettle_NegativeRebuyCountTreatedAsZero(t *testing.T) {
	got := Settle(100, -2, 50, 0, nil)
	if got.TotalBuyIn != 100 || got.NetProfit != -50 {
		t.Fatalf("got=%+v want buy-in 100, net -50", got)
	}
}

func TestCashProfit(t *testing.T) {
	if got := CashProfit(50, 120); got != 70 {
		t.Fatalf("CashProfit=%d want 70", got)
	}
}

func TestSessionProfit_Routing(t *testing.T) {
	cash := models.Session{GameType: models.GameCash, BuyIn: 50, CashOut: 120}
	if got := SessionProfit(cash); got != 70 {
		t.Fatalf("cash profit=%d want 70", got)
	}

	rebuys := 1
	tourney := models.Session{
		GameType:     models.GameTournament,
		BuyIn:        100,
		CashOut:      500,
		RebuyCount:   &rebuys,
		StakingDeals: []models.StakingDeal{deal("0.5", "1.2")},
	}
	if got := SessionProfit(tourney); got != 160 {
		t.Fatalf("tournament profit=%d want 160", got)
	}
}
