package analytics

import (
	"github.com/shopspring/decimal"

	"stakebook/internal/models"
)

// Settlement is the decomposition of a backed tournament's gross winnings
// into backer payouts, the player's own cost basis, and markup income. It is
// computed once at save time; NetProfit is the value stored on the session.
type Settlement struct {
	TotalBuyIn    int64
	TotalWinnings int64

	StakerPayout       decimal.Decimal
	StakerContribution decimal.Decimal
	PlayerBuyInCost    decimal.Decimal
	MarkupEarned       decimal.Decimal

	NetProfit int64
}

// Settle splits a tournament result across its staking deals.
//
// Backers are paid their percentage of total gross winnings (cash-out plus
// bounties) and are credited with the same percentage of the rebuy-inflated
// buy-in. Markup income, however, is computed against the original buy-in
// only, not the total — rebuys are not marked up. That asymmetry matches the
// historical settlement outputs and must not be "fixed" silently.
//
// Deal percentages are not validated here: sums above 1 or negative values
// flow through the arithmetic. Upstream entry validation owns rejection.
func Settle(buyIn int64, rebuyCount int, cashOut, bounties int64, deals []models.StakingDeal) Settlement {
	if rebuyCount < 0 {
		rebuyCount = 0
	}
	totalBuyIn := buyIn * int64(1+rebuyCount)
	totalWinnings := cashOut + bounties

	winnings := decimal.NewFromInt(totalWinnings)
	one := decimal.NewFromInt(1)

	payout := decimal.Zero
	fraction := decimal.Zero
	markup := decimal.Zero
	for _, d := range deals {
		payout = payout.Add(winnings.Mul(d.Percentage))
		fraction = fraction.Add(d.Percentage)
		markup = markup.Add(
			decimal.NewFromInt(buyIn).Mul(d.Percentage).Mul(d.MarkupOrOne().Sub(one)))
	}

	contribution := decimal.NewFromInt(totalBuyIn).Mul(fraction)
	playerCost := decimal.NewFromInt(totalBuyIn).Sub(contribution)

	net := winnings.Sub(payout).Sub(playerCost).Add(markup).Round(0).IntPart()

	return Settlement{
		TotalBuyIn:         totalBuyIn,
		TotalWinnings:      totalWinnings,
		StakerPayout:       payout,
		StakerContribution: contribution,
		PlayerBuyInCost:    playerCost,
		MarkupEarned:       markup,
		NetProfit:          net,
	}
}

// CashProfit is the cash-game rule: cash-out minus buy-in, no settlement.
func CashProfit(buyIn, cashOut int64) int64 {
	return cashOut - buyIn
}

// SessionProfit routes a session through the applicable profit rule.
func SessionProfit(s models.Session) int64 {
	if s.IsTournament() {
		return Settle(s.BuyIn, s.RebuyCountOrZero(), s.CashOut, s.BountiesOrZero(), s.StakingDeals).NetProfit
	}
	return CashProfit(s.BuyIn, s.CashOut)
}
