package analytics

import (
	"strings"

	"github.com/shopspring/decimal"

	"stakebook/internal/models"
)

var oneHundred = decimal.NewFromInt(100)

// TotalProfit is the tally over a filtered subset.
func TotalProfit(sessions []models.Session) int64 {
	var total int64
	for _, s := range sessions {
		total += s.Profit
	}
	return total
}

// TotalDuration aggregates session durations component-wise.
func TotalDuration(sessions []models.Session) Duration {
	ds := make([]Duration, 0, len(sessions))
	for _, s := range sessions {
		ds = append(ds, SessionDuration(s))
	}
	return SumDurations(ds)
}

// AvgDuration averages the hour and minute components independently.
func AvgDuration(sessions []models.Session) Duration {
	ds := make([]Duration, 0, len(sessions))
	for _, s := range sessions {
		ds = append(ds, SessionDuration(s))
	}
	return AverageDuration(ds)
}

// HourlyRate divides total profit by normalized total hours. Below one whole
// hour the denominator is the minute fraction alone. Zero playtime yields 0.
func HourlyRate(sessions []models.Session) int64 {
	if len(sessions) == 0 {
		return 0
	}
	total := TotalDuration(sessions)
	var denom decimal.Decimal
	if total.Hours < 1 {
		denom = decimal.NewFromInt(int64(total.Minutes)).Div(sixty)
	} else {
		denom = total.TotalHours()
	}
	if denom.IsZero() {
		return 0
	}
	return decimal.NewFromInt(TotalProfit(sessions)).Div(denom).Round(0).IntPart()
}

// AvgProfitPerSession is integer division of the tally by the subset size.
func AvgProfitPerSession(sessions []models.Session) int64 {
	if len(sessions) == 0 {
		return 0
	}
	return TotalProfit(sessions) / int64(len(sessions))
}

// WinRatio is the fraction of sessions with positive profit, in [0,1].
func WinRatio(sessions []models.Session) decimal.Decimal {
	if len(sessions) == 0 {
		return decimal.Zero
	}
	var wins int64
	for _, s := range sessions {
		if s.Profit > 0 {
			wins++
		}
	}
	return decimal.NewFromInt(wins).Div(decimal.NewFromInt(int64(len(sessions))))
}

func WinRatioPercent(sessions []models.Session) string {
	return FormatPercent(WinRatio(sessions))
}

// ProfitPer100Hands estimates hands played from rounded total hours times
// the duration-weighted hands-per-hour rate, then scales profit per hand to
// a 100-hand basis. Sessions without a stored rate fall back to
// defaultHandsPerHour; when every session carries the same rate the estimate
// reduces to round(totalHours) times that rate. Zero estimated hands yields 0.
func ProfitPer100Hands(sessions []models.Session, defaultHandsPerHour int) int64 {
	if len(sessions) == 0 {
		return 0
	}
	weighted := decimal.Zero
	totalHours := decimal.Zero
	for _, s := range sessions {
		hph := s.HandsPerHour
		if hph <= 0 {
			hph = defaultHandsPerHour
		}
		hours := SessionDuration(s).TotalHours()
		weighted = weighted.Add(hours.Mul(decimal.NewFromInt(int64(hph))))
		totalHours = totalHours.Add(hours)
	}
	rounded := TotalDuration(sessions).TotalHours().Round(0)
	if rounded.IsZero() || totalHours.IsZero() {
		return 0
	}
	hands := rounded.Mul(weighted.Div(totalHours)).Round(0).IntPart()
	if hands <= 0 {
		return 0
	}
	return decimal.NewFromInt(TotalProfit(sessions)).
		Div(decimal.NewFromInt(hands)).
		Mul(oneHundred).
		Round(0).
		IntPart()
}

// BigBlindsPerHour covers cash sessions whose stakes label parses to a big
// blind size. Both the big blinds won and the hours played count only those
// sessions, so an unparseable stakes label cannot skew the rate.
func BigBlindsPerHour(sessions []models.Session) decimal.Decimal {
	bbWon := decimal.Zero
	var durs []Duration
	for _, s := range sessions {
		if s.IsTournament() {
			continue
		}
		bb := BigBlindSize(s.Stakes)
		if bb <= 0 {
			continue
		}
		bbWon = bbWon.Add(decimal.NewFromInt(s.Profit).Div(decimal.NewFromInt(bb)))
		durs = append(durs, SessionDuration(s))
	}
	hours := SumDurations(durs).TotalHours()
	if hours.IsZero() {
		return decimal.Zero
	}
	return bbWon.Div(hours).Round(2)
}

// BigBlindSize parses a stakes label such as "1/2", "$2/$5", or "1/2/5"
// (the last component is the big blind) into minor currency units. Returns
// 0 when the label does not parse.
func BigBlindSize(stakes string) int64 {
	parts := strings.Split(stakes, "/")
	last := strings.TrimSpace(parts[len(parts)-1])
	last = strings.TrimPrefix(last, "$")
	d, err := decimal.NewFromString(last)
	if err != nil {
		return 0
	}
	return d.Mul(oneHundred).Round(0).IntPart()
}

// Invested is the cost basis of a session: buy-in plus one extra buy-in per
// rebuy for tournaments, buy-in alone for cash games.
func Invested(s models.Session) int64 {
	if s.IsTournament() {
		return s.BuyIn * int64(1+s.RebuyCountOrZero())
	}
	return s.BuyIn
}

// AvgROI combines cash and tournament sessions: (winnings − invested) over
// invested, where tournament winnings include bounties. Zero investment
// yields "0%".
func AvgROI(sessions []models.Session) string {
	var invested, winnings int64
	for _, s := range sessions {
		invested += Invested(s)
		winnings += s.CashOut
		if s.IsTournament() {
			winnings += s.BountiesOrZero()
		}
	}
	return roiPercent(winnings, invested)
}

// TournamentROI considers tournaments only and compares gross cash-outs
// (bounties excluded) against rebuy-inflated buy-ins.
func TournamentROI(sessions []models.Session) string {
	var invested, winnings int64
	for _, s := range sessions {
		if !s.IsTournament() {
			continue
		}
		invested += s.BuyIn * int64(1+s.RebuyCountOrZero())
		winnings += s.CashOut
	}
	return roiPercent(winnings, invested)
}

// ITMRatio is the fraction of tournaments that finished in the money
// (positive profit), over the tournament count in the subset.
func ITMRatio(sessions []models.Session) string {
	var tournaments, itm int64
	for _, s := range sessions {
		if !s.IsTournament() {
			continue
		}
		tournaments++
		if s.Profit > 0 {
			itm++
		}
	}
	if tournaments == 0 {
		return "0%"
	}
	return FormatPercent(decimal.NewFromInt(itm).Div(decimal.NewFromInt(tournaments)))
}

func roiPercent(winnings, invested int64) string {
	if invested == 0 {
		return "0%"
	}
	ratio := decimal.NewFromInt(winnings - invested).Div(decimal.NewFromInt(invested))
	return FormatPercent(ratio)
}

// FormatPercent renders a ratio as a percentage with zero decimal places.
func FormatPercent(ratio decimal.Decimal) string {
	return ratio.Mul(oneHundred).Round(0).String() + "%"
}
