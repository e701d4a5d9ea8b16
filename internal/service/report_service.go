package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"stakebook/internal/analytics"
	"stakebook/internal/config"
)

// Overview is the full metric table for one (bankroll, game, range) triple.
// Amounts are signed integers in minor currency units next to the ISO code;
// ratios are pre-formatted percentage strings with zero decimals.
type Overview struct {
	Bankroll string `json:"bankroll"`
	Game     string `json:"game"`
	Range    string `json:"range"`
	Currency string `json:"currency"`

	Sessions int `json:"sessions"`

	TotalProfit         int64 `json:"total_profit"`
	HourlyRate          int64 `json:"hourly_rate"`
	AvgProfitPerSession int64 `json:"avg_profit_per_session"`
	ProfitPer100Hands   int64 `json:"profit_per_100_hands"`

	WinRatio      string `json:"win_ratio"`
	AvgROI        string `json:"avg_roi"`
	TournamentROI string `json:"tournament_roi"`
	ITMRatio      string `json:"itm_ratio"`

	BigBlindsPerHour decimal.Decimal `json:"big_blinds_per_hour"`

	TotalTime   string `json:"total_time"`
	AvgDuration string `json:"avg_duration"`

	Balance int64 `json:"balance"`
}

// ReportService glues the registry snapshot, the dimension filter, and the
// metric table together for read endpoints and the snapshot job.
type ReportService struct {
	Registry  *BankrollRegistry
	Analytics config.AnalyticsConfig
}

func (s *ReportService) Overview(ctx context.Context, sel BankrollSelection, game analytics.GameScope, rng analytics.TimeRange, now time.Time) (Overview, error) {
	out := Overview{
		Bankroll:         selectionLabel(sel),
		Game:             game.String(),
		Range:            rng.String(),
		Currency:         s.Analytics.Currency,
		WinRatio:         "0%",
		AvgROI:           "0%",
		TournamentROI:    "0%",
		ITMRatio:         "0%",
		BigBlindsPerHour: decimal.Zero,
		TotalTime:        analytics.Duration{}.String(),
		AvgDuration:      analytics.Duration{}.String(),
	}
	if s == nil || s.Registry == nil {
		return out, nil
	}

	sessions, bankrollID, err := s.Registry.Snapshot(ctx, sel)
	if err != nil {
		return out, err
	}
	subset := analytics.Filter(sessions, analytics.Scope{
		BankrollID: bankrollID,
		Game:       game,
		Range:      rng,
	}, now)

	out.Sessions = len(subset)
	out.TotalProfit = analytics.TotalProfit(subset)
	out.HourlyRate = analytics.HourlyRate(subset)
	out.AvgProfitPerSession = analytics.AvgProfitPerSession(subset)
	out.ProfitPer100Hands = analytics.ProfitPer100Hands(subset, s.Analytics.HandsPerHour)
	out.WinRatio = analytics.WinRatioPercent(subset)
	out.AvgROI = analytics.AvgROI(subset)
	out.TournamentROI = analytics.TournamentROI(subset)
	out.ITMRatio = analytics.ITMRatio(subset)
	out.BigBlindsPerHour = analytics.BigBlindsPerHour(subset)
	out.TotalTime = analytics.TotalDuration(subset).String()
	out.AvgDuration = analytics.AvgDuration(subset).String()

	balance, err := s.Registry.Balance(ctx, sel)
	if err != nil {
		return out, err
	}
	out.Balance = balance

	return out, nil
}

func selectionLabel(sel BankrollSelection) string {
	switch sel.Kind {
	case SelectAll:
		return "all"
	case SelectCustom:
		return "custom"
	default:
		return "default"
	}
}
