package analytics

import (
	"time"

	"stakebook/internal/models"
)

// GameScope narrows a subset to one game kind.
type GameScope int

const (
	GameAll GameScope = iota
	GameCashOnly
	GameTournamentsOnly
)

// TimeRange narrows a subset to a trailing calendar window measured from a
// caller-supplied "now". Month windows use calendar-month arithmetic, not
// fixed day counts; the lower bound is inclusive.
type TimeRange int

const (
	RangeAll TimeRange = iota
	RangeLastMonth
	RangeLastThreeMonths
	RangeLastSixMonths
	RangeLastYear
	RangeYearToDate
)

// Scope is the three independent filter dimensions. A nil BankrollID selects
// sessions from every bankroll; the registry is responsible for resolving
// named selections (default, custom, all) down to this form.
type Scope struct {
	BankrollID *uint64
	Game       GameScope
	Range      TimeRange
}

// Filter returns the ordered subset of sessions matching every dimension of
// scope. It is a pure projection: no reordering, no mutation, and an empty
// result is a valid output every metric must accept.
func Filter(sessions []models.Session, scope Scope, now time.Time) []models.Session {
	start, bounded := scope.Range.Start(now)
	out := make([]models.Session, 0, len(sessions))
	for _, s := range sessions {
		if scope.BankrollID != nil && s.BankrollID != *scope.BankrollID {
			continue
		}
		switch scope.Game {
		case GameCashOnly:
			if s.IsTournament() {
				continue
			}
		case GameTournamentsOnly:
			if !s.IsTournament() {
				continue
			}
		}
		if bounded && s.Date.Before(start) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Start reports the inclusive lower bound of the window, or bounded=false
// for RangeAll.
func (r TimeRange) Start(now time.Time) (start time.Time, bounded bool) {
	switch r {
	case RangeLastMonth:
		return now.AddDate(0, -1, 0), true
	case RangeLastThreeMonths:
		return now.AddDate(0, -3, 0), true
	case RangeLastSixMonths:
		return now.AddDate(0, -6, 0), true
	case RangeLastYear:
		return now.AddDate(-1, 0, 0), true
	case RangeYearToDate:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	default:
		return time.Time{}, false
	}
}

func (g GameScope) String() string {
	switch g {
	case GameCashOnly:
		return "cash"
	case GameTournamentsOnly:
		return "tournaments"
	default:
		return "all"
	}
}

func (r TimeRange) String() string {
	switch r {
	case RangeLastMonth:
		return "1m"
	case RangeLastThreeMonths:
		return "3m"
	case RangeLastSixMonths:
		return "6m"
	case RangeLastYear:
		return "1y"
	case RangeYearToDate:
		return "ytd"
	default:
		return "all"
	}
}

// ParseGameScope maps the wire form ("all", "cash", "tournaments") back to
// a scope; unknown values fall back to all so a stale client never errors a
// read path.
func ParseGameScope(v string) GameScope {
	switch v {
	case "cash":
		return GameCashOnly
	case "tournaments":
		return GameTournamentsOnly
	default:
		return GameAll
	}
}

func ParseTimeRange(v string) TimeRange {
	switch v {
	case "1m":
		return RangeLastMonth
	case "3m":
		return RangeLastThreeMonths
	case "6m":
		return RangeLastSixMonths
	case "1y":
		return RangeLastYear
	case "ytd":
		return RangeYearToDate
	default:
		return RangeAll
	}
}
