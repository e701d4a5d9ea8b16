package analytics

import (
	"testing"
	"time"

	"stakebook/internal/models"
)

var filterNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func filterSession(id uint64, bankrollID uint64, game string, date time.Time) models.Session {
	return models.Session{
		ID:         id,
		BankrollID: bankrollID,
		GameType:   game,
		Date:       date,
		StartAt:    date,
		EndAt:      date.Add(2 * time.Hour),
	}
}

func filterFixture() []models.Session {
	return []models.Session{
		filterSession(1, 1, models.GameCash, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)),
		filterSession(2, 1, models.GameTournament, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		filterSession(3, 2, models.GameCash, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		filterSession(4, 2, models.GameCash, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)),
	}
}

func ids(sessions []models.Session) []uint64 {
	out := make([]uint64, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func sameIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter_AllDimensionsOpen(t *testing.T) {
	got := Filter(filterFixture(), Scope{}, filterNow)
	if !sameIDs(ids(got), []uint64{1, 2, 3, 4}) {
		t.Fatalf("ids=%v want all in order", ids(got))
	}
}

func TestFilter_Bankroll(t *testing.T) {
	id := uint64(2)
	got := Filter(filterFixture(), Scope{BankrollID: &id}, filterNow)
	if !sameIDs(ids(got), []uint64{3, 4}) {
		t.Fatalf("ids=%v want [3 4]", ids(got))
	}
}

func TestFilter_GameType(t *testing.T) {
	got := Filter(filterFixture(), Scope{Game: GameTournamentsOnly}, filterNow)
	if !sameIDs(ids(got), []uint64{2}) {
		t.Fatalf("ids=%v want [2]", ids(got))
	}
	got = Filter(filterFixture(), Scope{Game: GameCashOnly}, filterNow)
	if !sameIDs(ids(got), []uint64{1, 3, 4}) {
		t.Fatalf("ids=%v want [1 3 4]", ids(got))
	}
}

func TestFilter_YearToDateBoundary(t *testing.T) {
	got := Filter(filterFixture(), Scope{Range: RangeYearToDate}, filterNow)
	// Jan 1 of the current year is inclusive; Dec 31 of the prior year is out.
	if !sameIDs(ids(got), []uint64{1, 2, 3}) {
		t.Fatalf("ids=%v want [1 2 3]", ids(got))
	}
}

func TestFilter_CalendarMonthWindow(t *testing.T) {
	got := Filter(filterFixture(), Scope{Range: RangeLastMonth}, filterNow)
	// Window opens May 15 (one calendar month back), so only the June session.
	if !sameIDs(ids(got), []uint64{1}) {
		t.Fatalf("ids=%v want [1]", ids(got))
	}
	got = Filter(filterFixture(), Scope{Range: RangeLastThreeMonths}, filterNow)
	if !sameIDs(ids(got), []uint64{1, 2}) {
		t.Fatalf("ids=%v want [1 2]", ids(got))
	}
}

func TestFilter_Composition_Idempotent(t *testing.T) {
	id := uint64(1)
	first := Filter(filterFixture(), Scope{BankrollID: &id, Game: GameCashOnly, Range: RangeYearToDate}, filterNow)
	second := Filter(first, Scope{Game: GameCashOnly}, filterNow)
	if !sameIDs(ids(first), ids(second)) {
		t.Fatalf("refiltering changed subset: %v vs %v", ids(first), ids(second))
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	if got := Filter(nil, Scope{Game: GameCashOnly, Range: RangeLastYear}, filterNow); len(got) != 0 {
		t.Fatalf("got=%v want empty", got)
	}
}

func TestParseScopes(t *testing.T) {
	if ParseGameScope("tournaments") != GameTournamentsOnly {
		t.Fatalf("parse tournaments failed")
	}
	if ParseGameScope("bogus") != GameAll {
		t.Fatalf("unknown game scope should fall back to all")
	}
	if ParseTimeRange("ytd") != RangeYearToDate {
		t.Fatalf("parse ytd failed")
	}
	if ParseTimeRange("") != RangeAll {
		t.Fatalf("empty range should fall back to all")
	}
	for _, r := range []TimeRange{RangeAll, RangeLastMonth, RangeLastThreeMonths, RangeLastSixMonths, RangeLastYear, RangeYearToDate} {
		if ParseTimeRange(r.String()) != r {
			t.Fatalf("round trip failed for %v", r)
		}
	}
}
