// Package analytics is the pure computation core: free functions over value
// snapshots of sessions, with no store access and no mutation. Every division
// over a possibly-empty subset returns the documented zero value instead of
// an error.
package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stakebook/internal/models"
)

// Duration is a session length decomposed into a whole-hour part and a
// truncated minute remainder. Aggregation is component-wise: hour parts and
// minute parts are summed (and averaged) as independent arrays, never by
// converting back to elapsed seconds first. This is the historical rule the
// stored outputs were produced with; do not replace it with mean elapsed
// time even though that would be the "correct" math.
type Duration struct {
	Hours   int
	Minutes int
}

var sixty = decimal.NewFromInt(60)

// SessionDuration measures end minus start, plus the day-two span when both
// of its timestamps are present. A non-positive span yields a zero duration.
func SessionDuration(s models.Session) Duration {
	elapsed := s.EndAt.Sub(s.StartAt)
	if s.DayTwoStartAt != nil && s.DayTwoEndAt != nil {
		elapsed += s.DayTwoEndAt.Sub(*s.DayTwoStartAt)
	}
	total := int(elapsed.Minutes())
	if total <= 0 {
		return Duration{}
	}
	return Duration{Hours: total / 60, Minutes: total % 60}
}

// SumDurations adds hour parts and minute parts separately. The minute
// component is deliberately not normalized, so (1h,50m)+(2h,10m) is
// (3h,60m); TotalHours still reads it as 4.0 hours.
func SumDurations(ds []Duration) Duration {
	var out Duration
	for _, d := range ds {
		out.Hours += d.Hours
		out.Minutes += d.Minutes
	}
	return out
}

// AverageDuration integer-divides each component sum by the set size.
func AverageDuration(ds []Duration) Duration {
	if len(ds) == 0 {
		return Duration{}
	}
	sum := SumDurations(ds)
	return Duration{
		Hours:   sum.Hours / len(ds),
		Minutes: sum.Minutes / len(ds),
	}
}

// TotalHours is the normalized hour count: hours + minutes/60.
func (d Duration) TotalHours() decimal.Decimal {
	return decimal.NewFromInt(int64(d.Hours)).
		Add(decimal.NewFromInt(int64(d.Minutes)).Div(sixty))
}

// String renders an abbreviated duration such as "3h 20m", carrying minute
// overflow into hours for display.
func (d Duration) String() string {
	h, m := d.Hours, d.Minutes
	h += m / 60
	m %= 60
	return fmt.Sprintf("%dh %dm", h, m)
}
