package analytics

import (
	"time"

	"github.com/guttosm/bondpulse/internal/domain/models"
)

// DefaultTrailingMonths is the rolling-window length used when the
// caller does not request one.
const DefaultTrailingMonths = 6

// MonthKey formats a month start as its "YYYY-MM" identifier.
func MonthKey(monthStart time.Time) string {
	return monthStart.Format("2006-01")
}

// TrailingMonths returns the first days of the m calendar months ending
// at the month that contains the day before anchorExclusive, oldest
// first. The window length is exact regardless of data sparsity:
// callers emit one point per returned month even when a month has no
// rows.
func TrailingMonths(anchorExclusive time.Time, m int) []time.Time {
	if m <= 0 {
		m = DefaultTrailingMonths
	}
	last := anchorExclusive.AddDate(0, 0, -1)
	lastMonth := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, time.UTC)

	months := make([]time.Time, m)
	for i := 0; i < m; i++ {
		months[i] = lastMonth.AddDate(0, i-(m-1), 0)
	}
	return months
}

// MonthlyPoint assembles one trailing-window point for a dealer from
// that month's independently computed client and market rankings. A
// scope the dealer is absent from yields a nil rank — null, not zero or
// last place. Client volume comes from the client scope only.
func MonthlyPoint(monthStart time.Time, dealer string, client, market []models.RankEntry) models.MonthlyRankPoint {
	point := models.MonthlyRankPoint{
		MonthKey: MonthKey(monthStart),
		Label:    monthStart,
	}
	if c := FindRank(client, dealer); c != nil {
		rank := c.Rank
		point.ClientRank = &rank
		point.ClientVolume = c.Volume
	}
	if m := FindRank(market, dealer); m != nil {
		rank := m.Rank
		point.MarketRank = &rank
	}
	if point.ClientRank != nil && point.MarketRank != nil {
		delta := *point.MarketRank - *point.ClientRank
		point.Delta = &delta
	}
	return point
}
