package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/models"
)

// WeekKey returns the ISO-8601 week-numbering key for a date (e.g.
// "2025-W37") together with the Monday of that week, which labels the
// bucket.
func WeekKey(d time.Time) (string, time.Time) {
	year, week := d.ISOWeek()
	key := fmt.Sprintf("%d-W%02d", year, week)

	// back up to Monday; Go's Sunday is 0
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -(weekday - 1))
	return key, monday
}

// WeeklyBuckets groups rows into ISO-week buckets split by dealer
// action and dealer name, accumulating ranking and display volumes
// separately. Buckets are returned oldest-first; weeks with no rows
// produce no bucket.
//
// Attribution follows the dealer-perspective convention (DealerSide):
// the side field records the client's action, so a client Buy lands in
// the dealer's sell series and a client Sell in the dealer's buy
// series. Rows with no dealer or a side outside Buy/Sell are skipped.
func WeeklyBuckets(rows []models.TradeRecord) []*models.WeekBucket {
	byKey := make(map[string]*models.WeekBucket)

	for i := range rows {
		row := &rows[i]
		if !row.Side.IsBuyOrSell() || !row.HasDealer() {
			continue
		}
		key, monday := WeekKey(row.TradeDate)
		bucket, ok := byKey[key]
		if !ok {
			bucket = models.NewWeekBucket(key, monday)
			byKey[key] = bucket
		}

		dealer := row.Dealer()
		switch models.DealerSide(row.Side) {
		case models.SideBuy:
			bucket.BuyRanking[dealer] += row.RankingVolume
			bucket.BuyDisplay[dealer] += row.DisplayVolume
		case models.SideSell:
			bucket.SellRanking[dealer] += row.RankingVolume
			bucket.SellDisplay[dealer] += row.DisplayVolume
		}
	}

	buckets := make([]*models.WeekBucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Label.Before(buckets[j].Label)
	})
	return buckets
}
