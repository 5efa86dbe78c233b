package analytics

import (
	"sort"

	"github.com/guttosm/bondpulse/internal/domain/models"
)

// DefaultTopN is the named-dealer count used when the caller does not
// request one.
const DefaultTopN = 10

// CollapseTopN keeps the top n dealers by total ranking volume across
// all buckets and folds every other dealer, per bucket per side, into
// the synthetic "All Other Dealers" entry.
//
// Membership and order come only from the cross-bucket ranking-volume
// totals (ties broken by dealer name ascending); per-bucket values are
// never used to decide who is named. The synthetic entry's value is the
// arithmetic remainder of the side's total minus the named dealers'
// sum, clamped at zero, and it always stacks after every named dealer:
// the Dealers slice plus the trailing AllOtherDealers palette slot
// define the render order, so the same result always renders the same
// way.
func CollapseTopN(buckets []*models.WeekBucket, n int) *models.CollapsedBuckets {
	if n <= 0 {
		n = DefaultTopN
	}

	totals := make(map[string]float64)
	for _, b := range buckets {
		for dealer, v := range b.BuyRanking {
			totals[dealer] += v
		}
		for dealer, v := range b.SellRanking {
			totals[dealer] += v
		}
	}

	ranked := make([]string, 0, len(totals))
	for dealer := range totals {
		ranked = append(ranked, dealer)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if totals[ranked[i]] != totals[ranked[j]] {
			return totals[ranked[i]] > totals[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	named := make(map[string]struct{}, len(ranked))
	palette := make(map[string]int, len(ranked)+1)
	for i, dealer := range ranked {
		named[dealer] = struct{}{}
		palette[dealer] = i
	}
	palette[models.AllOtherDealers] = len(ranked)

	collapsed := make([]*models.WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		out := models.NewWeekBucket(b.WeekKey, b.Label)
		out.BuyRanking = collapseSeries(b.BuyRanking, named)
		out.SellRanking = collapseSeries(b.SellRanking, named)
		out.BuyDisplay = collapseSeries(b.BuyDisplay, named)
		out.SellDisplay = collapseSeries(b.SellDisplay, named)
		collapsed = append(collapsed, out)
	}

	return &models.CollapsedBuckets{
		Dealers: ranked,
		Palette: palette,
		Buckets: collapsed,
	}
}

func collapseSeries(series map[string]float64, named map[string]struct{}) map[string]float64 {
	out := make(map[string]float64, len(named)+1)
	total := 0.0
	namedSum := 0.0
	for dealer, v := range series {
		total += v
		if _, ok := named[dealer]; ok {
			out[dealer] = v
			namedSum += v
		}
	}
	if remainder := total - namedSum; remainder > 0 {
		out[models.AllOtherDealers] = remainder
	}
	return out
}
