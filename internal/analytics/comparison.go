package analytics

import (
	"github.com/guttosm/bondpulse/internal/domain/models"
)

// Compare merges a client-scope and a market-scope ranking for the same
// period into one comparative table.
//
// Every dealer in the client ranking appears first, in client-rank
// order, annotated with its market rank and percentage when present;
// dealers only the market ranking knows follow, in market-rank order.
// RankDelta is market minus client rank and exists only when both ranks
// do. VolumeShareGap treats a missing side's percentage as zero — that
// convention applies to the gap only, never to the ranks. maxRows > 0
// truncates strictly after the merge ordering; rows are never re-sorted
// by gap or delta.
func Compare(client, market []models.RankEntry, maxRows int) []models.ComparisonRow {
	marketByDealer := make(map[string]*models.RankEntry, len(market))
	for i := range market {
		marketByDealer[market[i].Dealer] = &market[i]
	}

	rows := make([]models.ComparisonRow, 0, len(client)+len(market))
	seen := make(map[string]struct{}, len(client))

	for i := range client {
		c := &client[i]
		seen[c.Dealer] = struct{}{}
		row := models.ComparisonRow{
			Dealer:     c.Dealer,
			ClientRank: intPtr(c.Rank),
			ClientPct:  c.PercentageOfTotal,
		}
		if m, ok := marketByDealer[c.Dealer]; ok {
			row.MarketRank = intPtr(m.Rank)
			row.MarketPct = m.PercentageOfTotal
			row.RankDelta = intPtr(m.Rank - c.Rank)
		}
		row.VolumeShareGap = row.ClientPct - row.MarketPct
		rows = append(rows, row)
	}

	for i := range market {
		m := &market[i]
		if _, ok := seen[m.Dealer]; ok {
			continue
		}
		rows = append(rows, models.ComparisonRow{
			Dealer:         m.Dealer,
			MarketRank:     intPtr(m.Rank),
			MarketPct:      m.PercentageOfTotal,
			VolumeShareGap: -m.PercentageOfTotal,
		})
	}

	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return rows
}

func intPtr(v int) *int { return &v }
