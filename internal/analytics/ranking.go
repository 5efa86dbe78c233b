package analytics

import (
	"sort"

	"github.com/guttosm/bondpulse/internal/domain/models"
)

// Rank groups rows by dealer and returns them ordered by summed ranking
// volume descending, ties broken by dealer name ascending. Ranks are
// dense 1-based positions; the tie-break guarantees a strict order, so
// no rank repeats. Percentages are of the scope's total ranking volume,
// or zero across the board when the total is zero. Empty input yields
// an empty (non-nil) slice.
func Rank(rows []models.TradeRecord) []models.RankEntry {
	type group struct {
		volume float64
		count  int
	}
	groups := make(map[string]*group)
	total := 0.0
	for i := range rows {
		row := &rows[i]
		g, ok := groups[row.Dealer()]
		if !ok {
			g = &group{}
			groups[row.Dealer()] = g
		}
		g.volume += row.RankingVolume
		g.count++
		total += row.RankingVolume
	}

	entries := make([]models.RankEntry, 0, len(groups))
	for dealer, g := range groups {
		entries = append(entries, models.RankEntry{
			Dealer:     dealer,
			Volume:     g.volume,
			TradeCount: g.count,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Volume != entries[j].Volume {
			return entries[i].Volume > entries[j].Volume
		}
		return entries[i].Dealer < entries[j].Dealer
	})

	for i := range entries {
		entries[i].Rank = i + 1
		if total > 0 {
			entries[i].PercentageOfTotal = entries[i].Volume / total * 100
		}
	}
	return entries
}

// FindRank returns the entry for dealer, or nil when the dealer is not
// present in the ranking.
func FindRank(entries []models.RankEntry, dealer string) *models.RankEntry {
	for i := range entries {
		if entries[i].Dealer == dealer {
			return &entries[i]
		}
	}
	return nil
}
