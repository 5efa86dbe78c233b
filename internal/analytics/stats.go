// Package analytics holds the pure transformation engines of the
// pipeline: period statistics, weekly dealer-flow bucketing, top-N
// collapsing, dealer rankings, client/market comparison, and the
// trailing monthly rank window. Every function is a pure transformation
// of already-materialized rows; none touches shared state, so any
// number of them may run concurrently.
package analytics

import (
	"time"

	"github.com/guttosm/bondpulse/internal/domain/models"
)

// Stats computes buy, sell, and overall summary statistics for a
// filtered period.
//
// Sides are taken as reported (ClientSide, no flip): this is the
// trader's own view of their activity, deliberately different from the
// dealer-perspective convention the weekly buckets use.
func Stats(rows []models.TradeRecord) models.AggregateStats {
	buy := newSideAccumulator()
	sell := newSideAccumulator()
	overall := newSideAccumulator()

	for i := range rows {
		row := &rows[i]
		overall.add(row)
		switch models.ClientSide(row.Side) {
		case models.SideBuy:
			buy.add(row)
		case models.SideSell:
			sell.add(row)
		}
	}

	return models.AggregateStats{
		Buy:     buy.stats(),
		Sell:    sell.stats(),
		Overall: overall.stats(),
	}
}

type sideAccumulator struct {
	count       int
	volume      float64
	value       float64
	instruments map[string]struct{}
	dealers     map[string]struct{}
	minDate     time.Time
	maxDate     time.Time
}

func newSideAccumulator() *sideAccumulator {
	return &sideAccumulator{
		instruments: make(map[string]struct{}),
		dealers:     make(map[string]struct{}),
	}
}

func (a *sideAccumulator) add(row *models.TradeRecord) {
	a.count++
	a.volume += row.RankingVolume
	a.value += row.RankingVolume * row.Price * 0.01
	if row.ISIN != "" {
		a.instruments[row.ISIN] = struct{}{}
	}
	a.dealers[row.Dealer()] = struct{}{}

	if !row.TradeDate.IsZero() {
		if a.minDate.IsZero() || row.TradeDate.Before(a.minDate) {
			a.minDate = row.TradeDate
		}
		if a.maxDate.IsZero() || row.TradeDate.After(a.maxDate) {
			a.maxDate = row.TradeDate
		}
	}
}

func (a *sideAccumulator) stats() models.SideStats {
	s := models.SideStats{
		TradeCount:      a.count,
		TotalVolume:     a.volume,
		TotalValue:      a.value,
		InstrumentCount: len(a.instruments),
		DealerCount:     len(a.dealers),
		MinTradeDate:    a.minDate,
		MaxTradeDate:    a.maxDate,
	}
	if a.count > 0 {
		s.AverageTradeSize = a.volume / float64(a.count)
	}
	return s
}
