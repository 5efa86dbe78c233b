package service

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/domain/models"
	"github.com/guttosm/bondpulse/internal/filter"
	"github.com/guttosm/bondpulse/internal/storage"
)

// MarketTotals computes the aggregate market snapshot for a period:
// buy/sell/total EUR volumes, trade counts, and percentage split.
//
// The range is capped by the market lag before anything runs, and the
// distinct-contributor count is checked first: below the configured
// minimum the totals are withheld and the result carries only the
// contributor count with InsufficientData set. That outcome is policy,
// not an error.
func (s *analyticsService) MarketTotals(ctx context.Context, dateFrom, dateTo time.Time) (*models.MarketTotals, error) {
	dateFrom, dateTo = filter.CapMarketDates(dateFrom, dateTo, s.now(), s.opts.MarketLagDays)

	totals := &models.MarketTotals{
		PeriodStart: dateFrom,
		PeriodEnd:   dateTo,
	}

	contributorSQL := fmt.Sprintf(
		"SELECT COUNT(DISTINCT buy_side) AS contributor_count FROM %s WHERE trade_date >= ? AND trade_date < ?",
		storage.TradeRecordsTable,
	)
	params := []any{dateFrom.Format("2006-01-02"), dateTo.Format("2006-01-02")}

	contributorResult, err := s.exec.ExecuteQuery(ctx, contributorSQL, params, true)
	if err != nil {
		return nil, err
	}
	if len(contributorResult.Rows) == 0 {
		return nil, errs.NewQueryExecution("market_totals", fmt.Errorf("contributor query returned no rows"))
	}
	totals.ContributorCount = int64(storage.RowFloat(contributorResult.Rows[0], "contributor_count"))

	if totals.ContributorCount < int64(s.opts.MinContributors) {
		totals.InsufficientData = true
		return totals, nil
	}

	totalsSQL := fmt.Sprintf(`SELECT
		SUM(CASE WHEN side = 'Buy' THEN size_in_eur ELSE 0 END) AS buy_volume_eur,
		SUM(CASE WHEN side = 'Sell' THEN size_in_eur ELSE 0 END) AS sell_volume_eur,
		SUM(size_in_eur) AS total_volume_eur,
		COUNT(CASE WHEN side = 'Buy' THEN 1 END) AS buy_trades,
		COUNT(CASE WHEN side = 'Sell' THEN 1 END) AS sell_trades,
		COUNT(*) AS total_trades
	FROM %s WHERE trade_date >= ? AND trade_date < ?`, storage.TradeRecordsTable)

	totalsResult, err := s.exec.ExecuteQuery(ctx, totalsSQL, params, true)
	if err != nil {
		return nil, err
	}
	if len(totalsResult.Rows) == 0 {
		return nil, errs.NewQueryExecution("market_totals", fmt.Errorf("totals query returned no rows"))
	}

	row := totalsResult.Rows[0]
	totals.BuyVolumeEUR = storage.RowFloat(row, "buy_volume_eur")
	totals.SellVolumeEUR = storage.RowFloat(row, "sell_volume_eur")
	totals.TotalVolumeEUR = storage.RowFloat(row, "total_volume_eur")
	totals.BuyTrades = int64(storage.RowFloat(row, "buy_trades"))
	totals.SellTrades = int64(storage.RowFloat(row, "sell_trades"))
	totals.TotalTrades = int64(storage.RowFloat(row, "total_trades"))

	if totals.TotalVolumeEUR > 0 {
		totals.BuyPct = totals.BuyVolumeEUR / totals.TotalVolumeEUR * 100
		totals.SellPct = totals.SellVolumeEUR / totals.TotalVolumeEUR * 100
	}
	return totals, nil
}
