package service

import (
	"context"

	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/domain/models"
	"github.com/guttosm/bondpulse/internal/filter"
	"github.com/guttosm/bondpulse/internal/storage"
)

// marketListFields is the projection market-context listings expose:
// dealer names are visible, client identifiers are not, and sizes are
// the capped values.
var marketListFields = []string{
	"trade_date", "trade_time", "side", "isin", "ticker", "maturity",
	"coupon_perc", "size_in_MM", "price", "currency",
	"counter_party", "venue",
	"secmst_glimpse_sector", "secmst_region", "secmst_seniority", "secmst_bond_category",
}

// clientListFields adds the actual, uncapped detail a client may see of
// its own trades.
var clientListFields = []string{
	"trade_date", "trade_time", "side", "isin", "ticker", "maturity",
	"coupon_perc", "size_in_MM", "size_in_eur", "price", "currency",
	"counter_party", "venue", "buy_side",
	"secmst_glimpse_sector", "secmst_region", "secmst_seniority", "secmst_bond_category",
}

// ListTrades serves the raw record-table view.
//
// Market context applies the lag cap and projects the anonymized field
// set; client context applies no lag but restricts rows to the
// configured client identity and projects the full field set. Exactly
// one sort key per request — the backend offers no multi-field
// ordering.
func (s *analyticsService) ListTrades(ctx context.Context, req ListTradesRequest) (*storage.ListResult, error) {
	var fields []string
	dateFrom, dateTo := req.DateFrom, req.DateTo

	switch req.Context {
	case models.ContextMarket:
		dateFrom, dateTo = filter.CapMarketDates(dateFrom, dateTo, s.now(), s.opts.MarketLagDays)
		fields = marketListFields
	case models.ContextClient:
		fields = clientListFields
	default:
		return nil, errs.NewValidation("context", "listing context must be market or client")
	}

	conditions, err := filter.Compile(req.Selection, req.Context, dateFrom, dateTo, s.clientID(req.Selection))
	if err != nil {
		return nil, err
	}

	sortKey := req.Sort
	if sortKey == "" {
		sortKey = "trade_date:desc"
	}

	return storage.ListRecords(ctx, s.exec, storage.ListRequest{
		Table:  storage.TradeRecordsTable,
		Filter: filter.Tree(conditions),
		Sort:   sortKey,
		Fields: fields,
		Limit:  req.Limit,
		Offset: req.Offset,
		Page:   req.Page,
	})
}
