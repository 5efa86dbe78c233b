// Package service orchestrates the analytics pipeline: it compiles
// filter selections, runs queries through the executor, and hands the
// materialized rows to the pure engines. The only suspension point in
// the whole pipeline is the executor call; everything downstream is a
// synchronous in-memory transformation.
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/guttosm/bondpulse/internal/analytics"
	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/domain/models"
	"github.com/guttosm/bondpulse/internal/filter"
	"github.com/guttosm/bondpulse/internal/storage"
)

// Request scopes one analytics invocation: the structured filter
// selection, the query context, and the period. DateFrom is inclusive,
// DateTo exclusive.
type Request struct {
	Selection models.FilterSelection
	Context   models.QueryContext
	DateFrom  time.Time
	DateTo    time.Time
}

// ListTradesRequest scopes one raw record listing.
type ListTradesRequest struct {
	Selection models.FilterSelection
	Context   models.QueryContext // market or client
	DateFrom  time.Time
	DateTo    time.Time
	Sort      string // single "field:asc|desc"; default trade_date:desc
	Limit     int
	Offset    int
	Page      int
}

// AnalyticsService is the pipeline's operation surface.
type AnalyticsService interface {
	PeriodStats(ctx context.Context, req Request) (*models.AggregateStats, error)
	WeeklyFlows(ctx context.Context, req Request, topN int) (*models.CollapsedBuckets, error)
	DealerRanking(ctx context.Context, req Request) ([]models.RankEntry, error)
	RankingComparison(ctx context.Context, req Request, maxRows int) ([]models.ComparisonRow, error)
	DealerRankTrend(ctx context.Context, req Request, dealer string, months int) ([]models.MonthlyRankPoint, error)
	MarketTotals(ctx context.Context, dateFrom, dateTo time.Time) (*models.MarketTotals, error)
	ListTrades(ctx context.Context, req ListTradesRequest) (*storage.ListResult, error)
}

// Options carries the deployment policy the service applies: the
// configured client identity, the market data lag, and the minimum
// contributor threshold for market totals.
type Options struct {
	ClientID        string
	MarketLagDays   int
	MinContributors int
}

type analyticsService struct {
	exec storage.Executor
	opts Options
	now  func() time.Time // indirection for tests
}

// NewAnalyticsService wires the pipeline onto an executor.
func NewAnalyticsService(exec storage.Executor, opts Options) AnalyticsService {
	if opts.MarketLagDays <= 0 {
		opts.MarketLagDays = 30
	}
	if opts.MinContributors <= 0 {
		opts.MinContributors = 5
	}
	return &analyticsService{exec: exec, opts: opts, now: time.Now}
}

// clientID resolves the effective client identity for a request.
func (s *analyticsService) clientID(sel models.FilterSelection) string {
	if sel.ClientID != "" {
		return sel.ClientID
	}
	return s.opts.ClientID
}

// fetchRows compiles the selection for one concrete scope (market or
// client) and materializes the matching rows. Market-scope ranges are
// capped by the lag policy; client-scope ranges are not.
func (s *analyticsService) fetchRows(ctx context.Context, sel models.FilterSelection, scope models.QueryContext, dateFrom, dateTo time.Time) ([]models.TradeRecord, error) {
	if scope != models.ContextClient {
		dateFrom, dateTo = filter.CapMarketDates(dateFrom, dateTo, s.now(), s.opts.MarketLagDays)
	}

	conditions, err := filter.Compile(sel, scope, dateFrom, dateTo, s.clientID(sel))
	if err != nil {
		return nil, err
	}
	where, params := filter.Where(conditions)

	sqlText := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY trade_date, trade_time",
		storage.TradeRecordColumns, storage.TradeRecordsTable, where,
	)
	result, err := s.exec.ExecuteQuery(ctx, sqlText, params, true)
	if err != nil {
		return nil, err
	}
	return storage.RecordsFromResult(result), nil
}

// PeriodStats computes the buy/sell/overall summary for the request's
// period and scope. Zero rows yield well-formed zero statistics.
func (s *analyticsService) PeriodStats(ctx context.Context, req Request) (*models.AggregateStats, error) {
	rows, err := s.fetchRows(ctx, req.Selection, singleScope(req.Context), req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}
	stats := analytics.Stats(rows)
	return &stats, nil
}

// WeeklyFlows buckets the period into ISO weeks per dealer action and
// collapses the long tail into the synthetic entry.
func (s *analyticsService) WeeklyFlows(ctx context.Context, req Request, topN int) (*models.CollapsedBuckets, error) {
	rows, err := s.fetchRows(ctx, req.Selection, singleScope(req.Context), req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}
	return analytics.CollapseTopN(analytics.WeeklyBuckets(rows), topN), nil
}

// DealerRanking ranks dealers by ranking volume for one scope.
func (s *analyticsService) DealerRanking(ctx context.Context, req Request) ([]models.RankEntry, error) {
	rows, err := s.fetchRows(ctx, req.Selection, singleScope(req.Context), req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}
	return analytics.Rank(rows), nil
}

// RankingComparison runs the client-scope and market-scope rankings for
// the same period concurrently and merges them. Failure of either
// sub-query aborts the whole computation; there is no partial result.
func (s *analyticsService) RankingComparison(ctx context.Context, req Request, maxRows int) ([]models.ComparisonRow, error) {
	var clientRows, marketRows []models.TradeRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.fetchRows(gctx, req.Selection, models.ContextClient, req.DateFrom, req.DateTo)
		if err != nil {
			return err
		}
		clientRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.fetchRows(gctx, req.Selection, models.ContextMarket, req.DateFrom, req.DateTo)
		if err != nil {
			return err
		}
		marketRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analytics.Compare(analytics.Rank(clientRows), analytics.Rank(marketRows), maxRows), nil
}

// DealerRankTrend computes the trailing monthly client/market rank
// window for one dealer. The anchor upper bound is capped by the market
// lag (both scopes of the comparison share the window), and the output
// always has exactly `months` points, oldest first, with nil ranks for
// months the dealer is absent from a scope.
func (s *analyticsService) DealerRankTrend(ctx context.Context, req Request, dealer string, months int) ([]models.MonthlyRankPoint, error) {
	if dealer == "" {
		return nil, errs.NewValidation("dealer", "dealer name is required")
	}
	if months <= 0 {
		months = analytics.DefaultTrailingMonths
	}

	_, anchor := filter.CapMarketDates(req.DateFrom, req.DateTo, s.now(), s.opts.MarketLagDays)
	monthStarts := analytics.TrailingMonths(anchor, months)

	points := make([]models.MonthlyRankPoint, months)
	g, gctx := errgroup.WithContext(ctx)

	for i, monthStart := range monthStarts {
		i, monthStart := i, monthStart
		from := monthStart
		to := monthStart.AddDate(0, 1, 0)

		g.Go(func() error {
			var clientRows, marketRows []models.TradeRecord

			mg, mctx := errgroup.WithContext(gctx)
			mg.Go(func() error {
				rows, err := s.fetchRows(mctx, req.Selection, models.ContextClient, from, to)
				if err != nil {
					return err
				}
				clientRows = rows
				return nil
			})
			mg.Go(func() error {
				rows, err := s.fetchRows(mctx, req.Selection, models.ContextMarket, from, to)
				if err != nil {
					return err
				}
				marketRows = rows
				return nil
			})
			if err := mg.Wait(); err != nil {
				return err
			}

			points[i] = analytics.MonthlyPoint(monthStart, dealer, analytics.Rank(clientRows), analytics.Rank(marketRows))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

// singleScope maps a request context onto the one scope a single-query
// operation runs in; compare callers fan out explicitly and never pass
// compare here.
func singleScope(qctx models.QueryContext) models.QueryContext {
	if qctx == models.ContextClient {
		return models.ContextClient
	}
	return models.ContextMarket
}
