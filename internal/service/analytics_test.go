package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/domain/models"
	"github.com/guttosm/bondpulse/internal/storage"
)

// fakeExecutor replays canned rows and records every issued query. It
// must be safe for concurrent use: comparison and trend fan out.
type fakeExecutor struct {
	mu      sync.Mutex
	calls   []call
	respond func(sqlText string, params []any) (*storage.QueryResult, error)
}

type call struct {
	sqlText  string
	params   []any
	readonly bool
}

func (f *fakeExecutor) ExecuteQuery(_ context.Context, sqlText string, params []any, readonly bool) (*storage.QueryResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{sqlText: sqlText, params: params, readonly: readonly})
	f.mu.Unlock()
	return f.respond(sqlText, params)
}

func (f *fakeExecutor) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func rowsResult(rows ...storage.Row) *storage.QueryResult {
	return &storage.QueryResult{Rows: rows}
}

func tradeRow(date, side, dealer string, mm float64) storage.Row {
	return storage.Row{
		"trade_date": date,
		"side":       side,
		"counter_party": func() any {
			if dealer == "" {
				return nil
			}
			return dealer
		}(),
		"size_in_MM":  mm,
		"size_in_eur": mm * 0.9,
	}
}

// newTestService pins "now" so the market lag cap is deterministic.
func newTestService(exec storage.Executor, opts Options) *analyticsService {
	svc := NewAnalyticsService(exec, opts).(*analyticsService)
	svc.now = func() time.Time { return time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC) }
	return svc
}

func testRequest(qctx models.QueryContext) Request {
	return Request{
		Context:  qctx,
		DateFrom: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPeriodStats_MarketScope(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return rowsResult(
			tradeRow("2025-06-02", "Buy", "A", 10),
			tradeRow("2025-06-03", "Sell", "B", 4),
		), nil
	}}
	svc := newTestService(exec, Options{ClientID: "client-a"})

	stats, err := svc.PeriodStats(context.Background(), testRequest(models.ContextMarket))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Buy.TradeCount != 1 || stats.Sell.TradeCount != 1 || stats.Overall.TotalVolume != 14 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if exec.callCount() != 1 {
		t.Fatalf("expected one query, got %d", exec.callCount())
	}
	c := exec.calls[0]
	if !c.readonly {
		t.Fatal("analytics queries must be readonly")
	}
	if !strings.Contains(c.sqlText, "FROM trade_records WHERE") || !strings.Contains(c.sqlText, "ORDER BY trade_date, trade_time") {
		t.Fatalf("unexpected sql: %s", c.sqlText)
	}
	// Market scope must not constrain the client identity.
	for _, p := range c.params {
		if p == "client-a" {
			t.Fatalf("client id leaked into market query: %v", c.params)
		}
	}
}

func TestPeriodStats_MarketLagCapsEndDate(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return rowsResult(), nil
	}}
	svc := newTestService(exec, Options{})

	req := Request{
		Context:  models.ContextMarket,
		DateFrom: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
	}
	if _, err := svc.PeriodStats(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// now=2025-09-04, lag 30d -> upper bound 2025-08-05
	params := exec.calls[0].params
	if params[0] != "2025-08-01" || params[1] != "2025-08-05" {
		t.Fatalf("unexpected date params: %v", params)
	}
}

func TestPeriodStats_ClientScopeUsesConfiguredIdentity(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return rowsResult(), nil
	}}
	svc := newTestService(exec, Options{ClientID: "client-a"})

	if _, err := svc.PeriodStats(context.Background(), testRequest(models.ContextClient)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := exec.calls[0]
	if !strings.Contains(c.sqlText, "buy_side = ?") {
		t.Fatalf("client query must constrain identity: %s", c.sqlText)
	}
	// Client scope is not lag-capped: the requested bounds pass through.
	if c.params[0] != "2025-06-01" || c.params[1] != "2025-07-01" || c.params[2] != "client-a" {
		t.Fatalf("unexpected params: %v", c.params)
	}
}

func TestPeriodStats_ClientScopeWithoutIdentity(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		t.Fatal("no query may be issued")
		return nil, nil
	}}
	svc := newTestService(exec, Options{})

	_, err := svc.PeriodStats(context.Background(), testRequest(models.ContextClient))
	if err == nil {
		t.Fatal("expected validation error")
	}
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
}

func TestWeeklyFlows(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return rowsResult(
			tradeRow("2025-06-02", "Buy", "A", 10),
			tradeRow("2025-06-03", "Buy", "B", 30),
			tradeRow("2025-06-04", "Sell", "A", 5),
		), nil
	}}
	svc := newTestService(exec, Options{})

	collapsed, err := svc.WeeklyFlows(context.Background(), testRequest(models.ContextMarket), 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(collapsed.Buckets) != 1 {
		t.Fatalf("expected one bucket, got %d", len(collapsed.Buckets))
	}
	b := collapsed.Buckets[0]
	// Client buys are the dealer's sells.
	if b.SellRanking["A"] != 10 || b.SellRanking["B"] != 30 || b.BuyRanking["A"] != 5 {
		t.Fatalf("unexpected bucket: buy=%v sell=%v", b.BuyRanking, b.SellRanking)
	}
}

func TestDealerRanking_EmptyResultIsNotAnError(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return rowsResult(), nil
	}}
	svc := newTestService(exec, Options{})

	entries, err := svc.DealerRanking(context.Background(), testRequest(models.ContextMarket))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil ranking, got %v", entries)
	}
}

func TestRankingComparison(t *testing.T) {
	exec := &fakeExecutor{respond: func(sqlText string, params []any) (*storage.QueryResult, error) {
		for _, p := range params {
			if p == "client-a" {
				return rowsResult(
					tradeRow("2025-06-02", "Buy", "A", 100),
					tradeRow("2025-06-03", "Buy", "C", 60),
				), nil
			}
		}
		return rowsResult(
			tradeRow("2025-06-02", "Buy", "B", 500),
			tradeRow("2025-06-02", "Buy", "A", 300),
			tradeRow("2025-06-03", "Buy", "C", 200),
		), nil
	}}
	svc := newTestService(exec, Options{ClientID: "client-a"})

	rows, err := svc.RankingComparison(context.Background(), testRequest(models.ContextCompare), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.callCount() != 2 {
		t.Fatalf("expected two scoped queries, got %d", exec.callCount())
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	a := rows[0]
	if a.Dealer != "A" || *a.ClientRank != 1 || *a.MarketRank != 2 || *a.RankDelta != 1 {
		t.Fatalf("unexpected first row: %+v", a)
	}
	b := rows[2]
	if b.Dealer != "B" || b.ClientRank != nil || b.RankDelta != nil {
		t.Fatalf("unexpected market-only row: %+v", b)
	}
}

func TestRankingComparison_EitherFailureAborts(t *testing.T) {
	exec := &fakeExecutor{respond: func(sqlText string, params []any) (*storage.QueryResult, error) {
		for _, p := range params {
			if p == "client-a" {
				return nil, errs.NewQueryExecution("execute_query", errors.New("client scope down"))
			}
		}
		return rowsResult(tradeRow("2025-06-02", "Buy", "A", 1)), nil
	}}
	svc := newTestService(exec, Options{ClientID: "client-a"})

	_, err := svc.RankingComparison(context.Background(), testRequest(models.ContextCompare), 0)
	if err == nil {
		t.Fatal("expected failure of one scope to abort the comparison")
	}
	var queryErr *errs.QueryExecutionError
	if !errors.As(err, &queryErr) {
		t.Fatalf("expected QueryExecutionError, got %T", err)
	}
}

func TestDealerRankTrend(t *testing.T) {
	exec := &fakeExecutor{respond: func(sqlText string, params []any) (*storage.QueryResult, error) {
		for _, p := range params {
			if p == "client-a" {
				return rowsResult(tradeRow("2025-06-02", "Buy", "A", 10)), nil
			}
		}
		return rowsResult(
			tradeRow("2025-06-02", "Buy", "B", 50),
			tradeRow("2025-06-02", "Buy", "A", 20),
		), nil
	}}
	svc := newTestService(exec, Options{ClientID: "client-a"})

	points, err := svc.DealerRankTrend(context.Background(), testRequest(models.ContextCompare), "A", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 6 {
		t.Fatalf("expected exactly 6 points, got %d", len(points))
	}
	// Two scoped queries per month.
	if exec.callCount() != 12 {
		t.Fatalf("expected 12 queries, got %d", exec.callCount())
	}
	for i := 1; i < len(points); i++ {
		if !points[i-1].Label.Before(points[i].Label) {
			t.Fatalf("points out of order at %d: %v then %v", i, points[i-1].Label, points[i].Label)
		}
	}
	// The fake returns the same rows for every month: rank present in
	// both scopes everywhere.
	p := points[0]
	if p.ClientRank == nil || *p.ClientRank != 1 {
		t.Fatalf("unexpected client rank: %+v", p)
	}
	if p.MarketRank == nil || *p.MarketRank != 2 {
		t.Fatalf("unexpected market rank: %+v", p)
	}
	if p.Delta == nil || *p.Delta != 1 {
		t.Fatalf("unexpected delta: %+v", p)
	}
	if p.ClientVolume != 10 {
		t.Fatalf("client volume must come from the client scope: %+v", p)
	}
}

func TestDealerRankTrend_DealerRequired(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return rowsResult(), nil
	}}
	svc := newTestService(exec, Options{ClientID: "client-a"})

	_, err := svc.DealerRankTrend(context.Background(), testRequest(models.ContextCompare), "", 6)
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if exec.callCount() != 0 {
		t.Fatal("no query may be issued without a dealer")
	}
}

func TestDealerRankTrend_AbsentMonthsAreNull(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return rowsResult(), nil
	}}
	svc := newTestService(exec, Options{ClientID: "client-a"})

	points, err := svc.DealerRankTrend(context.Background(), testRequest(models.ContextCompare), "A", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for _, p := range points {
		if p.ClientRank != nil || p.MarketRank != nil || p.Delta != nil {
			t.Fatalf("empty months must carry null ranks: %+v", p)
		}
	}
}
