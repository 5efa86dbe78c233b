package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/bondpulse/internal/storage"
)

func totalsPeriod() (time.Time, time.Time) {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
}

func TestMarketTotals(t *testing.T) {
	exec := &fakeExecutor{respond: func(sqlText string, _ []any) (*storage.QueryResult, error) {
		if strings.Contains(sqlText, "COUNT(DISTINCT buy_side)") {
			return rowsResult(storage.Row{"contributor_count": int64(8)}), nil
		}
		return rowsResult(storage.Row{
			"buy_volume_eur":   600.0,
			"sell_volume_eur":  400.0,
			"total_volume_eur": 1000.0,
			"buy_trades":       int64(60),
			"sell_trades":      int64(40),
			"total_trades":     int64(100),
		}), nil
	}}
	svc := newTestService(exec, Options{MinContributors: 5})

	from, to := totalsPeriod()
	totals, err := svc.MarketTotals(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.InsufficientData {
		t.Fatal("threshold met, no insufficient-data flag expected")
	}
	if totals.ContributorCount != 8 || totals.TotalVolumeEUR != 1000 || totals.TotalTrades != 100 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if math.Abs(totals.BuyPct-60) > 1e-9 || math.Abs(totals.SellPct-40) > 1e-9 {
		t.Fatalf("unexpected split: %v / %v", totals.BuyPct, totals.SellPct)
	}
	if exec.callCount() != 2 {
		t.Fatalf("expected contributor + totals queries, got %d", exec.callCount())
	}
}

func TestMarketTotals_BelowContributorThreshold(t *testing.T) {
	exec := &fakeExecutor{respond: func(sqlText string, _ []any) (*storage.QueryResult, error) {
		if strings.Contains(sqlText, "COUNT(DISTINCT buy_side)") {
			return rowsResult(storage.Row{"contributor_count": int64(3)}), nil
		}
		t.Fatal("totals query must not run below the threshold")
		return nil, nil
	}}
	svc := newTestService(exec, Options{MinContributors: 5})

	from, to := totalsPeriod()
	totals, err := svc.MarketTotals(context.Background(), from, to)
	if err != nil {
		t.Fatalf("withheld totals are policy, not an error: %v", err)
	}
	if !totals.InsufficientData || totals.ContributorCount != 3 {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if totals.TotalVolumeEUR != 0 || totals.TotalTrades != 0 {
		t.Fatalf("volumes must be withheld: %+v", totals)
	}
}

func TestMarketTotals_LagCapsPeriod(t *testing.T) {
	exec := &fakeExecutor{respond: func(sqlText string, _ []any) (*storage.QueryResult, error) {
		return rowsResult(storage.Row{"contributor_count": int64(0)}), nil
	}}
	svc := newTestService(exec, Options{MinContributors: 5})

	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)
	totals, err := svc.MarketTotals(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// now=2025-09-04, lag 30d
	if !totals.PeriodEnd.Equal(time.Date(2025, 8, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("period end must be lag-capped: %v", totals.PeriodEnd)
	}
	if p := exec.calls[0].params; p[1] != "2025-08-05" {
		t.Fatalf("capped bound must reach the query: %v", p)
	}
}

func TestMarketTotals_QueryFailure(t *testing.T) {
	exec := &fakeExecutor{respond: func(string, []any) (*storage.QueryResult, error) {
		return nil, errors.New("backend down")
	}}
	svc := newTestService(exec, Options{})

	from, to := totalsPeriod()
	if _, err := svc.MarketTotals(context.Background(), from, to); err == nil {
		t.Fatal("expected error")
	}
}
