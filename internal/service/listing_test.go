package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/domain/models"
	"github.com/guttosm/bondpulse/internal/storage"
)

func listRequest(qctx models.QueryContext) ListTradesRequest {
	return ListTradesRequest{
		Context:  qctx,
		DateFrom: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func listingExecutor() *fakeExecutor {
	return &fakeExecutor{respond: func(sqlText string, _ []any) (*storage.QueryResult, error) {
		if strings.HasPrefix(sqlText, "SELECT COUNT(*)") {
			return rowsResult(storage.Row{"total": int64(1)}), nil
		}
		return rowsResult(storage.Row{"isin": "XS1"}), nil
	}}
}

func TestListTrades_MarketProjectionIsAnonymized(t *testing.T) {
	exec := listingExecutor()
	svc := newTestService(exec, Options{ClientID: "client-a"})

	result, err := svc.ListTrades(context.Background(), listRequest(models.ContextMarket))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("unexpected rows: %v", result.Rows)
	}

	pageSQL := exec.calls[1].sqlText
	if strings.Contains(pageSQL, "buy_side") {
		t.Fatalf("market listing must not expose client identifiers: %s", pageSQL)
	}
	if strings.Contains(pageSQL, "size_in_eur") {
		t.Fatalf("market listing must not expose converted sizes: %s", pageSQL)
	}
	if !strings.Contains(pageSQL, "counter_party") {
		t.Fatalf("dealer names stay visible in market listings: %s", pageSQL)
	}
	// Default sort.
	if !strings.Contains(pageSQL, "ORDER BY trade_date DESC") {
		t.Fatalf("expected default sort: %s", pageSQL)
	}
}

func TestListTrades_ClientProjectionIsFull(t *testing.T) {
	exec := listingExecutor()
	svc := newTestService(exec, Options{ClientID: "client-a"})

	if _, err := svc.ListTrades(context.Background(), listRequest(models.ContextClient)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pageSQL := exec.calls[1].sqlText
	if !strings.Contains(pageSQL, "buy_side") || !strings.Contains(pageSQL, "size_in_eur") {
		t.Fatalf("client listing exposes the full field set: %s", pageSQL)
	}
	// Row-level security: rows restricted to the client identity.
	found := false
	for _, p := range exec.calls[1].params {
		if p == "client-a" {
			found = true
		}
	}
	if !found {
		t.Fatalf("client listing must constrain rows to the client: %v", exec.calls[1].params)
	}
}

func TestListTrades_MarketLagCapsDates(t *testing.T) {
	exec := listingExecutor()
	svc := newTestService(exec, Options{})

	req := listRequest(models.ContextMarket)
	req.DateFrom = time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	req.DateTo = time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)
	if _, err := svc.ListTrades(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p := exec.calls[0].params; p[1] != "2025-08-05" {
		t.Fatalf("market listing must be lag-capped: %v", p)
	}
}

func TestListTrades_RejectsCompareContext(t *testing.T) {
	exec := listingExecutor()
	svc := newTestService(exec, Options{})

	_, err := svc.ListTrades(context.Background(), listRequest(models.ContextCompare))
	var validation *errs.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if exec.callCount() != 0 {
		t.Fatal("no query may be issued for an invalid context")
	}
}

func TestListTrades_SortPassthrough(t *testing.T) {
	exec := listingExecutor()
	svc := newTestService(exec, Options{ClientID: "client-a"})

	req := listRequest(models.ContextClient)
	req.Sort = "isin:asc"
	if _, err := svc.ListTrades(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(exec.calls[1].sqlText, "ORDER BY isin ASC") {
		t.Fatalf("unexpected sort: %s", exec.calls[1].sqlText)
	}
}

func TestDispatcher_LastIssuedWins(t *testing.T) {
	d := NewDispatcher()

	first := d.Next("widget-1")
	second := d.Next("widget-1")

	// The newer result lands first; the older one must then be dropped
	// even though it arrives later.
	if !d.Accept("widget-1", second) {
		t.Fatal("latest sequence must be accepted")
	}
	if d.Accept("widget-1", first) {
		t.Fatal("superseded sequence must be rejected")
	}
}

func TestDispatcher_ConsumersAreIndependent(t *testing.T) {
	d := NewDispatcher()

	a := d.Next("widget-a")
	d.Next("widget-b")

	if !d.Accept("widget-a", a) {
		t.Fatal("activity on another consumer must not supersede")
	}
}

func TestDispatcher_SequencesAreMonotonic(t *testing.T) {
	d := NewDispatcher()
	prev := uint64(0)
	for i := 0; i < 100; i++ {
		seq := d.Next("w")
		if seq <= prev {
			t.Fatalf("sequence not monotonic: %d after %d", seq, prev)
		}
		prev = seq
	}
}
