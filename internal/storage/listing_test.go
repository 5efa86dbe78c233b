package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/filter"
)

// stubExecutor records issued queries and replays canned results.
type stubExecutor struct {
	queries []string
	params  [][]any
	results []*QueryResult
	err     error
}

func (s *stubExecutor) ExecuteQuery(_ context.Context, sqlText string, params []any, readonly bool) (*QueryResult, error) {
	if !readonly {
		return nil, errors.New("listing must be readonly")
	}
	s.queries = append(s.queries, sqlText)
	s.params = append(s.params, params)
	if s.err != nil {
		return nil, s.err
	}
	result := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	return result, nil
}

func TestListRecords_CountAndPage(t *testing.T) {
	exec := &stubExecutor{results: []*QueryResult{
		{Rows: []Row{{"total": int64(42)}}},
		{Rows: []Row{{"isin": "XS1"}, {"isin": "XS2"}}},
	}}

	result, err := ListRecords(context.Background(), exec, ListRequest{
		Table:  "trade_records",
		Filter: filter.Tree([]filter.Leaf{{Field: "trade_date", Op: filter.OpGe, Value: "2025-08-01"}}),
		Sort:   "trade_date:desc",
		Fields: []string{"isin", "trade_date"},
		Limit:  10,
		Offset: 20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(exec.queries) != 2 {
		t.Fatalf("expected count + page queries, got %v", exec.queries)
	}
	wantCount := "SELECT COUNT(*) AS total FROM trade_records WHERE (trade_date >= ?)"
	if exec.queries[0] != wantCount {
		t.Fatalf("count sql:\n got %s\nwant %s", exec.queries[0], wantCount)
	}
	wantPage := "SELECT isin, trade_date FROM trade_records WHERE (trade_date >= ?) ORDER BY trade_date DESC LIMIT ? OFFSET ?"
	if exec.queries[1] != wantPage {
		t.Fatalf("page sql:\n got %s\nwant %s", exec.queries[1], wantPage)
	}
	if p := exec.params[1]; len(p) != 3 || p[1] != 10 || p[2] != 20 {
		t.Fatalf("unexpected page params: %v", p)
	}

	if result.Pagination.Total != 42 || result.Pagination.Limit != 10 || result.Pagination.Offset != 20 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
	if result.Pagination.Page != 3 || result.Pagination.TotalPages != 5 {
		t.Fatalf("unexpected page math: %+v", result.Pagination)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("unexpected rows: %v", result.Rows)
	}
}

func TestListRecords_PageToOffset(t *testing.T) {
	exec := &stubExecutor{results: []*QueryResult{
		{Rows: []Row{{"total": int64(5)}}},
		{Rows: []Row{}},
	}}

	result, err := ListRecords(context.Background(), exec, ListRequest{
		Table: "trade_records",
		Limit: 25,
		Page:  3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pagination.Offset != 50 || result.Pagination.Page != 3 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
}

func TestListRecords_DefaultLimit(t *testing.T) {
	exec := &stubExecutor{results: []*QueryResult{
		{Rows: []Row{{"total": int64(1)}}},
		{Rows: []Row{}},
	}}
	result, err := ListRecords(context.Background(), exec, ListRequest{Table: "trade_records"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Pagination.Limit != defaultListLimit {
		t.Fatalf("expected default limit, got %d", result.Pagination.Limit)
	}
}

func TestListRecords_Validation(t *testing.T) {
	cases := []struct {
		name string
		req  ListRequest
	}{
		{"missing table", ListRequest{}},
		{"injection in table", ListRequest{Table: "trade_records; DROP TABLE x"}},
		{"multi-field sort", ListRequest{Table: "trade_records", Sort: "trade_date:desc,isin:asc"}},
		{"bad sort direction", ListRequest{Table: "trade_records", Sort: "trade_date:sideways"}},
		{"bad sort field", ListRequest{Table: "trade_records", Sort: "trade date:asc"}},
		{"bad projection field", ListRequest{Table: "trade_records", Fields: []string{"isin", "1; --"}}},
		{"negative offset", ListRequest{Table: "trade_records", Offset: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exec := &stubExecutor{results: []*QueryResult{{Rows: []Row{}}}}
			_, err := ListRecords(context.Background(), exec, tc.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var validation *errs.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("expected ValidationError, got %T: %v", err, err)
			}
			if len(exec.queries) != 0 {
				t.Fatalf("no query may be issued on validation failure, got %v", exec.queries)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"trade_date", "trade_date ASC", false},
		{"trade_date:asc", "trade_date ASC", false},
		{"trade_date:desc", "trade_date DESC", false},
		{"secmst.region:asc", "secmst.region ASC", false},
		{"a,b", "", true},
		{"trade_date:up", "", true},
	}
	for _, tc := range cases {
		got, err := parseSort(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseSort(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("parseSort(%q)=%q,%v want %q", tc.in, got, err, tc.want)
		}
	}
}

func TestListRecords_ExecutorErrorPropagates(t *testing.T) {
	exec := &stubExecutor{err: errs.NewQueryExecution("execute_query", errors.New("boom"))}
	_, err := ListRecords(context.Background(), exec, ListRequest{Table: "trade_records"})
	if err == nil {
		t.Fatal("expected error")
	}
	var queryErr *errs.QueryExecutionError
	if !errors.As(err, &queryErr) {
		t.Fatalf("expected QueryExecutionError, got %T", err)
	}
}
