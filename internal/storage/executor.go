// Package storage implements the query-execution boundary: the
// Executor contract the analytics pipeline consumes, with a direct
// PostgreSQL implementation and a remote HTTP implementation, plus the
// paginated record-listing contract built on top of it.
package storage

import "context"

// Row is one result row keyed by column name.
type Row map[string]any

// QueryResult is what an Executor returns for one query.
type QueryResult struct {
	Rows            []Row `json:"rows"`
	ExecutionTimeMs int64 `json:"executionTimeMs"`
}

// Executor runs parameterized read queries. sqlText uses `?` positional
// placeholders; params supplies the values in order. When readonly is
// true only read statements are permitted — implementations must reject
// anything else. Executors never retry: a failure is surfaced verbatim
// as a QueryExecutionError and the caller decides whether to re-invoke.
type Executor interface {
	ExecuteQuery(ctx context.Context, sqlText string, params []any, readonly bool) (*QueryResult, error)
}
