package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/errs"

	_ "github.com/lib/pq" // PostgreSQL driver for database/sql
)

// PostgresExecutor runs queries directly against PostgreSQL. It accepts
// the contract's `?` placeholders and rewrites them to the driver's
// numbered form before execution.
type PostgresExecutor struct {
	db *sql.DB
}

// NewPostgresExecutor wraps an open connection pool.
func NewPostgresExecutor(db *sql.DB) *PostgresExecutor {
	return &PostgresExecutor{db: db}
}

// Ping reports database connectivity; used by the readiness probe.
func (e *PostgresExecutor) Ping() error { return e.db.Ping() }

// Close releases the underlying pool.
func (e *PostgresExecutor) Close() error { return e.db.Close() }

// ExecuteQuery implements Executor.
//
// Readonly enforcement is a statement-head check: only SELECT and WITH
// are allowed through when readonly is set. The analytics pipeline only
// ever issues readonly queries.
func (e *PostgresExecutor) ExecuteQuery(ctx context.Context, sqlText string, params []any, readonly bool) (*QueryResult, error) {
	if readonly && !isReadStatement(sqlText) {
		return nil, errs.NewQueryExecution("execute_query", fmt.Errorf("readonly executor rejected non-read statement"))
	}

	start := time.Now()
	rows, err := e.db.QueryContext(ctx, rewritePlaceholders(sqlText), params...)
	if err != nil {
		return nil, errs.NewQueryExecution("execute_query", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errs.NewQueryExecution("execute_query", err)
	}

	result := &QueryResult{Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, errs.NewQueryExecution("execute_query", err)
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			// lib/pq hands text columns back as []byte
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.NewQueryExecution("execute_query", err)
	}

	result.ExecutionTimeMs = time.Since(start).Milliseconds()
	return result, nil
}

// rewritePlaceholders converts the contract's `?` placeholders to the
// numbered $1..$n form lib/pq expects. Quoted literals are respected so
// a literal question mark inside a string survives.
func rewritePlaceholders(sqlText string) string {
	var b strings.Builder
	b.Grow(len(sqlText) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(sqlText); i++ {
		ch := sqlText[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			b.WriteByte(ch)
		case ch == '?' && !inQuote:
			n++
			fmt.Fprintf(&b, "$%d", n)
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func isReadStatement(sqlText string) bool {
	head := strings.ToUpper(strings.TrimSpace(sqlText))
	return strings.HasPrefix(head, "SELECT") || strings.HasPrefix(head, "WITH")
}
