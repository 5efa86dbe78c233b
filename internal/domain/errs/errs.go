// Package errs defines the two error classes the analytics pipeline can
// surface: validation failures raised before any query is issued, and
// query-execution failures from the backing query service. Empty results
// are never errors.
package errs

import "fmt"

// ValidationError reports invalid input or configuration detected before
// a query is built. It is never retried.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation builds a ValidationError for the given field.
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// QueryExecutionError wraps a failure from the query-execution
// collaborator. It is surfaced verbatim to the caller; the pipeline
// performs no internal retry.
type QueryExecutionError struct {
	Op         string // logical operation, e.g. "execute_query"
	StatusCode int    // HTTP status for the remote executor, 0 otherwise
	Err        error
}

func (e *QueryExecutionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

// NewQueryExecution wraps err as a QueryExecutionError for op.
func NewQueryExecution(op string, err error) *QueryExecutionError {
	return &QueryExecutionError{Op: op, Err: err}
}
