package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/errs"
)

// RemoteExecutor runs queries through the hosted query-execution
// service: POST {query, params, readonly} to the app's tables/query
// endpoint. Failures are surfaced verbatim; no retry.
type RemoteExecutor struct {
	baseURL string
	appID   string
	apiKey  string
	client  *http.Client
}

// NewRemoteExecutor builds an executor for the given API base URL and
// application ID. apiKey may be empty for unauthenticated deployments.
func NewRemoteExecutor(baseURL, appID, apiKey string) *RemoteExecutor {
	return &RemoteExecutor{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type remoteQueryRequest struct {
	Query    string `json:"query"`
	Params   []any  `json:"params"`
	Readonly bool   `json:"readonly"`
}

// ExecuteQuery implements Executor over the remote wire contract.
func (e *RemoteExecutor) ExecuteQuery(ctx context.Context, sqlText string, params []any, readonly bool) (*QueryResult, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(remoteQueryRequest{Query: sqlText, Params: params, Readonly: readonly})
	if err != nil {
		return nil, errs.NewQueryExecution("execute_query", err)
	}

	url := fmt.Sprintf("%s/api/v1/apps/%s/tables/query", e.baseURL, e.appID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errs.NewQueryExecution("execute_query", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errs.NewQueryExecution("execute_query", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &errs.QueryExecutionError{
			Op:         "execute_query",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("query service: %s", strings.TrimSpace(string(detail))),
		}
	}

	var result QueryResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errs.NewQueryExecution("execute_query", err)
	}
	return &result, nil
}
