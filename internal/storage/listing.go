package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/filter"
)

// ListRequest is the record-listing contract: a nested filter tree, a
// single-field sort, an optional column projection, and limit plus
// either offset or page.
//
// The backing service supports exactly one sort field — multi-field
// ordering is rejected here instead of silently dropping keys.
type ListRequest struct {
	Table  string
	Filter filter.Node // nil means no restriction
	Sort   string      // "field:asc" or "field:desc"
	Fields []string    // empty means all columns
	Limit  int
	Offset int
	Page   int // 1-based alternative to Offset
}

// Pagination describes the window a listing returned.
type Pagination struct {
	Total      int `json:"total"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

// ListResult is one page of records plus its pagination envelope.
type ListResult struct {
	Rows       []Row      `json:"rows"`
	Pagination Pagination `json:"pagination"`
}

const defaultListLimit = 100

// ListRecords runs a paginated listing through the executor: one count
// query for the pagination total, one page query for the rows.
func ListRecords(ctx context.Context, exec Executor, req ListRequest) (*ListResult, error) {
	if req.Table == "" {
		return nil, errs.NewValidation("table", "table name is required")
	}
	if err := validateIdentifier("table", req.Table); err != nil {
		return nil, err
	}
	orderBy, err := parseSort(req.Sort)
	if err != nil {
		return nil, err
	}
	projection, err := buildProjection(req.Fields)
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := req.Offset
	if offset == 0 && req.Page > 1 {
		offset = (req.Page - 1) * limit
	}
	if offset < 0 {
		return nil, errs.NewValidation("offset", "offset must not be negative")
	}

	where := "1=1"
	var params []any
	if req.Filter != nil {
		where, params = filter.SQL(req.Filter)
	}

	countSQL := fmt.Sprintf("SELECT COUNT(*) AS total FROM %s WHERE %s", req.Table, where)
	countResult, err := exec.ExecuteQuery(ctx, countSQL, params, true)
	if err != nil {
		return nil, err
	}
	total := 0
	if len(countResult.Rows) > 0 {
		total = int(asFloat(countResult.Rows[0]["total"]))
	}

	pageSQL := fmt.Sprintf("SELECT %s FROM %s WHERE %s", projection, req.Table, where)
	if orderBy != "" {
		pageSQL += " ORDER BY " + orderBy
	}
	pageSQL += " LIMIT ? OFFSET ?"
	pageParams := append(append([]any{}, params...), limit, offset)

	pageResult, err := exec.ExecuteQuery(ctx, pageSQL, pageParams, true)
	if err != nil {
		return nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &ListResult{
		Rows: pageResult.Rows,
		Pagination: Pagination{
			Total:      total,
			Limit:      limit,
			Offset:     offset,
			Page:       offset/limit + 1,
			TotalPages: totalPages,
		},
	}, nil
}

// parseSort validates the single-field "field:asc|desc" form and
// returns the ORDER BY fragment. An empty sort means backend order.
func parseSort(sort string) (string, error) {
	if sort == "" {
		return "", nil
	}
	if strings.Contains(sort, ",") {
		return "", errs.NewValidation("sort", "only a single sort field is supported")
	}
	fieldName := sort
	direction := "ASC"
	if i := strings.IndexByte(sort, ':'); i >= 0 {
		fieldName = sort[:i]
		switch strings.ToLower(sort[i+1:]) {
		case "asc":
			direction = "ASC"
		case "desc":
			direction = "DESC"
		default:
			return "", errs.NewValidation("sort", "sort direction must be asc or desc")
		}
	}
	if err := validateIdentifier("sort", fieldName); err != nil {
		return "", err
	}
	return fieldName + " " + direction, nil
}

func buildProjection(fields []string) (string, error) {
	if len(fields) == 0 {
		return "*", nil
	}
	for _, f := range fields {
		if err := validateIdentifier("fields", f); err != nil {
			return "", err
		}
	}
	return strings.Join(fields, ", "), nil
}

// validateIdentifier admits plain or dot-qualified column/table names.
// Everything else (spaces, quotes, punctuation) is rejected so
// identifiers can be interpolated safely; values always go through
// placeholders.
func validateIdentifier(field, name string) error {
	if name == "" {
		return errs.NewValidation(field, "identifier must not be empty")
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return errs.NewValidation(field, fmt.Sprintf("invalid identifier %q", name))
		}
		for _, r := range part {
			if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				return errs.NewValidation(field, fmt.Sprintf("invalid identifier %q", name))
			}
		}
	}
	return nil
}
