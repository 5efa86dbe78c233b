package filter

import (
	"strings"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/errs"
	"github.com/guttosm/bondpulse/internal/domain/models"
)

// Column names of the trade_records dataset used by compiled conditions.
const (
	ColTradeDate    = "trade_date"
	ColClientID     = "buy_side"
	ColCounterParty = "counter_party"
	ColBondCategory = "secmst_bond_category"
	ColSector       = "secmst_glimpse_sector"
	ColRegion       = "secmst_region"
	ColSeniority    = "secmst_seniority"
)

// Compile turns a filter selection plus date range and query context
// into the ordered condition list shared by every analytics query.
//
// The order is a contract, not an optimization: date lower bound, date
// upper bound, client identity (client context only), unknown-dealer
// exclusion (only when unknown dealers are excluded), then
// products/sectors/regions/seniorities IN-conditions for non-empty sets.
// Deterministic output keeps compiled queries diffable in tests.
//
// dateFrom is inclusive and dateTo exclusive. clientID is the effective
// client identity; in client context a missing one is a ValidationError,
// raised before any query text exists.
func Compile(sel models.FilterSelection, qctx models.QueryContext, dateFrom, dateTo time.Time, clientID string) ([]Leaf, error) {
	if qctx == models.ContextClient && clientID == "" {
		return nil, errs.NewValidation("client_id", "client context requires a configured client identity")
	}

	conditions := []Leaf{
		{Field: ColTradeDate, Op: OpGe, Value: dateFrom.Format("2006-01-02")},
		{Field: ColTradeDate, Op: OpLt, Value: dateTo.Format("2006-01-02")},
	}

	if qctx == models.ContextClient {
		conditions = append(conditions, Leaf{Field: ColClientID, Op: OpEq, Value: clientID})
	}
	if !sel.IncludeUnknownDealers {
		conditions = append(conditions, Leaf{Field: ColCounterParty, Op: OpNe, Value: nil})
	}

	in := func(field string, values []string) {
		if len(values) > 0 {
			conditions = append(conditions, Leaf{Field: field, Op: OpIn, Value: normalize(values)})
		}
	}
	in(ColBondCategory, sel.Products)
	in(ColSector, sel.Sectors)
	in(ColRegion, sel.Regions)
	in(ColSeniority, sel.Seniorities)

	return conditions, nil
}

// Where serializes compiled conditions into one conjunctive WHERE
// fragment with `?` placeholders and its ordered parameter values.
func Where(conditions []Leaf) (string, []any) {
	nodes := make([]Node, len(conditions))
	for i, c := range conditions {
		nodes[i] = c
	}
	return SQL(And{Children: nodes})
}

// Tree wraps compiled conditions as an And node, for callers that ship
// the filterTree wire format instead of SQL.
func Tree(conditions []Leaf) Node {
	nodes := make([]Node, len(conditions))
	for i, c := range conditions {
		nodes[i] = c
	}
	return And{Children: nodes}
}

// normalize trims values and drops empties so selections coming off the
// wire compile identically regardless of stray whitespace.
func normalize(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// CapMarketDates applies the market lag policy to a date range: the end
// bound is capped at now minus lagDays while the start bound is
// unchanged. Market data can never be more recent than the lag allows.
func CapMarketDates(dateFrom, dateTo, now time.Time, lagDays int) (time.Time, time.Time) {
	maxAllowed := DateOnly(now).AddDate(0, 0, -lagDays)
	if dateTo.After(maxAllowed) {
		dateTo = maxAllowed
	}
	return dateFrom, dateTo
}

// DateOnly strips the time component, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NextDay converts an inclusive end date to the exclusive upper bound
// used by compiled conditions (trade_date < next day).
func NextDay(t time.Time) time.Time {
	return DateOnly(t).AddDate(0, 0, 1)
}
