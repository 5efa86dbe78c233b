package models

// QueryContext selects whose trades an analytics query runs over.
//
// ContextClient restricts rows to the configured client's own trades.
// ContextMarket runs over the whole dataset with the market date cap
// applied. ContextCompare issues one query per scope and merges.
type QueryContext string

const (
	ContextMarket  QueryContext = "market"
	ContextClient  QueryContext = "client"
	ContextCompare QueryContext = "compare"
)

// Valid reports whether the context is one of the three known values.
func (c QueryContext) Valid() bool {
	return c == ContextMarket || c == ContextClient || c == ContextCompare
}

// FilterSelection carries the structured filter state of one dashboard
// widget. Empty sets mean "no restriction" for that dimension.
type FilterSelection struct {
	Products              []string
	Sectors               []string
	Regions               []string
	Seniorities           []string
	IncludeUnknownDealers bool
	ClientID              string // optional; required only for client context
}
