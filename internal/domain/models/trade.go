package models

import "time"

// Side identifies which way a trade went, from the reporting (client)
// perspective: a Buy means the client bought from the dealer.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// IsBuyOrSell reports whether the side is one of the two tradable values.
// Rows carrying anything else (unwinds, corrections) are skipped by the
// bucketing pipeline.
func (s Side) IsBuyOrSell() bool {
	return s == SideBuy || s == SideSell
}

// ClientSide returns the side as the client's own action, unchanged.
// AggregateStats uses this convention: counts and volumes are reported
// from the trader's own point of view.
func ClientSide(s Side) Side { return s }

// DealerSide returns the side mirrored to the dealer's action: a client
// Buy is a dealer Sell and vice versa. Weekly dealer-flow buckets use
// this convention so that a dealer's "buy" series shows what the dealer
// actually bought.
func DealerSide(s Side) Side {
	switch s {
	case SideBuy:
		return SideSell
	case SideSell:
		return SideBuy
	default:
		return s
	}
}

// UnknownDealer is the label substituted for a missing counterparty
// wherever dealers are counted or displayed.
const UnknownDealer = "Unknown Dealer"

// TradeRecord represents a single row of the trade_records dataset.
//
// TradeDate carries only the calendar date (time component zero) and
// TradeTime is an independent time-of-day string; the two are never
// combined into one timestamp.
//
// RankingVolume is the currency-neutral size used for ordering and
// ranking dealers. DisplayVolume is the local-currency-derived size used
// only for chart labels. The two are distinct inputs and neither is ever
// derived from the other downstream.
type TradeRecord struct {
	TradeDate     time.Time
	TradeTime     string
	Side          Side
	CounterParty  *string // dealer name; nil when the source had none
	ClientID      string
	RankingVolume float64
	DisplayVolume float64
	Currency      string
	Price         float64
	CouponPerc    float64
	Maturity      string
	ISIN          string
	Ticker        string
	Venue         string
	IssuerName    string
	Sector        string
	Region        string
	Seniority     string
	BondCategory  string
}

// Dealer returns the counterparty name, coalescing a missing one to
// UnknownDealer.
func (t *TradeRecord) Dealer() string {
	if t.CounterParty == nil || *t.CounterParty == "" {
		return UnknownDealer
	}
	return *t.CounterParty
}

// HasDealer reports whether the row names a real counterparty.
func (t *TradeRecord) HasDealer() bool {
	return t.CounterParty != nil && *t.CounterParty != ""
}
