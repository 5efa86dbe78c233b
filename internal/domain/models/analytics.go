package models

import "time"

// WeekBucket accumulates per-dealer volumes for one ISO week.
//
// WeekKey is the ISO week-numbering identifier (e.g. "2025-W37") and
// Label is the Monday of that week. The four maps are keyed by dealer
// name; ranking and display volumes are tracked separately and never
// derived from one another.
type WeekBucket struct {
	WeekKey     string
	Label       time.Time
	BuyRanking  map[string]float64
	SellRanking map[string]float64
	BuyDisplay  map[string]float64
	SellDisplay map[string]float64
}

// NewWeekBucket returns an empty bucket for the given key and Monday label.
func NewWeekBucket(key string, label time.Time) *WeekBucket {
	return &WeekBucket{
		WeekKey:     key,
		Label:       label,
		BuyRanking:  make(map[string]float64),
		SellRanking: make(map[string]float64),
		BuyDisplay:  make(map[string]float64),
		SellDisplay: make(map[string]float64),
	}
}

// AllOtherDealers names the synthetic entry the long tail of dealers is
// collapsed into.
const AllOtherDealers = "All Other Dealers"

// CollapsedBuckets is top-N-collapsed weekly output: every bucket series
// carries only the named dealers plus, when a remainder exists, the
// AllOtherDealers entry at the end of the stack.
type CollapsedBuckets struct {
	Dealers []string       // named top-N dealers, rank order
	Palette map[string]int // stable palette slot per named dealer, rank order; AllOtherDealers holds the final slot
	Buckets []*WeekBucket
}

// RankEntry is one dealer's row in a volume ranking.
type RankEntry struct {
	Dealer            string
	Rank              int // 1-based, dense
	Volume            float64
	PercentageOfTotal float64
	TradeCount        int
}

// ComparisonRow merges one dealer's client-scope and market-scope ranks.
// RankDelta = MarketRank − ClientRank when both exist; a positive delta
// means the client under-uses the dealer relative to the market.
type ComparisonRow struct {
	Dealer         string
	ClientRank     *int
	MarketRank     *int
	RankDelta      *int
	ClientPct      float64
	MarketPct      float64
	VolumeShareGap float64 // ClientPct − MarketPct, missing side as 0
}

// MonthlyRankPoint is one month of a dealer's trailing rank history.
// Nil ranks mean the dealer traded nothing in that scope that month.
type MonthlyRankPoint struct {
	MonthKey     string // "2025-09"
	Label        time.Time
	ClientRank   *int
	MarketRank   *int
	Delta        *int
	ClientVolume float64
}

// SideStats summarizes one side (or the whole) of a filtered period.
type SideStats struct {
	TradeCount       int
	TotalVolume      float64 // Σ rankingVolume
	TotalValue       float64 // Σ rankingVolume × price × 0.01
	InstrumentCount  int     // distinct ISINs
	DealerCount      int     // distinct dealers, missing coalesced to UnknownDealer
	AverageTradeSize float64
	MinTradeDate     time.Time // zero when no rows
	MaxTradeDate     time.Time
}

// AggregateStats is the buy/sell/overall summary for a filtered period.
type AggregateStats struct {
	Buy     SideStats
	Sell    SideStats
	Overall SideStats
}

// MarketTotals is the aggregate market snapshot for a lagged period.
// When ContributorCount is below the configured threshold only the
// counts are populated and InsufficientData is set.
type MarketTotals struct {
	TotalVolumeEUR   float64
	BuyVolumeEUR     float64
	SellVolumeEUR    float64
	BuyPct           float64
	SellPct          float64
	TotalTrades      int64
	BuyTrades        int64
	SellTrades       int64
	ContributorCount int64
	InsufficientData bool
	PeriodStart      time.Time
	PeriodEnd        time.Time
}
