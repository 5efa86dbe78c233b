package dto

import (
	"github.com/guttosm/bondpulse/internal/domain/models"
	"github.com/guttosm/bondpulse/internal/storage"
)

// SideStatsResponse is one side (or the overall view) of a period
// statistics response.
type SideStatsResponse struct {
	TradeCount       int     `json:"trade_count" example:"152"`
	TotalVolume      float64 `json:"total_volume" example:"1250.5"`
	TotalValue       float64 `json:"total_value" example:"1238.2"`
	InstrumentCount  int     `json:"instrument_count" example:"38"`
	DealerCount      int     `json:"dealer_count" example:"12"`
	AverageTradeSize float64 `json:"average_trade_size" example:"8.2"`
	MinTradeDate     string  `json:"min_trade_date,omitempty" example:"2025-08-01"`
	MaxTradeDate     string  `json:"max_trade_date,omitempty" example:"2025-08-29"`
}

// StatsResponse is the GET /api/v1/stats payload.
type StatsResponse struct {
	Buy     SideStatsResponse `json:"buy"`
	Sell    SideStatsResponse `json:"sell"`
	Overall SideStatsResponse `json:"overall"`
}

func sideStats(s models.SideStats) SideStatsResponse {
	out := SideStatsResponse{
		TradeCount:       s.TradeCount,
		TotalVolume:      s.TotalVolume,
		TotalValue:       s.TotalValue,
		InstrumentCount:  s.InstrumentCount,
		DealerCount:      s.DealerCount,
		AverageTradeSize: s.AverageTradeSize,
	}
	if !s.MinTradeDate.IsZero() {
		out.MinTradeDate = s.MinTradeDate.Format("2006-01-02")
	}
	if !s.MaxTradeDate.IsZero() {
		out.MaxTradeDate = s.MaxTradeDate.Format("2006-01-02")
	}
	return out
}

// NewStatsResponse maps the aggregate statistics to the API shape.
func NewStatsResponse(stats *models.AggregateStats) StatsResponse {
	return StatsResponse{
		Buy:     sideStats(stats.Buy),
		Sell:    sideStats(stats.Sell),
		Overall: sideStats(stats.Overall),
	}
}

// WeekBucketResponse is one collapsed ISO-week bucket.
type WeekBucketResponse struct {
	WeekKey     string             `json:"week_key" example:"2025-W37"`
	Label       string             `json:"label" example:"2025-09-08"`
	BuyRanking  map[string]float64 `json:"buy_ranking"`
	SellRanking map[string]float64 `json:"sell_ranking"`
	BuyDisplay  map[string]float64 `json:"buy_display"`
	SellDisplay map[string]float64 `json:"sell_display"`
}

// WeeklyFlowsResponse is the GET /api/v1/weekly-flows payload. Dealers
// holds the named top-N in rank order; stacks render in that order with
// "All Other Dealers" last, using the palette slots.
type WeeklyFlowsResponse struct {
	Dealers []string             `json:"dealers"`
	Palette map[string]int       `json:"palette"`
	Weeks   []WeekBucketResponse `json:"weeks"`
}

// NewWeeklyFlowsResponse maps collapsed buckets to the API shape.
func NewWeeklyFlowsResponse(collapsed *models.CollapsedBuckets) WeeklyFlowsResponse {
	weeks := make([]WeekBucketResponse, 0, len(collapsed.Buckets))
	for _, b := range collapsed.Buckets {
		weeks = append(weeks, WeekBucketResponse{
			WeekKey:     b.WeekKey,
			Label:       b.Label.Format("2006-01-02"),
			BuyRanking:  b.BuyRanking,
			SellRanking: b.SellRanking,
			BuyDisplay:  b.BuyDisplay,
			SellDisplay: b.SellDisplay,
		})
	}
	return WeeklyFlowsResponse{
		Dealers: collapsed.Dealers,
		Palette: collapsed.Palette,
		Weeks:   weeks,
	}
}

// RankEntryResponse is one row of a dealer ranking.
type RankEntryResponse struct {
	Dealer            string  `json:"dealer" example:"MORGAN STANLEY"`
	Rank              int     `json:"rank" example:"1"`
	Volume            float64 `json:"volume" example:"425.5"`
	PercentageOfTotal float64 `json:"percentage_of_total" example:"34.2"`
	TradeCount        int     `json:"trade_count" example:"57"`
}

// RankingResponse is the GET /api/v1/ranking payload.
type RankingResponse struct {
	Context string              `json:"context" example:"market"`
	Entries []RankEntryResponse `json:"entries"`
}

// NewRankingResponse maps rank entries to the API shape.
func NewRankingResponse(qctx models.QueryContext, entries []models.RankEntry) RankingResponse {
	out := make([]RankEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, RankEntryResponse{
			Dealer:            e.Dealer,
			Rank:              e.Rank,
			Volume:            e.Volume,
			PercentageOfTotal: e.PercentageOfTotal,
			TradeCount:        e.TradeCount,
		})
	}
	return RankingResponse{Context: string(qctx), Entries: out}
}

// ComparisonRowResponse is one merged client/market ranking row. Nil
// ranks serialize as null, meaning the dealer is absent from that scope.
type ComparisonRowResponse struct {
	Dealer         string  `json:"dealer" example:"MORGAN STANLEY"`
	ClientRank     *int    `json:"client_rank" example:"1"`
	MarketRank     *int    `json:"market_rank" example:"2"`
	RankDelta      *int    `json:"rank_delta" example:"1"`
	ClientPct      float64 `json:"client_pct" example:"28.4"`
	MarketPct      float64 `json:"market_pct" example:"19.1"`
	VolumeShareGap float64 `json:"volume_share_gap" example:"9.3"`
}

// ComparisonResponse is the GET /api/v1/ranking/comparison payload.
type ComparisonResponse struct {
	Rows []ComparisonRowResponse `json:"rows"`
}

// NewComparisonResponse maps comparison rows to the API shape.
func NewComparisonResponse(rows []models.ComparisonRow) ComparisonResponse {
	out := make([]ComparisonRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ComparisonRowResponse{
			Dealer:         r.Dealer,
			ClientRank:     r.ClientRank,
			MarketRank:     r.MarketRank,
			RankDelta:      r.RankDelta,
			ClientPct:      r.ClientPct,
			MarketPct:      r.MarketPct,
			VolumeShareGap: r.VolumeShareGap,
		})
	}
	return ComparisonResponse{Rows: out}
}

// MonthlyRankPointResponse is one month of a dealer's trailing rank
// window.
type MonthlyRankPointResponse struct {
	MonthKey     string  `json:"month_key" example:"2025-06"`
	Label        string  `json:"label" example:"2025-06-01"`
	ClientRank   *int    `json:"client_rank" example:"3"`
	MarketRank   *int    `json:"market_rank" example:"5"`
	Delta        *int    `json:"delta" example:"2"`
	ClientVolume float64 `json:"client_volume" example:"112.5"`
}

// TrendResponse is the GET /api/v1/ranking/trend payload.
type TrendResponse struct {
	Dealer string                     `json:"dealer" example:"MORGAN STANLEY"`
	Points []MonthlyRankPointResponse `json:"points"`
}

// NewTrendResponse maps trailing-window points to the API shape.
func NewTrendResponse(dealer string, points []models.MonthlyRankPoint) TrendResponse {
	out := make([]MonthlyRankPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, MonthlyRankPointResponse{
			MonthKey:     p.MonthKey,
			Label:        p.Label.Format("2006-01-02"),
			ClientRank:   p.ClientRank,
			MarketRank:   p.MarketRank,
			Delta:        p.Delta,
			ClientVolume: p.ClientVolume,
		})
	}
	return TrendResponse{Dealer: dealer, Points: out}
}

// MarketTotalsResponse is the GET /api/v1/market-totals payload. When
// the contributor threshold is not met, Error is set and the volume
// fields are withheld.
type MarketTotalsResponse struct {
	TotalVolumeEUR   float64 `json:"total_volume_eur,omitempty" example:"15230.5"`
	BuyVolumeEUR     float64 `json:"buy_volume_eur,omitempty" example:"8120.2"`
	SellVolumeEUR    float64 `json:"sell_volume_eur,omitempty" example:"7110.3"`
	BuyPct           float64 `json:"buy_pct,omitempty" example:"53.3"`
	SellPct          float64 `json:"sell_pct,omitempty" example:"46.7"`
	TotalTrades      int64   `json:"total_trades,omitempty" example:"1843"`
	BuyTrades        int64   `json:"buy_trades,omitempty" example:"972"`
	SellTrades       int64   `json:"sell_trades,omitempty" example:"871"`
	ContributorCount int64   `json:"contributor_count" example:"11"`
	PeriodStart      string  `json:"period_start" example:"2025-08-01"`
	PeriodEnd        string  `json:"period_end" example:"2025-08-31"`
	Error            string  `json:"error,omitempty" example:"Insufficient data for this filter"`
	MinimumRequired  int     `json:"minimum_required,omitempty" example:"5"`
}

// NewMarketTotalsResponse maps market totals to the API shape.
func NewMarketTotalsResponse(totals *models.MarketTotals, minContributors int) MarketTotalsResponse {
	resp := MarketTotalsResponse{
		ContributorCount: totals.ContributorCount,
		PeriodStart:      totals.PeriodStart.Format("2006-01-02"),
		PeriodEnd:        totals.PeriodEnd.Format("2006-01-02"),
	}
	if totals.InsufficientData {
		resp.Error = "Insufficient data for this filter"
		resp.MinimumRequired = minContributors
		return resp
	}
	resp.TotalVolumeEUR = totals.TotalVolumeEUR
	resp.BuyVolumeEUR = totals.BuyVolumeEUR
	resp.SellVolumeEUR = totals.SellVolumeEUR
	resp.BuyPct = totals.BuyPct
	resp.SellPct = totals.SellPct
	resp.TotalTrades = totals.TotalTrades
	resp.BuyTrades = totals.BuyTrades
	resp.SellTrades = totals.SellTrades
	return resp
}

// TradesResponse is the GET /api/v1/trades payload: one page of raw
// records plus its pagination envelope.
type TradesResponse struct {
	Rows       []storage.Row      `json:"rows"`
	Pagination storage.Pagination `json:"pagination"`
	Context    string             `json:"context" example:"market"`
}

// NewTradesResponse maps one listing page to the API shape.
func NewTradesResponse(qctx models.QueryContext, result *storage.ListResult) TradesResponse {
	return TradesResponse{
		Rows:       result.Rows,
		Pagination: result.Pagination,
		Context:    string(qctx),
	}
}
