package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/bondpulse/internal/domain/dto"
	"github.com/guttosm/bondpulse/internal/domain/models"
	"github.com/guttosm/bondpulse/internal/filter"
	"github.com/guttosm/bondpulse/internal/service"
)

// ConsumerHeader identifies the requesting widget for last-issued-wins
// request sequencing. Requests without it are not sequenced.
const ConsumerHeader = "X-Consumer-ID"

// Handler provides HTTP handlers for the analytics endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Translate them into service requests
//   - Map service results and errors into response DTOs
type Handler struct {
	svc             service.AnalyticsService
	dispatcher      *service.Dispatcher
	minContributors int
}

// NewHandler constructs a Handler around the analytics service.
func NewHandler(svc service.AnalyticsService, dispatcher *service.Dispatcher, minContributors int) *Handler {
	return &Handler{svc: svc, dispatcher: dispatcher, minContributors: minContributors}
}

// parsePeriod reads the required date_from/date_to params. date_to is
// inclusive on the wire and converted to the exclusive next-day bound
// the pipeline works with.
func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	from, ok := parseDateParam(c, "date_from")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	to, ok := parseDateParam(c, "date_to")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return from, filter.NextDay(to), true
}

func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(name+" is required", nil))
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid "+name+" format, expected YYYY-MM-DD", err))
		return time.Time{}, false
	}
	return parsed, true
}

func parseListParam(c *gin.Context, name string) []string {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIntParam(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid "+name+", expected an integer", err))
		return 0, false
	}
	return n, true
}

// parseRequest assembles the common analytics request from query params.
func parseRequest(c *gin.Context) (service.Request, bool) {
	from, to, ok := parsePeriod(c)
	if !ok {
		return service.Request{}, false
	}

	qctx := models.QueryContext(strings.ToLower(strings.TrimSpace(c.DefaultQuery("context", string(models.ContextMarket)))))
	if !qctx.Valid() {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid context, expected market, client or compare", nil))
		return service.Request{}, false
	}

	includeUnknown := strings.EqualFold(c.Query("include_unknown_dealers"), "true")

	return service.Request{
		Selection: models.FilterSelection{
			Products:              parseListParam(c, "products"),
			Sectors:               parseListParam(c, "sectors"),
			Regions:               parseListParam(c, "regions"),
			Seniorities:           parseListParam(c, "seniorities"),
			IncludeUnknownDealers: includeUnknown,
		},
		Context:  qctx,
		DateFrom: from,
		DateTo:   to,
	}, true
}

// sequenced wraps a handler body with the last-issued-wins discipline:
// when the consumer header is present, a sequence number is drawn
// before the query runs and checked before the result is applied. A
// superseded invocation returns 409 instead of a stale payload.
func (h *Handler) sequenced(c *gin.Context, run func() (any, error)) {
	consumer := c.GetHeader(ConsumerHeader)
	var seq uint64
	if consumer != "" {
		seq = h.dispatcher.Next(consumer)
	}

	result, err := run()
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	if consumer != "" && !h.dispatcher.Accept(consumer, seq) {
		c.JSON(http.StatusConflict, dto.NewErrorResponse("request superseded by a newer invocation", nil))
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStats handles GET /api/v1/stats.
//
// GetStats godoc
// @Summary      Period statistics
// @Description  Buy/sell/overall trade statistics for a filtered period
// @Tags         analytics
// @Produce      json
// @Param        date_from                query  string  true   "Start date (inclusive), YYYY-MM-DD" example(2025-08-01)
// @Param        date_to                  query  string  true   "End date (inclusive), YYYY-MM-DD"   example(2025-08-31)
// @Param        context                  query  string  false  "market or client" example(market)
// @Param        products                 query  string  false  "Comma-separated bond categories"
// @Param        sectors                  query  string  false  "Comma-separated sectors"
// @Param        regions                  query  string  false  "Comma-separated regions"
// @Param        seniorities              query  string  false  "Comma-separated seniorities"
// @Param        include_unknown_dealers  query  bool    false  "Keep rows without a dealer"
// @Success      200  {object}  dto.StatsResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502  {object}  dto.ErrorResponse  "Query Failure"
// @Router       /api/v1/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}
	h.sequenced(c, func() (any, error) {
		stats, err := h.svc.PeriodStats(c.Request.Context(), req)
		if err != nil {
			return nil, err
		}
		return dto.NewStatsResponse(stats), nil
	})
}

// GetWeeklyFlows handles GET /api/v1/weekly-flows.
//
// GetWeeklyFlows godoc
// @Summary      Weekly dealer flows
// @Description  ISO-week buckets of dealer buy/sell volume, top-N collapsed
// @Tags         analytics
// @Produce      json
// @Param        date_from  query  string  true   "Start date (inclusive), YYYY-MM-DD"
// @Param        date_to    query  string  true   "End date (inclusive), YYYY-MM-DD"
// @Param        context    query  string  false  "market or client"
// @Param        top        query  int     false  "Named dealer count" example(10)
// @Success      200  {object}  dto.WeeklyFlowsResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse        "Bad Request"
// @Failure      502  {object}  dto.ErrorResponse        "Query Failure"
// @Router       /api/v1/weekly-flows [get]
func (h *Handler) GetWeeklyFlows(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}
	top, ok := parseIntParam(c, "top", 0)
	if !ok {
		return
	}
	h.sequenced(c, func() (any, error) {
		collapsed, err := h.svc.WeeklyFlows(c.Request.Context(), req, top)
		if err != nil {
			return nil, err
		}
		return dto.NewWeeklyFlowsResponse(collapsed), nil
	})
}

// GetRanking handles GET /api/v1/ranking.
//
// GetRanking godoc
// @Summary      Dealer ranking
// @Description  Dealers ranked by total ranking volume for one scope
// @Tags         ranking
// @Produce      json
// @Param        date_from  query  string  true   "Start date (inclusive), YYYY-MM-DD"
// @Param        date_to    query  string  true   "End date (inclusive), YYYY-MM-DD"
// @Param        context    query  string  false  "market or client"
// @Success      200  {object}  dto.RankingResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse    "Bad Request"
// @Failure      502  {object}  dto.ErrorResponse    "Query Failure"
// @Router       /api/v1/ranking [get]
func (h *Handler) GetRanking(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}
	if req.Context == models.ContextCompare {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("ranking context must be market or client; use /ranking/comparison for both", nil))
		return
	}
	h.sequenced(c, func() (any, error) {
		entries, err := h.svc.DealerRanking(c.Request.Context(), req)
		if err != nil {
			return nil, err
		}
		return dto.NewRankingResponse(req.Context, entries), nil
	})
}

// GetComparison handles GET /api/v1/ranking/comparison.
//
// GetComparison godoc
// @Summary      Client vs market ranking comparison
// @Description  Merged comparative ranking table with rank deltas
// @Tags         ranking
// @Produce      json
// @Param        date_from  query  string  true   "Start date (inclusive), YYYY-MM-DD"
// @Param        date_to    query  string  true   "End date (inclusive), YYYY-MM-DD"
// @Param        limit      query  int     false  "Maximum row count, applied after merge ordering"
// @Success      200  {object}  dto.ComparisonResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse       "Bad Request"
// @Failure      502  {object}  dto.ErrorResponse       "Query Failure"
// @Router       /api/v1/ranking/comparison [get]
func (h *Handler) GetComparison(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}
	limit, ok := parseIntParam(c, "limit", 0)
	if !ok {
		return
	}
	h.sequenced(c, func() (any, error) {
		rows, err := h.svc.RankingComparison(c.Request.Context(), req, limit)
		if err != nil {
			return nil, err
		}
		return dto.NewComparisonResponse(rows), nil
	})
}

// GetTrend handles GET /api/v1/ranking/trend.
//
// GetTrend godoc
// @Summary      Dealer rank trend
// @Description  Trailing monthly client/market ranks for one dealer
// @Tags         ranking
// @Produce      json
// @Param        date_from  query  string  true   "Start date (inclusive), YYYY-MM-DD"
// @Param        date_to    query  string  true   "Anchor end date (inclusive), YYYY-MM-DD"
// @Param        dealer     query  string  true   "Dealer name" example(MORGAN STANLEY)
// @Param        months     query  int     false  "Trailing window length" example(6)
// @Success      200  {object}  dto.TrendResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      502  {object}  dto.ErrorResponse  "Query Failure"
// @Router       /api/v1/ranking/trend [get]
func (h *Handler) GetTrend(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}
	dealer := strings.TrimSpace(c.Query("dealer"))
	if dealer == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("dealer is required", nil))
		return
	}
	months, ok := parseIntParam(c, "months", 0)
	if !ok {
		return
	}
	h.sequenced(c, func() (any, error) {
		points, err := h.svc.DealerRankTrend(c.Request.Context(), req, dealer, months)
		if err != nil {
			return nil, err
		}
		return dto.NewTrendResponse(dealer, points), nil
	})
}

// GetMarketTotals handles GET /api/v1/market-totals.
//
// GetMarketTotals godoc
// @Summary      Market totals
// @Description  Aggregate market volumes and trade counts for a lagged period
// @Tags         analytics
// @Produce      json
// @Param        date_from  query  string  true  "Start date (inclusive), YYYY-MM-DD"
// @Param        date_to    query  string  true  "End date (inclusive), YYYY-MM-DD"
// @Success      200  {object}  dto.MarketTotalsResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse         "Bad Request"
// @Failure      502  {object}  dto.ErrorResponse         "Query Failure"
// @Router       /api/v1/market-totals [get]
func (h *Handler) GetMarketTotals(c *gin.Context) {
	from, to, ok := parsePeriod(c)
	if !ok {
		return
	}
	h.sequenced(c, func() (any, error) {
		totals, err := h.svc.MarketTotals(c.Request.Context(), from, to)
		if err != nil {
			return nil, err
		}
		return dto.NewMarketTotalsResponse(totals, h.minContributors), nil
	})
}

// ListTrades handles GET /api/v1/trades.
//
// ListTrades godoc
// @Summary      List trade records
// @Description  Paginated raw record listing; market context is lagged and anonymized, client context shows the client's own trades in full
// @Tags         trades
// @Produce      json
// @Param        date_from  query  string  true   "Start date (inclusive), YYYY-MM-DD"
// @Param        date_to    query  string  true   "End date (inclusive), YYYY-MM-DD"
// @Param        context    query  string  false  "market or client"
// @Param        sort       query  string  false  "Single sort key, field:asc|desc" example(trade_date:desc)
// @Param        limit      query  int     false  "Page size" example(100)
// @Param        offset     query  int     false  "Row offset"
// @Param        page       query  int     false  "1-based page, alternative to offset"
// @Success      200  {object}  dto.TradesResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse   "Bad Request"
// @Failure      502  {object}  dto.ErrorResponse   "Query Failure"
// @Router       /api/v1/trades [get]
func (h *Handler) ListTrades(c *gin.Context) {
	req, ok := parseRequest(c)
	if !ok {
		return
	}
	if req.Context == models.ContextCompare {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("listing context must be market or client", nil))
		return
	}
	limit, ok := parseIntParam(c, "limit", 0)
	if !ok {
		return
	}
	offset, ok := parseIntParam(c, "offset", 0)
	if !ok {
		return
	}
	page, ok := parseIntParam(c, "page", 0)
	if !ok {
		return
	}
	h.sequenced(c, func() (any, error) {
		result, err := h.svc.ListTrades(c.Request.Context(), service.ListTradesRequest{
			Selection: req.Selection,
			Context:   req.Context,
			DateFrom:  req.DateFrom,
			DateTo:    req.DateTo,
			Sort:      strings.TrimSpace(c.Query("sort")),
			Limit:     limit,
			Offset:    offset,
			Page:      page,
		})
		if err != nil {
			return nil, err
		}
		return dto.NewTradesResponse(req.Context, result), nil
	})
}
