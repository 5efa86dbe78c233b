package storage

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/guttosm/bondpulse/internal/domain/models"
)

// TradeRecordsTable is the dataset all analytics queries read from.
const TradeRecordsTable = "trade_records"

// TradeRecordColumns is the SELECT list analytics queries use. size_in_MM
// is the currency-neutral ranking volume; size_in_eur is the converted
// display volume. The two stay separate all the way through.
const TradeRecordColumns = `trade_date, trade_time, side, counter_party, buy_side, ` +
	`size_in_MM, size_in_eur, currency, price, coupon_perc, maturity, isin, ticker, venue, ` +
	`secmst_entity_name, secmst_glimpse_sector, secmst_region, secmst_seniority, secmst_bond_category`

// RecordFromRow decodes one executor row into a TradeRecord.
//
// Rows may come from the Postgres driver (native types) or from the
// remote service's JSON (strings and json numbers mixed), so every
// field is decoded tolerantly.
func RecordFromRow(row Row) models.TradeRecord {
	rec := models.TradeRecord{
		TradeDate:     asDate(row["trade_date"]),
		TradeTime:     asString(row["trade_time"]),
		Side:          models.Side(asString(row["side"])),
		ClientID:      asString(row["buy_side"]),
		RankingVolume: asFloat(col(row, "size_in_MM")),
		DisplayVolume: asFloat(row["size_in_eur"]),
		Currency:      asString(row["currency"]),
		Price:         asFloat(row["price"]),
		CouponPerc:    asFloat(row["coupon_perc"]),
		Maturity:      asString(row["maturity"]),
		ISIN:          asString(row["isin"]),
		Ticker:        asString(row["ticker"]),
		Venue:         asString(row["venue"]),
		IssuerName:    asString(row["secmst_entity_name"]),
		Sector:        asString(row["secmst_glimpse_sector"]),
		Region:        asString(row["secmst_region"]),
		Seniority:     asString(row["secmst_seniority"]),
		BondCategory:  asString(row["secmst_bond_category"]),
	}
	if dealer := asString(row["counter_party"]); dealer != "" {
		rec.CounterParty = &dealer
	}
	return rec
}

// RecordsFromResult decodes all rows of a query result.
func RecordsFromResult(result *QueryResult) []models.TradeRecord {
	records := make([]models.TradeRecord, 0, len(result.Rows))
	for _, row := range result.Rows {
		records = append(records, RecordFromRow(row))
	}
	return records
}

// RowFloat reads one numeric column from a row, tolerating the string
// and json.Number forms aggregate results arrive in.
func RowFloat(row Row, col string) float64 {
	return asFloat(row[col])
}

// col looks a column up under its declared name first, then under its
// lowercase fold. Postgres folds unquoted identifiers to lowercase; the
// remote query service preserves the declared case.
func col(row Row, name string) any {
	if v, ok := row[name]; ok {
		return v
	}
	return row[strings.ToLower(name)]
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return ""
	}
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
		return f
	default:
		return 0
	}
}

// asDate keeps only the calendar date; trade_time is an independent
// field and is never folded in.
func asDate(v any) time.Time {
	switch d := v.(type) {
	case nil:
		return time.Time{}
	case time.Time:
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	case string:
		return parseDateString(d)
	case []byte:
		return parseDateString(string(d))
	default:
		return time.Time{}
	}
}

func parseDateString(s string) time.Time {
	// Timestamps arrive as "2025-09-04T00:00:00" or plain dates.
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		s = s[:i]
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}
