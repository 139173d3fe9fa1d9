package exchanges

// Interval is a candlestick width as the exchange spells it.
// Values are sent verbatim; unknown intervals are left for the exchange to reject.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval3m  Interval = "3m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval2h  Interval = "2h"
	Interval4h  Interval = "4h"
	Interval6h  Interval = "6h"
	Interval8h  Interval = "8h"
	Interval12h Interval = "12h"
	Interval1d  Interval = "1d"
	Interval3d  Interval = "3d"
	Interval1w  Interval = "1w"
	Interval1M  Interval = "1M"
)

// Intervals lists every supported interval, shortest first.
var Intervals = []Interval{
	Interval1m, Interval3m, Interval5m, Interval15m, Interval30m,
	Interval1h, Interval2h, Interval4h, Interval6h, Interval8h, Interval12h,
	Interval1d, Interval3d, Interval1w, Interval1M,
}

// Optional request parameters are pointers: nil means "not provided" and the
// parameter is left out of the query string. Times are Unix milliseconds.

// OrderBookOptions for the depth endpoint. Limit defaults to 100.
type OrderBookOptions struct {
	Limit *int
}

// RecentTradesOptions for the recent trades endpoint. Limit defaults to 500.
type RecentTradesOptions struct {
	Limit *int
}

// HistoricalTradesOptions for the historical trades endpoint. Limit defaults to 500.
type HistoricalTradesOptions struct {
	Limit  *int
	FromID *int64
}

// AggregateTradesOptions for the aggregate trades endpoint. Limit defaults to 500.
type AggregateTradesOptions struct {
	StartTime *int64
	EndTime   *int64
	Limit     *int
	FromID    *int64
}

// KlinesOptions for the candlestick endpoint. Limit defaults to 500.
type KlinesOptions struct {
	StartTime *int64
	EndTime   *int64
	Limit     *int
}

// BookTickerOptions for the best bid/ask endpoint.
// A nil Symbol returns the top of book for every symbol.
type BookTickerOptions struct {
	Symbol *string
}

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
