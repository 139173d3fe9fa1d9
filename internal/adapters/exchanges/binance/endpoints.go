package binance

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	defaultDepthLimit  = 100
	defaultTradesLimit = 500
	defaultKlinesLimit = 500
)

// endpoint describes one REST resource. Required parameters are always sent,
// even when empty. Defaults are sent when the caller leaves that parameter out.
// Parameters go on the wire required first, then optional in table order.
type endpoint struct {
	name     string
	path     string
	required []string
	optional []string
	defaults map[string]string
}

var (
	endpointPing         = endpoint{name: "ping", path: "/api/v3/ping"}
	endpointServerTime   = endpoint{name: "time", path: "/api/v3/time"}
	endpointExchangeInfo = endpoint{name: "exchangeInfo", path: "/api/v3/exchangeInfo"}

	endpointOrderBook = endpoint{
		name:     "depth",
		path:     "/api/v3/depth",
		required: []string{"symbol"},
		optional: []string{"limit"},
		defaults: map[string]string{"limit": strconv.Itoa(defaultDepthLimit)},
	}
	endpointRecentTrades = endpoint{
		name:     "trades",
		path:     "/api/v3/trades",
		required: []string{"symbol"},
		optional: []string{"limit"},
		defaults: map[string]string{"limit": strconv.Itoa(defaultTradesLimit)},
	}
	endpointHistoricalTrades = endpoint{
		name:     "historicalTrades",
		path:     "/api/v3/historicalTrades",
		required: []string{"symbol"},
		optional: []string{"limit", "fromId"},
		defaults: map[string]string{"limit": strconv.Itoa(defaultTradesLimit)},
	}
	endpointAggregateTrades = endpoint{
		name:     "aggTrades",
		path:     "/api/v3/aggTrades",
		required: []string{"symbol"},
		optional: []string{"limit", "startTime", "endTime", "fromId"},
		defaults: map[string]string{"limit": strconv.Itoa(defaultTradesLimit)},
	}
	endpointKlines = endpoint{
		name:     "klines",
		path:     "/api/v3/klines",
		required: []string{"symbol", "interval"},
		optional: []string{"limit", "startTime", "endTime"},
		defaults: map[string]string{"limit": strconv.Itoa(defaultKlinesLimit)},
	}

	endpointAveragePrice = endpoint{name: "avgPrice", path: "/api/v3/avgPrice", required: []string{"symbol"}}
	endpointTicker24hr   = endpoint{name: "ticker24hr", path: "/api/v3/ticker/24hr", required: []string{"symbol"}}
	endpointLatestPrice  = endpoint{name: "tickerPrice", path: "/api/v3/ticker/price", required: []string{"symbol"}}
	endpointBookTicker   = endpoint{name: "bookTicker", path: "/api/v3/ticker/bookTicker", optional: []string{"symbol"}}
)

// query returns a copy of params with required keys and defaults filled in.
func (ep endpoint) query(params url.Values) url.Values {
	q := make(url.Values, len(params)+len(ep.defaults))
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	for _, name := range ep.required {
		if _, ok := q[name]; !ok {
			q.Set(name, "")
		}
	}
	for name, value := range ep.defaults {
		if _, ok := q[name]; !ok {
			q.Set(name, value)
		}
	}
	return q
}

// encode renders q in wire order. Keys the table does not know about follow,
// sorted.
func (ep endpoint) encode(q url.Values) string {
	var b strings.Builder
	seen := make(map[string]bool, len(q))

	write := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		for _, v := range q[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}

	for _, key := range ep.required {
		write(key)
	}
	for _, key := range ep.optional {
		write(key)
	}

	rest := make([]string, 0, len(q))
	for key := range q {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		write(key)
	}

	return b.String()
}

func setInt(q url.Values, key string, v *int) {
	if v != nil {
		q.Set(key, strconv.Itoa(*v))
	}
}

func setInt64(q url.Values, key string, v *int64) {
	if v != nil {
		q.Set(key, strconv.FormatInt(*v, 10))
	}
}

func setString(q url.Values, key string, v *string) {
	if v != nil {
		q.Set(key, *v)
	}
}
