package exchanges

import (
	"context"
	"net/http"
)

// MarketData is the read-only public REST surface of a spot exchange.
//
// Every method performs exactly one GET request and hands back the raw
// response. Non-2xx statuses are not errors; the error is non-nil only when
// the request could not be built or the transport failed. Callers must close
// the response body.
type MarketData interface {
	Name() string

	Ping(ctx context.Context) (*http.Response, error)
	ServerTime(ctx context.Context) (*http.Response, error)
	ExchangeInfo(ctx context.Context) (*http.Response, error)

	OrderBook(ctx context.Context, symbol string, opts OrderBookOptions) (*http.Response, error)
	RecentTrades(ctx context.Context, symbol string, opts RecentTradesOptions) (*http.Response, error)
	HistoricalTrades(ctx context.Context, symbol string, opts HistoricalTradesOptions) (*http.Response, error)
	AggregateTrades(ctx context.Context, symbol string, opts AggregateTradesOptions) (*http.Response, error)
	Klines(ctx context.Context, symbol string, interval Interval, opts KlinesOptions) (*http.Response, error)

	AveragePrice(ctx context.Context, symbol string) (*http.Response, error)
	Ticker24hr(ctx context.Context, symbol string) (*http.Response, error)
	LatestPrice(ctx context.Context, symbol string) (*http.Response, error)
	BookTicker(ctx context.Context, opts BookTickerOptions) (*http.Response, error)
}
