package binance

import (
	"context"
	"net/http"
	"net/url"

	"marketdata/internal/adapters/exchanges"
)

// Ping checks connectivity to the REST API.
func (c *Client) Ping(ctx context.Context) (*http.Response, error) {
	return c.get(ctx, endpointPing, nil)
}

// ServerTime returns the exchange clock.
func (c *Client) ServerTime(ctx context.Context) (*http.Response, error) {
	return c.get(ctx, endpointServerTime, nil)
}

// ExchangeInfo returns trading rules and the symbol catalog.
func (c *Client) ExchangeInfo(ctx context.Context) (*http.Response, error) {
	return c.get(ctx, endpointExchangeInfo, nil)
}

// OrderBook returns the current bid/ask snapshot for symbol.
func (c *Client) OrderBook(ctx context.Context, symbol string, opts exchanges.OrderBookOptions) (*http.Response, error) {
	q := url.Values{"symbol": {symbol}}
	setInt(q, "limit", opts.Limit)
	return c.get(ctx, endpointOrderBook, q)
}

// RecentTrades returns the latest executed trades for symbol.
func (c *Client) RecentTrades(ctx context.Context, symbol string, opts exchanges.RecentTradesOptions) (*http.Response, error) {
	q := url.Values{"symbol": {symbol}}
	setInt(q, "limit", opts.Limit)
	return c.get(ctx, endpointRecentTrades, q)
}

// HistoricalTrades pages through older trades, starting at opts.FromID when set.
func (c *Client) HistoricalTrades(ctx context.Context, symbol string, opts exchanges.HistoricalTradesOptions) (*http.Response, error) {
	q := url.Values{"symbol": {symbol}}
	setInt(q, "limit", opts.Limit)
	setInt64(q, "fromId", opts.FromID)
	return c.get(ctx, endpointHistoricalTrades, q)
}

// AggregateTrades returns trades compressed by price and taker order.
func (c *Client) AggregateTrades(ctx context.Context, symbol string, opts exchanges.AggregateTradesOptions) (*http.Response, error) {
	q := url.Values{"symbol": {symbol}}
	setInt64(q, "startTime", opts.StartTime)
	setInt64(q, "endTime", opts.EndTime)
	setInt(q, "limit", opts.Limit)
	setInt64(q, "fromId", opts.FromID)
	return c.get(ctx, endpointAggregateTrades, q)
}

// Klines returns OHLCV bars of the given interval.
func (c *Client) Klines(ctx context.Context, symbol string, interval exchanges.Interval, opts exchanges.KlinesOptions) (*http.Response, error) {
	q := url.Values{
		"symbol":   {symbol},
		"interval": {string(interval)},
	}
	setInt64(q, "startTime", opts.StartTime)
	setInt64(q, "endTime", opts.EndTime)
	setInt(q, "limit", opts.Limit)
	return c.get(ctx, endpointKlines, q)
}

// AveragePrice returns the rolling average price for symbol.
func (c *Client) AveragePrice(ctx context.Context, symbol string) (*http.Response, error) {
	return c.get(ctx, endpointAveragePrice, url.Values{"symbol": {symbol}})
}

// Ticker24hr returns rolling 24 hour statistics for symbol.
func (c *Client) Ticker24hr(ctx context.Context, symbol string) (*http.Response, error) {
	return c.get(ctx, endpointTicker24hr, url.Values{"symbol": {symbol}})
}

// LatestPrice returns the last traded price for symbol.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (*http.Response, error) {
	return c.get(ctx, endpointLatestPrice, url.Values{"symbol": {symbol}})
}

// BookTicker returns the best bid and ask, for one symbol or for all of them.
func (c *Client) BookTicker(ctx context.Context, opts exchanges.BookTickerOptions) (*http.Response, error) {
	q := url.Values{}
	setString(q, "symbol", opts.Symbol)
	return c.get(ctx, endpointBookTicker, q)
}
