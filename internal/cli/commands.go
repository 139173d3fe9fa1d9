package cli

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"time"

	"marketdata/internal/adapters/exchanges"
	"marketdata/pkg/errors"
)

// requestFlags holds the per-command flags. The set map records which flags
// were given on the command line so that unset ones stay absent.
type requestFlags struct {
	symbol   string
	limit    int
	fromID   int64
	start    string
	end      string
	interval string
	host     string

	set map[string]bool
}

func (f requestFlags) limitOpt() *int {
	if !f.set["limit"] {
		return nil
	}
	return exchanges.Int(f.limit)
}

func (f requestFlags) fromIDOpt() *int64 {
	if !f.set["from-id"] {
		return nil
	}
	return exchanges.Int64(f.fromID)
}

func (f requestFlags) symbolOpt() *string {
	if !f.set["symbol"] {
		return nil
	}
	return exchanges.String(f.symbol)
}

func (f requestFlags) startOpt() (*int64, error) {
	if !f.set["start"] {
		return nil, nil
	}
	ms, err := parseTimestamp(f.start)
	if err != nil {
		return nil, errors.Wrap(err, "-start")
	}
	return &ms, nil
}

func (f requestFlags) endOpt() (*int64, error) {
	if !f.set["end"] {
		return nil, nil
	}
	ms, err := parseTimestamp(f.end)
	if err != nil {
		return nil, errors.Wrap(err, "-end")
	}
	return &ms, nil
}

type command struct {
	usage string
	run   func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error)
}

var commands = map[string]command{
	"ping": {
		usage: "check connectivity",
		run: func(ctx context.Context, c exchanges.MarketData, _ requestFlags) (*http.Response, error) {
			return c.Ping(ctx)
		},
	},
	"time": {
		usage: "server time",
		run: func(ctx context.Context, c exchanges.MarketData, _ requestFlags) (*http.Response, error) {
			return c.ServerTime(ctx)
		},
	},
	"exchange-info": {
		usage: "trading rules and symbol catalog",
		run: func(ctx context.Context, c exchanges.MarketData, _ requestFlags) (*http.Response, error) {
			return c.ExchangeInfo(ctx)
		},
	},
	"depth": {
		usage: "order book: -symbol [-limit]",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			return c.OrderBook(ctx, f.symbol, exchanges.OrderBookOptions{Limit: f.limitOpt()})
		},
	},
	"trades": {
		usage: "recent trades: -symbol [-limit]",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			return c.RecentTrades(ctx, f.symbol, exchanges.RecentTradesOptions{Limit: f.limitOpt()})
		},
	},
	"historical-trades": {
		usage: "older trades: -symbol [-limit] [-from-id]",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			return c.HistoricalTrades(ctx, f.symbol, exchanges.HistoricalTradesOptions{
				Limit:  f.limitOpt(),
				FromID: f.fromIDOpt(),
			})
		},
	},
	"agg-trades": {
		usage: "aggregate trades: -symbol [-start] [-end] [-limit] [-from-id]",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			start, err := f.startOpt()
			if err != nil {
				return nil, err
			}
			end, err := f.endOpt()
			if err != nil {
				return nil, err
			}
			return c.AggregateTrades(ctx, f.symbol, exchanges.AggregateTradesOptions{
				StartTime: start,
				EndTime:   end,
				Limit:     f.limitOpt(),
				FromID:    f.fromIDOpt(),
			})
		},
	},
	"klines": {
		usage: "candlesticks: -symbol -interval [-start] [-end] [-limit]",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			start, err := f.startOpt()
			if err != nil {
				return nil, err
			}
			end, err := f.endOpt()
			if err != nil {
				return nil, err
			}
			return c.Klines(ctx, f.symbol, exchanges.Interval(f.interval), exchanges.KlinesOptions{
				StartTime: start,
				EndTime:   end,
				Limit:     f.limitOpt(),
			})
		},
	},
	"avg-price": {
		usage: "rolling average price: -symbol",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			return c.AveragePrice(ctx, f.symbol)
		},
	},
	"ticker-24hr": {
		usage: "24 hour statistics: -symbol",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			return c.Ticker24hr(ctx, f.symbol)
		},
	},
	"price": {
		usage: "latest price: -symbol",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			return c.LatestPrice(ctx, f.symbol)
		},
	},
	"book-ticker": {
		usage: "best bid/ask: [-symbol] (all symbols when omitted)",
		run: func(ctx context.Context, c exchanges.MarketData, f requestFlags) (*http.Response, error) {
			return c.BookTicker(ctx, exchanges.BookTickerOptions{Symbol: f.symbolOpt()})
		},
	},
}

func commandNames() []string {
	names := make([]string, 0, len(commands)+1)
	for name := range commands {
		names = append(names, name)
	}
	names = append(names, "hosts")
	sort.Strings(names)
	return names
}

// parseTimestamp accepts Unix milliseconds or an RFC 3339 time.
func parseTimestamp(s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, errors.NewValidationError("timestamp", "want unix milliseconds or RFC 3339", s)
	}
	return t.UnixMilli(), nil
}
