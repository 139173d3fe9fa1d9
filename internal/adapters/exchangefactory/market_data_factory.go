package exchangefactory

import (
	"net/http"

	"marketdata/internal/adapters/config"
	"marketdata/internal/adapters/exchanges/binance"
	"marketdata/pkg/errors"
	"marketdata/pkg/logger"
)

// NewMarketDataClient builds the Binance market data client from configuration.
// The transport timeout comes from HTTP_TIMEOUT; zero means no timeout.
func NewMarketDataClient(cfg *config.Config, log *logger.Logger) (*binance.Client, error) {
	if cfg == nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "market data config is nil")
	}
	if log == nil {
		log = logger.Get()
	}

	client, err := binance.NewClient(binance.Config{
		BaseURL:       cfg.MarketData.BaseURL,
		AlternateURLs: cfg.MarketData.AlternateURLs,
		APIKey:        cfg.MarketData.APIKey,
		HTTPClient:    &http.Client{Timeout: cfg.HTTP.Timeout},
		Logger:        log.With("component", "market_data"),
	})
	if err != nil {
		return nil, errors.Wrap(err, "create binance client")
	}

	log.Debugw("market data client ready",
		"base_url", client.BaseURL(),
		"alternates", len(client.AlternateURLs()),
		"timeout", cfg.HTTP.Timeout,
	)

	return client, nil
}
