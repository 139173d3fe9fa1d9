package binance

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"marketdata/internal/adapters/exchanges"
	"marketdata/internal/metrics"
	"marketdata/pkg/errors"
	"marketdata/pkg/logger"
)

const (
	// DefaultBaseURL is the primary Binance.US REST host.
	DefaultBaseURL = "https://api.binance.us"

	// APIKeyHeader carries the static API key on every request.
	APIKeyHeader = "X-MBX-APIKEY"

	// RequestIDHeader carries the id logged for the request, so a call can be
	// matched to proxy or exchange logs.
	RequestIDHeader = "X-Request-Id"

	exchangeName       = "binance"
	defaultHTTPTimeout = 10 * time.Second
)

// DefaultAlternateURLs are equivalent Binance.US hosts. The client never
// switches to them on its own; see Client.WithBaseURL.
var DefaultAlternateURLs = []string{
	"https://api1.binance.us",
	"https://api2.binance.us",
	"https://api3.binance.us",
}

// Config configures the Binance market data client.
type Config struct {
	BaseURL       string
	AlternateURLs []string
	APIKey        string

	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client issues public market data requests against one Binance host.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	baseURL    string
	alternates []string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

var _ exchanges.MarketData = (*Client)(nil)

// NewClient creates a new Binance market data client.
// An empty BaseURL selects DefaultBaseURL.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	alternates := make([]string, 0, len(cfg.AlternateURLs))
	for _, raw := range cfg.AlternateURLs {
		alt, err := normalizeBaseURL(raw)
		if err != nil {
			return nil, err
		}
		alternates = append(alternates, alt)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Get()
	}

	return &Client{
		baseURL:    baseURL,
		alternates: alternates,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		log:        log.With("exchange", exchangeName),
	}, nil
}

func (c *Client) Name() string {
	return exchangeName
}

// BaseURL returns the host every request is sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AlternateURLs returns a copy of the configured failover candidates.
func (c *Client) AlternateURLs() []string {
	return append([]string(nil), c.alternates...)
}

// WithBaseURL returns a client that targets baseURL and otherwise shares this
// client's key, transport, logger and alternate list. The receiver is unchanged.
func (c *Client) WithBaseURL(baseURL string) (*Client, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	sibling := *c
	sibling.baseURL = normalized
	sibling.alternates = c.AlternateURLs()
	return &sibling, nil
}

// get sends one GET request for ep. The response is returned as is; a
// transport error is returned exactly as the http.Client produced it.
func (c *Client) get(ctx context.Context, ep endpoint, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + ep.path
	if query := ep.encode(ep.query(params)); query != "" {
		reqURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s request", ep.name)
	}
	req.Header.Set(APIKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)

	if err != nil {
		metrics.RecordExchangeAPICall(exchangeName, ep.name, 0, latency, err)
		c.log.Debugw("market data request failed",
			"request_id", requestID,
			"endpoint", ep.name,
			"path", ep.path,
			"duration", latency,
			"error", err,
		)
		return nil, err
	}

	metrics.RecordExchangeAPICall(exchangeName, ep.name, resp.StatusCode, latency, nil)
	c.log.Debugw("market data request",
		"request_id", requestID,
		"endpoint", ep.name,
		"path", ep.path,
		"status", resp.StatusCode,
		"duration", latency,
	)

	return resp, nil
}

func normalizeBaseURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "base url %q: %v", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.Wrapf(errors.ErrInvalidInput, "base url %q must be absolute", raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", errors.Wrapf(errors.ErrInvalidInput, "base url %q must not carry a query or fragment", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
