package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Exchange metrics
	ExchangeAPICalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketdata_exchange_api_calls_total",
			Help: "Total number of exchange API calls",
		},
		[]string{"exchange", "endpoint", "status"}, // status: 2xx|3xx|4xx|5xx|error
	)

	ExchangeAPIErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketdata_exchange_api_errors_total",
			Help: "Total number of exchange API errors",
		},
		[]string{"exchange", "error_type"}, // error_type: timeout|canceled|network|http_4xx|http_5xx
	)

	ExchangeAPILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketdata_exchange_api_latency_seconds",
			Help:    "Exchange API latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"exchange", "endpoint"},
	)
)

var registerOnce sync.Once

// Init registers all metrics with Prometheus
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(ExchangeAPICalls)
		prometheus.MustRegister(ExchangeAPIErrors)
		prometheus.MustRegister(ExchangeAPILatency)
	})
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordExchangeAPICall records an exchange API call.
// statusCode is ignored when err is non-nil.
func RecordExchangeAPICall(exchange, endpoint string, statusCode int, latency time.Duration, err error) {
	status := StatusClass(statusCode)
	if err != nil {
		status = "error"
	}

	ExchangeAPICalls.WithLabelValues(exchange, endpoint, status).Inc()
	ExchangeAPILatency.WithLabelValues(exchange, endpoint).Observe(latency.Seconds())

	switch {
	case err != nil:
		ExchangeAPIErrors.WithLabelValues(exchange, errorType(err)).Inc()
	case statusCode >= 500:
		ExchangeAPIErrors.WithLabelValues(exchange, "http_5xx").Inc()
	case statusCode >= 400:
		ExchangeAPIErrors.WithLabelValues(exchange, "http_4xx").Inc()
	}
}

// StatusClass maps 200 to "2xx", 404 to "4xx" and so on
func StatusClass(code int) string {
	if code < 100 || code > 599 {
		return "unknown"
	}
	return strconv.Itoa(code/100) + "xx"
}

func errorType(err error) string {
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "network"
}
