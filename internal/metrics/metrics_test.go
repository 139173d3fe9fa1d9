package metrics

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(200))
	assert.Equal(t, "3xx", StatusClass(304))
	assert.Equal(t, "4xx", StatusClass(429))
	assert.Equal(t, "5xx", StatusClass(503))
	assert.Equal(t, "unknown", StatusClass(0))
	assert.Equal(t, "unknown", StatusClass(600))
}

func TestRecordExchangeAPICall(t *testing.T) {
	exchange := "test-" + t.Name()

	RecordExchangeAPICall(exchange, "depth", 200, 10*time.Millisecond, nil)
	RecordExchangeAPICall(exchange, "depth", 200, 20*time.Millisecond, nil)
	RecordExchangeAPICall(exchange, "depth", 400, 5*time.Millisecond, nil)
	RecordExchangeAPICall(exchange, "klines", 502, 5*time.Millisecond, nil)
	RecordExchangeAPICall(exchange, "ping", 0, time.Second, context.DeadlineExceeded)
	RecordExchangeAPICall(exchange, "ping", 0, time.Second, fmt.Errorf("dial: %w", context.Canceled))
	RecordExchangeAPICall(exchange, "ping", 0, time.Second, fmt.Errorf("connection refused"))

	assert.Equal(t, 2.0, testutil.ToFloat64(ExchangeAPICalls.WithLabelValues(exchange, "depth", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ExchangeAPICalls.WithLabelValues(exchange, "depth", "4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ExchangeAPICalls.WithLabelValues(exchange, "klines", "5xx")))
	assert.Equal(t, 3.0, testutil.ToFloat64(ExchangeAPICalls.WithLabelValues(exchange, "ping", "error")))

	assert.Equal(t, 1.0, testutil.ToFloat64(ExchangeAPIErrors.WithLabelValues(exchange, "http_4xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ExchangeAPIErrors.WithLabelValues(exchange, "http_5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ExchangeAPIErrors.WithLabelValues(exchange, "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ExchangeAPIErrors.WithLabelValues(exchange, "canceled")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ExchangeAPIErrors.WithLabelValues(exchange, "network")))
}

func TestHostsCollector(t *testing.T) {
	c := NewHostsCollector("binance", "https://api.binance.us", []string{"https://api1.binance.us"})

	assert.Equal(t, 2, testutil.CollectAndCount(c, "marketdata_exchange_host_info"))

	expected := `
# HELP marketdata_exchange_host_info Configured exchange hosts (1 for every known host)
# TYPE marketdata_exchange_host_info gauge
marketdata_exchange_host_info{exchange="binance",host="https://api.binance.us",role="primary"} 1
marketdata_exchange_host_info{exchange="binance",host="https://api1.binance.us",role="alternate"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected)))
}

func TestHandler(t *testing.T) {
	Init()
	Init() // second call must not panic on duplicate registration

	RecordExchangeAPICall("binance", "time", 200, time.Millisecond, nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marketdata_exchange_api_calls_total")
}
