package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HostsCollector exposes the configured exchange hosts as an info metric
// so dashboards can tell which host a process is pointed at.
type HostsCollector struct {
	exchange   string
	primary    string
	alternates []string

	hostInfo *prometheus.Desc
}

// NewHostsCollector creates a collector for one exchange's host set
func NewHostsCollector(exchange, primary string, alternates []string) *HostsCollector {
	return &HostsCollector{
		exchange:   exchange,
		primary:    primary,
		alternates: append([]string(nil), alternates...),

		hostInfo: prometheus.NewDesc(
			"marketdata_exchange_host_info",
			"Configured exchange hosts (1 for every known host)",
			[]string{"exchange", "host", "role"}, // role: primary|alternate
			nil,
		),
	}
}

// Describe implements prometheus.Collector
func (c *HostsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hostInfo
}

// Collect implements prometheus.Collector
func (c *HostsCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.hostInfo, prometheus.GaugeValue, 1, c.exchange, c.primary, "primary")

	for _, host := range c.alternates {
		ch <- prometheus.MustNewConstMetric(c.hostInfo, prometheus.GaugeValue, 1, c.exchange, host, "alternate")
	}
}
