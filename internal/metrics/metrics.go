// Package metrics provides Prometheus metrics for the API client and the
// census exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Census metrics.
	CensusOnlineBots = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tmcatcher",
		Subsystem: "census",
		Name:      "online_bots",
		Help:      "Number of online bots reported by the last successful census poll.",
	})
	CensusPollsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tmcatcher",
		Subsystem: "census",
		Name:      "polls_total",
		Help:      "Total number of census polls by result.",
	}, []string{"result"}) // "online" or "offline"

	// APIUp is 1 when the last health check succeeded.
	APIUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tmcatcher",
		Subsystem: "api",
		Name:      "up",
		Help:      "Whether the remote API answered the last health check (1) or not (0).",
	})

	// API client metrics.
	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tmcatcher",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total API operations by outcome.",
	}, []string{"operation", "outcome"})
	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tmcatcher",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of API requests that reached the network.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})
)

func init() {
	prometheus.MustRegister(
		CensusOnlineBots,
		CensusPollsTotal,
		APIUp,
		APIRequestsTotal,
		APIRequestDuration,
	)
}

// ObserveAPIRequest records one API operation. A zero duration means no
// request was sent (local validation failure) and skips the histogram.
func ObserveAPIRequest(operation, outcome string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(operation, outcome).Inc()
	if duration > 0 {
		APIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	}
}

// ObserveCensus records the result of one census poll.
func ObserveCensus(online bool, count int) {
	if online {
		CensusPollsTotal.WithLabelValues("online").Inc()
		CensusOnlineBots.Set(float64(count))
		return
	}
	CensusPollsTotal.WithLabelValues("offline").Inc()
	CensusOnlineBots.Set(0)
}

// SetAPIUp records the result of a health check.
func SetAPIUp(up bool) {
	if up {
		APIUp.Set(1)
		return
	}
	APIUp.Set(0)
}
