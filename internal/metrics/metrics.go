// Package metrics exposes Prometheus collectors for the scraping proxy.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal            *prometheus.CounterVec
	httpRequestDurationSeconds   *prometheus.HistogramVec
	upstreamFetchTotal           *prometheus.CounterVec
	upstreamFetchDurationSeconds *prometheus.HistogramVec
	upstreamBytesTotal           *prometheus.CounterVec
	snapshotWritesTotal          *prometheus.CounterVec
	extractedRecords             *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)

		upstreamFetchTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goodshort_upstream_fetch_total",
				Help: "Total number of upstream page fetches, labeled by endpoint and outcome.",
			},
			[]string{"endpoint", "outcome"},
		)

		upstreamFetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goodshort_upstream_fetch_duration_seconds",
				Help:    "Histogram of upstream fetch latencies, labeled by endpoint.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"endpoint"},
		)

		upstreamBytesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goodshort_upstream_bytes_total",
				Help: "Total number of upstream body bytes, labeled by endpoint.",
			},
			[]string{"endpoint"},
		)

		snapshotWritesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goodshort_snapshot_writes_total",
				Help: "Total number of upstream snapshot writes, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		extractedRecords = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goodshort_extracted_records",
				Help:    "Number of records extracted per upstream page, labeled by endpoint.",
				Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
			},
			[]string{"endpoint"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	Init()
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstreamFetch records one upstream fetch.
func ObserveUpstreamFetch(endpoint, outcome string, bytesFetched int, duration time.Duration) {
	Init()
	upstreamFetchTotal.WithLabelValues(endpoint, outcome).Inc()
	upstreamFetchDurationSeconds.WithLabelValues(endpoint).Observe(duration.Seconds())
	if bytesFetched > 0 {
		upstreamBytesTotal.WithLabelValues(endpoint).Add(float64(bytesFetched))
	}
}

// ObserveSnapshotWrite records the outcome of a snapshot write.
func ObserveSnapshotWrite(outcome string) {
	Init()
	snapshotWritesTotal.WithLabelValues(outcome).Inc()
}

// ObserveExtracted records how many records an extractor produced.
func ObserveExtracted(endpoint string, count int) {
	Init()
	extractedRecords.WithLabelValues(endpoint).Observe(float64(count))
}
