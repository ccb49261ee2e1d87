// Package metrics provides Prometheus metrics for the medals service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Refresh loop
	refreshTotal    *prometheus.CounterVec
	refreshDuration prometheus.Histogram

	// Published snapshot
	snapshotLastUpdated prometheus.Gauge
	snapshotNextUpdate  prometheus.Gauge
	snapshotCountries   prometheus.Gauge

	// Upstream feed
	upstreamFetchDuration *prometheus.HistogramVec
	upstreamFetchErrors   *prometheus.CounterVec

	// Per-country detail queries
	detailRequests *prometheus.CounterVec

	// Reference store
	referenceLookupDuration *prometheus.HistogramVec

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "olympics",
		subsystem:        "medals",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.refreshTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_total",
		Help:      "Background refresh iterations by result",
	}, []string{"result"})

	m.refreshDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_duration_milliseconds",
		Help:      "Histogram of full refresh duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.snapshotLastUpdated = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_updated_seconds",
		Help:      "Unix time of the last successful refresh",
	})

	m.snapshotNextUpdate = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_next_update_seconds",
		Help:      "Unix time of the next scheduled refresh",
	})

	m.snapshotCountries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_countries",
		Help:      "Number of countries in the published snapshot",
	})

	m.upstreamFetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_fetch_duration_milliseconds",
		Help:      "Histogram of upstream fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"document"})

	m.upstreamFetchErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_fetch_errors_total",
		Help:      "Upstream fetch failures by document",
	}, []string{"document"})

	m.detailRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "detail_requests_total",
		Help:      "Per-country detail queries by result",
	}, []string{"result"})

	m.referenceLookupDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reference_lookup_duration_milliseconds",
		Help:      "Histogram of reference-store lookup latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"entity"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordRefresh records one scheduler iteration.
func RecordRefresh(success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	globalManager.refreshTotal.WithLabelValues(result).Inc()
	globalManager.refreshDuration.Observe(float64(duration.Milliseconds()))
}

// UpdateSnapshot publishes the timing and size of the current snapshot.
func UpdateSnapshot(lastUpdated, nextUpdate time.Time, countryCount int) {
	if !lastUpdated.IsZero() {
		globalManager.snapshotLastUpdated.Set(float64(lastUpdated.Unix()))
	}
	if !nextUpdate.IsZero() {
		globalManager.snapshotNextUpdate.Set(float64(nextUpdate.Unix()))
	}
	globalManager.snapshotCountries.Set(float64(countryCount))
}

// RecordUpstreamFetch records the latency of one upstream document
// fetch.
func RecordUpstreamFetch(document string, durationMs float64) {
	globalManager.upstreamFetchDuration.WithLabelValues(document).Observe(durationMs)
}

// RecordUpstreamFetchError counts a failed upstream fetch.
func RecordUpstreamFetchError(document string) {
	globalManager.upstreamFetchErrors.WithLabelValues(document).Inc()
}

// RecordDetailRequest counts one per-country detail query.
func RecordDetailRequest(result string) {
	globalManager.detailRequests.WithLabelValues(result).Inc()
}

// RecordReferenceLookup records the latency of one store lookup.
func RecordReferenceLookup(entity string, durationMs float64) {
	globalManager.referenceLookupDuration.WithLabelValues(entity).Observe(durationMs)
}

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the duration of one served HTTP
// request.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
