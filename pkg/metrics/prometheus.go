// Package metrics provides Prometheus metrics for the lineup roster service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for allocation attempts.
const (
	OutcomeBalanced   = "balanced"
	OutcomeResidual   = "residual"
	OutcomeEmpty      = "empty"
	OutcomeValidation = "validation_failed"
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Allocation metrics
	allocations         *prometheus.CounterVec
	allocationPlayers   prometheus.Histogram
	allocationSwaps     prometheus.Histogram
	allocationIters     prometheus.Histogram
	allocationGap       prometheus.Histogram
	allocationLatency   prometheus.Histogram
	validationFailures  prometheus.Counter
	invalidRecordsTotal prometheus.Counter

	// Roster metrics
	rosterRows prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the package-level helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry served by /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "lineup",
		subsystem:        "roster",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	small := []float64{0, 1, 2, 4, 8, 16, 32, 64}

	m.allocations = auto.NewCounterVec(
		m.counter("allocations_total", "Allocation attempts by outcome"),
		[]string{"outcome"},
	)
	m.allocationPlayers = auto.NewHistogram(m.histogram(
		"allocation_players", "Attending players per allocation",
		[]float64{0, 2, 4, 8, 12, 16, 20, 24, 32, 48, 64},
	))
	m.allocationSwaps = auto.NewHistogram(m.histogram(
		"allocation_swaps", "Swaps applied by the balancing pass", small,
	))
	m.allocationIters = auto.NewHistogram(m.histogram(
		"allocation_iterations", "Balancing loop iterations per allocation", small,
	))
	m.allocationGap = auto.NewHistogram(m.histogram(
		"allocation_skill_gap", "Residual team skill gap after balancing",
		[]float64{0, 0.5, 1, 2, 3, 5, 8, 13, 21},
	))
	m.allocationLatency = auto.NewHistogram(m.histogram(
		"allocation_latency_milliseconds", "Time spent parsing and allocating a roster", m.histogramBuckets,
	))
	m.validationFailures = auto.NewCounter(m.counter(
		"validation_failures_total", "Allocations rejected because of invalid records",
	))
	m.invalidRecordsTotal = auto.NewCounter(m.counter(
		"invalid_records_total", "Records named in validation failures",
	))

	m.rosterRows = auto.NewGauge(m.gauge("rows", "Rows currently held in the roster grid"))

	m.httpRequests = auto.NewCounterVec(
		m.counter("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counter("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counter("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counter("errors_by_endpoint_total", "Errors by endpoint, method and type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogram("error_latency_milliseconds", "Latency of operations that ended in an error", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordAllocation records a successful allocation and its balancing figures.
func RecordAllocation(players, iterations, swaps int, gap float64, balanced bool) {
	outcome := OutcomeResidual
	switch {
	case players == 0:
		outcome = OutcomeEmpty
	case balanced:
		outcome = OutcomeBalanced
	}
	globalManager.allocations.WithLabelValues(outcome).Inc()
	globalManager.allocationPlayers.Observe(float64(players))
	globalManager.allocationIters.Observe(float64(iterations))
	globalManager.allocationSwaps.Observe(float64(swaps))
	globalManager.allocationGap.Observe(gap)
}

// RecordValidationFailure records an allocation rejected for invalid records.
func RecordValidationFailure(records int) {
	globalManager.allocations.WithLabelValues(OutcomeValidation).Inc()
	globalManager.validationFailures.Inc()
	globalManager.invalidRecordsTotal.Add(float64(records))
}

// RecordAllocationLatency records parse+allocate time in milliseconds.
func RecordAllocationLatency(latencyMs float64) {
	globalManager.allocationLatency.Observe(latencyMs)
}

// UpdateRosterRows sets the number of rows in the grid.
func UpdateRosterRows(count int) {
	globalManager.rosterRows.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
