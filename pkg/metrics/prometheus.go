// Package metrics provides Prometheus metrics for the tip service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default histogram layouts. Tips span 0..30, activations 0..1 and a
// pipeline run is measured in fractions of a millisecond.
var (
	tipBuckets        = prometheus.LinearBuckets(0, 2.5, 13)
	activationBuckets = prometheus.LinearBuckets(0, 0.1, 11)
	pipelineBuckets   = prometheus.ExponentialBuckets(0.001, 4, 8)
	gcPauseBuckets    = []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Inference
	calculations       *prometheus.CounterVec
	rejectedInputs     *prometheus.CounterVec
	tipValue           *prometheus.HistogramVec
	tipLevelActivation *prometheus.HistogramVec
	pipelineLatency    prometheus.Histogram
	lastTip            prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// Process
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton backing the package-level helpers

// customRegistry keeps the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "tipper",
		subsystem:        "fuzzy",
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

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.calculations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "calculations_total",
		Help:        "Total number of tip calculations by defuzzification method",
		ConstLabels: m.constLabels,
	}, []string{"method"})

	m.rejectedInputs = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rejected_inputs_total",
		Help:        "Inputs rejected before reaching the pipeline, by field",
		ConstLabels: m.constLabels,
	}, []string{"field"})

	m.tipValue = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tip_value",
		Help:        "Distribution of crisp tips returned",
		Buckets:     tipBuckets,
		ConstLabels: m.constLabels,
	}, []string{"method"})

	m.tipLevelActivation = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "tip_level_activation",
		Help:        "Aggregated activation of each tip level",
		Buckets:     activationBuckets,
		ConstLabels: m.constLabels,
	}, []string{"level"})

	m.pipelineLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pipeline_latency_milliseconds",
		Help:        "Time spent in fuzzify, rules, aggregate and defuzzify",
		Buckets:     pipelineBuckets,
		ConstLabels: m.constLabels,
	})

	m.lastTip = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_tip",
		Help:        "Most recent crisp tip returned",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_type_total",
		Help:        "Errors by type and severity",
		ConstLabels: m.constLabels,
	}, []string{"error_type", "severity"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_endpoint_total",
		Help:        "Errors by endpoint, method and type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})

	m.errorLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "error_latency_milliseconds",
		Help:        "Latency of operations that ended in an error",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     gcPauseBuckets,
		ConstLabels: m.constLabels,
	})
}

// RecordCalculation records one successful pipeline run.
func (m *Manager) RecordCalculation(method string, tip, latencyMs float64) {
	m.calculations.WithLabelValues(method).Inc()
	m.tipValue.WithLabelValues(method).Observe(tip)
	m.pipelineLatency.Observe(latencyMs)
	m.lastTip.Set(tip)
}

// RecordTipLevels records the aggregated activation of each tip level.
func (m *Manager) RecordTipLevels(cheap, average, generous float64) {
	m.tipLevelActivation.WithLabelValues("cheap").Observe(cheap)
	m.tipLevelActivation.WithLabelValues("average").Observe(average)
	m.tipLevelActivation.WithLabelValues("generous").Observe(generous)
}

// RecordRejectedInput counts an input refused by validation.
func (m *Manager) RecordRejectedInput(field string) {
	m.rejectedInputs.WithLabelValues(field).Inc()
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records a failed operation.
func (m *Manager) RecordError(component, endpoint, method, errorType, severity string, latencyMs float64) {
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	if endpoint != "" {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
	m.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystem sets the process gauges.
func (m *Manager) UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if avgGCPauseMs > 0 {
		m.systemGCPauseTime.Observe(avgGCPauseMs)
	}
}

// RecordCalculation records a calculation on the global manager.
func RecordCalculation(method string, tip, latencyMs float64) {
	globalManager.RecordCalculation(method, tip, latencyMs)
}

// RecordTipLevels records tip level activations on the global manager.
func RecordTipLevels(cheap, average, generous float64) {
	globalManager.RecordTipLevels(cheap, average, generous)
}

// RecordRejectedInput counts a rejected input on the global manager.
func RecordRejectedInput(field string) {
	globalManager.RecordRejectedInput(field)
}

// RecordHTTPRequest records an HTTP request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError records an error on the global manager.
func RecordError(component, endpoint, method, errorType, severity string, latencyMs float64) {
	globalManager.RecordError(component, endpoint, method, errorType, severity, latencyMs)
}

// UpdateSystem sets the process gauges on the global manager.
func UpdateSystem(memBytes uint64, goroutines int, avgGCPauseMs float64) {
	globalManager.UpdateSystem(memBytes, goroutines, avgGCPauseMs)
}

// GetRegistry returns the registry served on /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
