package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	logger   *zap.Logger
	gatherer prometheus.Gatherer

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	domainEventsTotal *prometheus.CounterVec
	aiRequestsTotal   *prometheus.CounterVec
	aiRequestDuration *prometheus.HistogramVec
	aiCacheTotal      *prometheus.CounterVec
	rateLimitedTotal  prometheus.Counter

	// Rendering
	renderDuration prometheus.Histogram
	renderedBytes  prometheus.Histogram

	// Dependencies
	healthStatus        *prometheus.GaugeVec
	healthCheckDuration *prometheus.HistogramVec
}

// NewMetricsCollector registers the application metrics with a fresh
// registry that also carries the Go runtime and process collectors
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewMetricsCollectorWith(reg, reg, logger)
}

// NewMetricsCollectorWith registers the metrics with reg
func NewMetricsCollectorWith(reg prometheus.Registerer, gatherer prometheus.Gatherer, logger *zap.Logger) *MetricsCollector {
	factory := promauto.With(reg)

	return &MetricsCollector{
		logger:   logger.Named("metrics"),
		gatherer: gatherer,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),

		domainEventsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "domain_events_total",
				Help: "Total number of published domain events",
			},
			[]string{"event"},
		),
		aiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of AI requests",
			},
			[]string{"operation", "provider", "status"},
		),
		aiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "AI provider latency in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"operation", "provider"},
		),
		aiCacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_cache_lookups_total",
				Help: "AI reply cache lookups by result",
			},
			[]string{"operation", "result"},
		),
		rateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rate_limited_requests_total",
				Help: "Requests rejected by the per-user rate limiter",
			},
		),

		renderDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "markup_render_duration_seconds",
				Help:    "Time spent converting assistant text to markup",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		renderedBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "markup_render_output_bytes",
				Help:    "Size of rendered markup",
				Buckets: prometheus.ExponentialBuckets(64, 4, 7),
			},
		),

		healthStatus: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "health_check_status",
				Help: "Last health check result (1 = up, 0 = down)",
			},
			[]string{"check"},
		),
		healthCheckDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "health_check_duration_seconds",
				Help:    "Health check latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"check"},
		),
	}
}

// HTTPRequest records a served request. route is the matched pattern, not
// the raw path.
func (m *MetricsCollector) HTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// DomainEvent counts a published event
func (m *MetricsCollector) DomainEvent(name string) {
	m.domainEventsTotal.WithLabelValues(name).Inc()
}

// AIRequest records one provider call
func (m *MetricsCollector) AIRequest(operation, provider, status string, duration time.Duration) {
	m.aiRequestsTotal.WithLabelValues(operation, provider, status).Inc()
	m.aiRequestDuration.WithLabelValues(operation, provider).Observe(duration.Seconds())
}

// AICacheLookup records a cache hit or miss
func (m *MetricsCollector) AICacheLookup(operation string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.aiCacheTotal.WithLabelValues(operation, result).Inc()
}

// RateLimited counts a rejected request
func (m *MetricsCollector) RateLimited() {
	m.rateLimitedTotal.Inc()
}

// Render records one markup conversion
func (m *MetricsCollector) Render(duration time.Duration, outputBytes int) {
	m.renderDuration.Observe(duration.Seconds())
	m.renderedBytes.Observe(float64(outputBytes))
}

// ObserveHealthCheck records a dependency check result
func (m *MetricsCollector) ObserveHealthCheck(name string, healthy bool, duration time.Duration) {
	value := 0.0
	if healthy {
		value = 1
	}
	m.healthStatus.WithLabelValues(name).Set(value)
	m.healthCheckDuration.WithLabelValues(name).Observe(duration.Seconds())
}

// Handler returns the Prometheus metrics handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(m.logger),
	})
}
