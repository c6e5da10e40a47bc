package monitoring

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCollector() (*MetricsCollector, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewMetricsCollectorWith(reg, reg, zap.NewNop()), reg
}

func TestMetricsCollector_Counters(t *testing.T) {
	m, _ := newTestCollector()

	m.AIRequest("recipe", "gemini", "success", 200*time.Millisecond)
	m.AIRequest("recipe", "gemini", "error", time.Second)
	m.AICacheLookup("recipe", true)
	m.AICacheLookup("recipe", false)
	m.AICacheLookup("recipe", false)
	m.DomainEvent("recipe.created")
	m.RateLimited()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.aiRequestsTotal.WithLabelValues("recipe", "gemini", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.aiCacheTotal.WithLabelValues("recipe", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.domainEventsTotal.WithLabelValues("recipe.created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimitedTotal))
}

func TestMetricsCollector_Handler(t *testing.T) {
	m, _ := newTestCollector()
	m.HTTPRequest(http.MethodGet, "/api/v1/recipes", http.StatusOK, 10*time.Millisecond)
	m.Render(50*time.Microsecond, 120)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `http_requests_total{method="GET",route="/api/v1/recipes",status_code="200"} 1`))
	assert.Contains(t, body, "markup_render_duration_seconds_count 1")
}

func TestMetricsCollector_ObserveHealthCheck(t *testing.T) {
	m, _ := newTestCollector()

	m.ObserveHealthCheck("database", true, time.Millisecond)
	m.ObserveHealthCheck("gemini", false, time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.healthStatus.WithLabelValues("database")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.healthStatus.WithLabelValues("gemini")))
}

func TestTracingProvider_Disabled(t *testing.T) {
	tp, err := NewTracingProvider(TracingConfig{ServiceName: "test"}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.Enabled())

	assert.Empty(t, TraceIDFromContext(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestExporterOptions(t *testing.T) {
	assert.Len(t, exporterOptions("collector:4318"), 2)
	assert.Len(t, exporterOptions("https://collector.example.com/v1/traces"), 1)
}
