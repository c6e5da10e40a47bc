// Package healthcheck runs named dependency probes and serves their combined
// result on the /health, /health/live and /health/ready endpoints.
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// severity orders statuses so the overall result is the worst one seen.
func (s Status) severity() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// DefaultTimeout bounds a full round of checks
const DefaultTimeout = 10 * time.Second

// Check is the outcome of one probe.
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ms"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Response is the body of GET /health.
type Response struct {
	Status        Status        `json:"status"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

type Checker interface {
	Check(ctx context.Context) Check
}

// Observer is notified of every fresh check result
type Observer interface {
	ObserveHealthCheck(name string, healthy bool, duration time.Duration)
}

// HealthCheck holds the registered probes and the last computed response.
type HealthCheck struct {
	version string
	logger  *zap.Logger

	mu       sync.RWMutex
	checkers map[string]Checker
	observer Observer
	cacheTTL time.Duration
	timeout  time.Duration
	last     *Response
}

func New(version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		version:  version,
		logger:   logger.Named("healthcheck"),
		checkers: map[string]Checker{},
		cacheTTL: 5 * time.Second,
		timeout:  DefaultTimeout,
	}
}

// Register adds or replaces the probe stored under name.
func (h *HealthCheck) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
	h.last = nil
}

// SetCacheTTL controls how long a response is reused. Zero disables reuse.
func (h *HealthCheck) SetCacheTTL(ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheTTL = ttl
}

func (h *HealthCheck) SetTimeout(timeout time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.timeout = timeout
}

func (h *HealthCheck) SetObserver(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observer = o
}

// Handler serves the full response, with 503 when any probe is unhealthy.
func (h *HealthCheck) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())

		code := http.StatusOK
		if response.Status == StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		h.writeJSON(w, code, response)
	}
}

// LivenessHandler never runs probes; it only proves the process answers.
func (h *HealthCheck) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		h.writeJSON(w, http.StatusOK, map[string]any{"status": "alive", "timestamp": time.Now().UTC()})
	}
}

// ReadinessHandler returns 503 unless every probe is healthy.
func (h *HealthCheck) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())
		if response.Status == StatusHealthy {
			h.writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "timestamp": response.Timestamp})
			return
		}
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"checks": response.Checks,
		})
	}
}

// Check runs every probe in parallel under the configured timeout and
// returns checks sorted by name. A response younger than the cache TTL is
// returned as is.
func (h *HealthCheck) Check(ctx context.Context) Response {
	h.mu.RLock()
	if h.last != nil && time.Since(h.last.Timestamp) < h.cacheTTL {
		cached := *h.last
		h.mu.RUnlock()
		return cached
	}
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)
	probes := make([]Checker, len(names))
	for i, name := range names {
		probes[i] = h.checkers[name]
	}
	timeout, observer := h.timeout, h.observer
	h.mu.RUnlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checks := make([]Check, len(probes))
	var wg sync.WaitGroup
	for i := range probes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			checks[i] = probes[i].Check(ctx)
			checks[i].Name = names[i]
		}(i)
	}
	wg.Wait()

	response := Response{
		Status:    StatusHealthy,
		Version:   h.version,
		Timestamp: start,
		Checks:    checks,
	}
	for _, c := range checks {
		if c.Status.severity() > response.Status.severity() {
			response.Status = c.Status
		}
		if c.Status == StatusUnhealthy {
			h.logger.Warn("Health check failed", zap.String("check", c.Name), zap.String("message", c.Message))
		}
		if observer != nil {
			observer.ObserveHealthCheck(c.Name, c.Status != StatusUnhealthy, c.Duration)
		}
	}
	response.TotalDuration = time.Since(start)

	h.mu.Lock()
	h.last = &response
	h.mu.Unlock()

	return response
}

func (h *HealthCheck) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

// MarshalJSON reports the duration in milliseconds
func (c Check) MarshalJSON() ([]byte, error) {
	type plain Check
	return json.Marshal(&struct {
		Duration float64 `json:"duration_ms"`
		*plain
	}{millis(c.Duration), (*plain)(&c)})
}

// MarshalJSON reports the total duration in milliseconds
func (r Response) MarshalJSON() ([]byte, error) {
	type plain Response
	return json.Marshal(&struct {
		TotalDuration float64 `json:"total_duration_ms"`
		*plain
	}{millis(r.TotalDuration), (*plain)(&r)})
}
