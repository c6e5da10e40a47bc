package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func staticChecker(status Status, message string) CheckFunc {
	return func(context.Context) (Status, string, map[string]any) {
		return status, message, nil
	}
}

type fakePinger struct {
	name string
	err  error
}

func (f fakePinger) Name() string { return f.name }
func (f fakePinger) HealthCheck(ctx context.Context) error { return f.err }

type recordingObserver struct {
	mu      sync.Mutex
	results map[string]bool
}

func (r *recordingObserver) ObserveHealthCheck(name string, healthy bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[name] = healthy
}

func TestHealthCheck_Check_NoCheckers(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())

	response := hc.Check(context.Background())

	assert.Equal(t, StatusHealthy, response.Status)
	assert.Equal(t, "1.0.0", response.Version)
	assert.Empty(t, response.Checks)
}

func TestHealthCheck_Check_AggregatesStatus(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"all healthy", []Status{StatusHealthy, StatusHealthy}, StatusHealthy},
		{"one degraded", []Status{StatusHealthy, StatusDegraded}, StatusDegraded},
		{"unhealthy wins", []Status{StatusDegraded, StatusUnhealthy, StatusHealthy}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("1.0.0", zap.NewNop())
			for i, s := range tt.statuses {
				hc.Register(string(rune('a'+i)), staticChecker(s, ""))
			}

			response := hc.Check(context.Background())

			assert.Equal(t, tt.want, response.Status)
			require.Len(t, response.Checks, len(tt.statuses))
			assert.Equal(t, "a", response.Checks[0].Name)
		})
	}
}

func TestHealthCheck_Check_UsesCache(t *testing.T) {
	var calls atomic.Int32
	hc := New("1.0.0", zap.NewNop())
	hc.Register("counting", CheckFunc(func(context.Context) (Status, string, map[string]any) {
		calls.Add(1)
		return StatusHealthy, "", nil
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())
	assert.Equal(t, int32(1), calls.Load())

	hc.SetCacheTTL(0)
	hc.Check(context.Background())
	assert.Equal(t, int32(2), calls.Load())
}

func TestHealthCheck_Check_Timeout(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.SetTimeout(20 * time.Millisecond)
	hc.Register("slow", CheckFunc(func(ctx context.Context) (Status, string, map[string]any) {
		<-ctx.Done()
		return StatusUnhealthy, ctx.Err().Error(), nil
	}))

	start := time.Now()
	response := hc.Check(context.Background())

	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, StatusUnhealthy, response.Status)
	assert.Equal(t, context.DeadlineExceeded.Error(), response.Checks[0].Message)
}

func TestHealthCheck_Observer(t *testing.T) {
	obs := &recordingObserver{results: map[string]bool{}}
	hc := New("1.0.0", zap.NewNop())
	hc.SetObserver(obs)
	hc.Register("db", staticChecker(StatusHealthy, ""))
	hc.Register("ai", staticChecker(StatusUnhealthy, "down"))

	hc.Check(context.Background())

	assert.Equal(t, map[string]bool{"db": true, "ai": false}, obs.results)
}

func TestHealthCheck_Handlers(t *testing.T) {
	hc := New("2.0.0", zap.NewNop())
	hc.Register("ai", staticChecker(StatusUnhealthy, "down"))

	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		hc.Handler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "2.0.0", body["version"])
		assert.Contains(t, body, "total_duration_ms")
	})

	t.Run("live", func(t *testing.T) {
		rec := httptest.NewRecorder()
		hc.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"alive"`)
	})

	t.Run("ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		hc.ReadinessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), `"not_ready"`)
	})
}

func TestPingChecker(t *testing.T) {
	ctx := context.Background()

	check := NewPingChecker(fakePinger{name: "gemini"}, false).Check(ctx)
	assert.Equal(t, StatusHealthy, check.Status)
	assert.Equal(t, "gemini", check.Name)

	check = NewPingChecker(fakePinger{name: "gemini", err: errors.New("401")}, false).Check(ctx)
	assert.Equal(t, StatusDegraded, check.Status)
	assert.Equal(t, "401", check.Message)

	check = NewPingChecker(fakePinger{name: "gemini", err: errors.New("401")}, true).Check(ctx)
	assert.Equal(t, StatusUnhealthy, check.Status)
}

func TestDatabaseChecker(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	check := NewDatabaseChecker(sqlDB).Check(context.Background())
	assert.Equal(t, StatusHealthy, check.Status)
	assert.Contains(t, check.Metadata, "open_conns")

	require.NoError(t, sqlDB.Close())
	check = NewDatabaseChecker(sqlDB).Check(context.Background())
	assert.Equal(t, StatusUnhealthy, check.Status)
	assert.NotEmpty(t, check.Message)
}

func TestCheck_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Check{Name: "db", Status: StatusHealthy, Duration: 1500 * time.Microsecond})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 1.5, out["duration_ms"])
	assert.Equal(t, "db", out["name"])
}
