package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/config"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/response"
	apperrors "github.com/alchemorsel/recipe-assistant/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RejectionRecorder counts rejected requests
type RejectionRecorder interface {
	RateLimited()
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per authenticated user, falling back
// to the client IP for anonymous requests
type RateLimiter struct {
	limit    rate.Limit
	burst    int
	idle     time.Duration
	recorder RejectionRecorder
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	visitors map[string]*visitor
	stop     chan struct{}
	once     sync.Once
}

// NewRateLimiter creates a limiter from configuration. recorder may be nil.
// Idle visitors are evicted every cfg.CleanupInterval until Close.
func NewRateLimiter(cfg config.RateLimitConfig, recorder RejectionRecorder, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		limit:    rate.Limit(float64(cfg.RequestsPerMin) / 60),
		burst:    cfg.BurstSize,
		idle:     3 * time.Minute,
		recorder: recorder,
		logger:   logger.Named("ratelimit"),
		now:      time.Now,
		visitors: make(map[string]*visitor),
		stop:     make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		rl.idle = 3 * cfg.CleanupInterval
		go rl.cleanup(cfg.CleanupInterval)
	}
	return rl
}

// Middleware rejects requests over the limit with 429 and Retry-After
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.key(r)
		reservation := rl.limiter(key).ReserveN(rl.now(), 1)

		if !reservation.OK() {
			rl.reject(w, r, key, time.Minute)
			return
		}
		if delay := reservation.DelayFrom(rl.now()); delay > 0 {
			reservation.CancelAt(rl.now())
			rl.reject(w, r, key, delay)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Close stops the cleanup goroutine
func (rl *RateLimiter) Close() {
	rl.once.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) reject(w http.ResponseWriter, r *http.Request, key string, retryAfter time.Duration) {
	if rl.recorder != nil {
		rl.recorder.RateLimited()
	}
	rl.logger.Warn("Rate limit exceeded", zap.String("client", key))

	seconds := int(math.Ceil(retryAfter.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	response.Error(w, r, rl.logger, apperrors.NewTooManyRequestsError().WithMetadata("retry_after", seconds))
}

func (rl *RateLimiter) key(r *http.Request) string {
	if userID, ok := UserIDFromContext(r.Context()); ok {
		return "user:" + userID.String()
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = rl.now()
	return v.limiter
}

func (rl *RateLimiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.evict()
		case <-rl.stop:
			return
		}
	}
}

func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.idle)
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}
