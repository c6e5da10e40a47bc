package healthcheck

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
)

// poolSaturation is the in-use share of the SQL pool above which the
// database is reported degraded.
const poolSaturation = 0.9

// probe times fn and fills the bookkeeping fields of its result.
func probe(ctx context.Context, fn func(context.Context) Check) Check {
	start := time.Now()
	c := fn(ctx)
	c.LastChecked = start
	c.Duration = time.Since(start)
	return c
}

func failed(err error) Check {
	return Check{Status: StatusUnhealthy, Message: err.Error()}
}

// CheckFunc turns a plain function into a Checker.
type CheckFunc func(ctx context.Context) (Status, string, map[string]any)

func (f CheckFunc) Check(ctx context.Context) Check {
	return probe(ctx, func(ctx context.Context) Check {
		status, message, metadata := f(ctx)
		return Check{Status: status, Message: message, Metadata: metadata}
	})
}

// DatabaseChecker pings the SQL pool behind gorm.
type DatabaseChecker struct {
	db *sql.DB
}

func NewDatabaseChecker(db *sql.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db}
}

func (d *DatabaseChecker) Check(ctx context.Context) Check {
	return probe(ctx, func(ctx context.Context) Check {
		if err := d.db.PingContext(ctx); err != nil {
			return failed(err)
		}

		stats := d.db.Stats()
		c := Check{
			Status: StatusHealthy,
			Metadata: map[string]any{
				"open_conns":      stats.OpenConnections,
				"in_use":          stats.InUse,
				"idle":            stats.Idle,
				"max_open_conns":  stats.MaxOpenConnections,
				"wait_count":      stats.WaitCount,
				"wait_duration_s": stats.WaitDuration.Seconds(),
			},
		}
		if limit := stats.MaxOpenConnections; limit > 0 && float64(stats.InUse)/float64(limit) > poolSaturation {
			c.Status = StatusDegraded
			c.Message = "connection pool nearly exhausted"
		}
		return c
	})
}

// RedisChecker pings the shared response cache.
type RedisChecker struct {
	client redis.UniversalClient
}

func NewRedisChecker(client redis.UniversalClient) *RedisChecker {
	return &RedisChecker{client: client}
}

func (r *RedisChecker) Check(ctx context.Context) Check {
	return probe(ctx, func(ctx context.Context) Check {
		if err := r.client.Ping(ctx).Err(); err != nil {
			return failed(err)
		}
		stats := r.client.PoolStats()
		return Check{
			Status: StatusHealthy,
			Metadata: map[string]any{
				"total_conns": stats.TotalConns,
				"idle_conns":  stats.IdleConns,
				"timeouts":    stats.Timeouts,
			},
		}
	})
}

// Pinger is implemented by the AI provider clients.
type Pinger interface {
	Name() string
	HealthCheck(ctx context.Context) error
}

// PingChecker probes a Pinger. A failing non-critical target only degrades
// the overall status, since the assistant can fall back to another provider.
type PingChecker struct {
	target   Pinger
	critical bool
}

func NewPingChecker(target Pinger, critical bool) *PingChecker {
	return &PingChecker{target: target, critical: critical}
}

func (p *PingChecker) Check(ctx context.Context) Check {
	return probe(ctx, func(ctx context.Context) Check {
		c := Check{
			Name:     p.target.Name(),
			Status:   StatusHealthy,
			Metadata: map[string]any{"critical": p.critical},
		}
		if err := p.target.HealthCheck(ctx); err != nil {
			c.Status = StatusDegraded
			if p.critical {
				c.Status = StatusUnhealthy
			}
			c.Message = err.Error()
		}
		return c
	})
}
