package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned while a provider is being short-circuited
var ErrCircuitOpen = errors.New("circuit breaker is open")

// BreakerState represents the state of a circuit breaker
type BreakerState int

const (
	StateClosed BreakerState = iota
	StateHalfOpen
	StateOpen
)

// String returns the string representation of the state
func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// BreakerOptions holds configuration for the circuit breaker
type BreakerOptions struct {
	// FailureThreshold is the number of consecutive failures that opens the circuit
	FailureThreshold int
	// SuccessThreshold is the number of half-open successes that closes it again
	SuccessThreshold int
	// Cooldown is how long the circuit stays open before probing
	Cooldown time.Duration
}

// BreakerClient wraps an AIClient with the circuit breaker pattern so a
// failing provider is skipped quickly and the fallback chain can move on
type BreakerClient struct {
	next   outbound.AIClient
	opts   BreakerOptions
	logger *zap.Logger
	now    func() time.Time

	mu                   sync.Mutex
	state                BreakerState
	consecutiveFailures  int
	consecutiveSuccesses int
	inFlight             int
	nextAttempt          time.Time
}

var _ outbound.AIClient = (*BreakerClient)(nil)

// NewBreakerClient creates a new circuit breaker around next
func NewBreakerClient(next outbound.AIClient, opts BreakerOptions, logger *zap.Logger) *BreakerClient {
	if opts.FailureThreshold <= 0 {
		opts.FailureThreshold = 5
	}
	if opts.SuccessThreshold <= 0 {
		opts.SuccessThreshold = 2
	}
	if opts.Cooldown <= 0 {
		opts.Cooldown = 30 * time.Second
	}

	return &BreakerClient{
		next:   next,
		opts:   opts,
		logger: logger.Named("breaker").With(zap.String("provider", next.Name())),
		now:    time.Now,
		state:  StateClosed,
	}
}

// Name returns the wrapped provider's name
func (b *BreakerClient) Name() string {
	return b.next.Name()
}

// Generate calls the provider unless the circuit is open
func (b *BreakerClient) Generate(ctx context.Context, prompt domain.Prompt) (string, error) {
	if !b.allow() {
		return "", fmt.Errorf("%s: %w", b.next.Name(), ErrCircuitOpen)
	}

	text, err := b.next.Generate(ctx, prompt)
	// cancellation says nothing about the provider's health
	if err != nil && ctx.Err() != nil {
		b.release()
		return "", err
	}
	b.record(err == nil)
	return text, err
}

// HealthCheck reports an open circuit as unhealthy without calling out
func (b *BreakerClient) HealthCheck(ctx context.Context) error {
	if b.State() == StateOpen {
		return fmt.Errorf("%s: %w", b.next.Name(), ErrCircuitOpen)
	}
	return b.next.HealthCheck(ctx)
}

// State returns the current state of the circuit breaker
func (b *BreakerClient) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *BreakerClient) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateOpen:
		if b.now().Before(b.nextAttempt) {
			return false
		}
		b.setState(StateHalfOpen)
		fallthrough
	case StateHalfOpen:
		// only as many probes as are needed to close again
		if b.inFlight >= b.opts.SuccessThreshold {
			return false
		}
	}
	b.inFlight++
	return true
}

func (b *BreakerClient) release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight--
}

func (b *BreakerClient) record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight--

	if success {
		b.consecutiveFailures = 0
		b.consecutiveSuccesses++
		if b.state == StateHalfOpen && b.consecutiveSuccesses >= b.opts.SuccessThreshold {
			b.setState(StateClosed)
		}
		return
	}

	b.consecutiveSuccesses = 0
	b.consecutiveFailures++
	switch b.state {
	case StateClosed:
		if b.consecutiveFailures >= b.opts.FailureThreshold {
			b.setState(StateOpen)
		}
	case StateHalfOpen:
		b.setState(StateOpen)
	}
}

// setState must be called with mu held
func (b *BreakerClient) setState(state BreakerState) {
	if b.state == state {
		return
	}
	from := b.state
	b.state = state

	switch state {
	case StateOpen:
		b.nextAttempt = b.now().Add(b.opts.Cooldown)
	case StateHalfOpen:
		b.consecutiveSuccesses = 0
	case StateClosed:
		b.consecutiveFailures = 0
		b.consecutiveSuccesses = 0
	}

	b.logger.Warn("Circuit breaker state changed",
		zap.String("from", from.String()),
		zap.String("to", state.String()),
	)
}
