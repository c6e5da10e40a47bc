package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBreaker(next *testutils.MockAIClient) (*BreakerClient, *time.Time) {
	b := NewBreakerClient(next, BreakerOptions{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Cooldown:         time.Minute,
	}, zap.NewNop())

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }
	return b, &now
}

func TestBreakerClient_OpensAfterFailures(t *testing.T) {
	ctx := context.Background()
	prompt := domain.Prompt{User: "hi"}
	next := testutils.NewMockAIClient("gemini")
	next.On("Generate", mock.Anything, prompt).Return("", errors.New("503")).Twice()

	b, _ := newTestBreaker(next)

	for i := 0; i < 2; i++ {
		_, err := b.Generate(ctx, prompt)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrCircuitOpen)
	}
	assert.Equal(t, StateOpen, b.State())

	_, err := b.Generate(ctx, prompt)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.ErrorIs(t, b.HealthCheck(ctx), ErrCircuitOpen)

	next.AssertNumberOfCalls(t, "Generate", 2)
}

func TestBreakerClient_HalfOpenRecovers(t *testing.T) {
	ctx := context.Background()
	prompt := domain.Prompt{User: "hi"}
	next := testutils.NewMockAIClient("gemini")
	next.On("Generate", mock.Anything, prompt).Return("", errors.New("503")).Twice()
	next.On("Generate", mock.Anything, prompt).Return("ok", nil).Once()

	b, now := newTestBreaker(next)
	_, _ = b.Generate(ctx, prompt)
	_, _ = b.Generate(ctx, prompt)
	require.Equal(t, StateOpen, b.State())

	*now = now.Add(time.Minute)

	text, err := b.Generate(ctx, prompt)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerClient_HalfOpenFailureReopens(t *testing.T) {
	ctx := context.Background()
	prompt := domain.Prompt{User: "hi"}
	next := testutils.NewMockAIClient("ollama")
	next.On("Generate", mock.Anything, prompt).Return("", errors.New("down")).Times(3)

	b, now := newTestBreaker(next)
	_, _ = b.Generate(ctx, prompt)
	_, _ = b.Generate(ctx, prompt)

	*now = now.Add(time.Minute)
	_, err := b.Generate(ctx, prompt)
	require.Error(t, err)
	assert.Equal(t, StateOpen, b.State())

	_, err = b.Generate(ctx, prompt)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestBreakerClient_CancellationIsNotAFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	prompt := domain.Prompt{User: "hi"}
	next := testutils.NewMockAIClient("gemini")
	next.On("Generate", mock.Anything, prompt).Return("", context.Canceled)

	b, _ := newTestBreaker(next)
	for i := 0; i < 3; i++ {
		_, err := b.Generate(ctx, prompt)
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", BreakerState(9).String())
}
