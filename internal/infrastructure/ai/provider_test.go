package ai

import (
	"testing"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProvider(t *testing.T) {
	cfg := config.AIConfig{
		Gemini: config.GeminiConfig{APIKey: "key"},
	}

	client, err := NewProvider("gemini", cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gemini", client.Name())

	client, err = NewProvider("ollama", cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "ollama", client.Name())

	client, err = NewProvider("", cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, client)

	_, err = NewProvider("openai", cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestNewProviders_PromotesFallbackWhenPrimaryFails(t *testing.T) {
	// gemini without a key cannot be built
	cfg := config.AIConfig{Provider: "gemini", FallbackProvider: "ollama"}

	primary, secondary := NewProviders(cfg, zap.NewNop())

	require.NotNil(t, primary)
	assert.Equal(t, "ollama", primary.Name())
	assert.Nil(t, secondary)
}

func TestNewProvider_WrapsBreaker(t *testing.T) {
	cfg := config.AIConfig{
		Breaker: config.BreakerConfig{FailureThreshold: 3},
	}

	client, err := NewProvider("ollama", cfg, zap.NewNop())
	require.NoError(t, err)

	breaker, ok := client.(*BreakerClient)
	require.True(t, ok)
	assert.Equal(t, "ollama", breaker.Name())
	assert.Equal(t, StateClosed, breaker.State())
}
