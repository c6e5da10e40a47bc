package outbound

import (
	"context"

	"github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/internal/domain/shared"
)

// AIClient is a generative model provider
type AIClient interface {
	// Name identifies the provider in logs and metrics
	Name() string
	Generate(ctx context.Context, prompt ai.Prompt) (string, error)
	HealthCheck(ctx context.Context) error
}

// EventPublisher delivers domain events raised by aggregates
type EventPublisher interface {
	Publish(ctx context.Context, events ...shared.DomainEvent)
}
