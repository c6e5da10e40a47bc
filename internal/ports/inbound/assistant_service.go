package inbound

import (
	"context"

	"github.com/alchemorsel/recipe-assistant/internal/domain/ai"
)

// AssistantService defines the AI assistant use cases. Every reply carries
// the model text and its rendered HTML.
type AssistantService interface {
	GenerateRecipe(ctx context.Context, req ai.RecipeRequest) (*Reply, error)
	CookingAssistance(ctx context.Context, req ai.AssistanceRequest) (*Reply, error)
	Translate(ctx context.Context, req ai.TranslationRequest) (*Reply, error)
	// Invalidate drops cached replies whose key starts with prefix
	Invalidate(ctx context.Context, prefix string) (int, error)
}

// Reply is an assistant answer
type Reply struct {
	Kind     ai.Kind `json:"kind"`
	Text     string  `json:"text"`
	HTML     string  `json:"html"`
	Provider string  `json:"provider,omitempty"`
	Cached   bool    `json:"cached"`
	Fallback bool    `json:"fallback,omitempty"`
}
