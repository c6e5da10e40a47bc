package handlers

import (
	"net/http"

	"github.com/alchemorsel/recipe-assistant/internal/domain/ai"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/security"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"go.uber.org/zap"
)

// AIHandlers handles assistant requests
type AIHandlers struct {
	base
	assistant inbound.AssistantService
}

// NewAIHandlers creates a new AI handlers instance
func NewAIHandlers(assistant inbound.AssistantService, validator *security.Validator, logger *zap.Logger) *AIHandlers {
	return &AIHandlers{
		base:      base{validator: validator, logger: logger.Named("ai-api")},
		assistant: assistant,
	}
}

// GenerateRecipeRequest asks for a recipe from a list of ingredients
type GenerateRecipeRequest struct {
	Ingredients  []string               `json:"ingredients" validate:"required,min=1,max=50,dive,notblank,max=100"`
	Preferences  map[string]interface{} `json:"preferences,omitempty"`
	SystemPrompt string                 `json:"system_prompt,omitempty" validate:"max=4000,printable"`
}

// CookingAssistanceRequest is a free-form cooking question
type CookingAssistanceRequest struct {
	Question      string `json:"question" validate:"notblank,max=2000,printable"`
	RecipeContext string `json:"recipe_context,omitempty" validate:"max=10000,printable"`
}

// TranslateRequest translates recipe text
type TranslateRequest struct {
	Content        string `json:"content" validate:"notblank,max=10000,printable"`
	TargetLanguage string `json:"target_language" validate:"notblank,max=35"`
}

// GenerateRecipe handles POST /api/v1/ai/generate-recipe
func (h *AIHandlers) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req GenerateRecipeRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	reply, err := h.assistant.GenerateRecipe(r.Context(), ai.RecipeRequest{
		Ingredients:  req.Ingredients,
		Preferences:  req.Preferences,
		SystemPrompt: req.SystemPrompt,
	})
	h.reply(w, r, reply, err, "Recipe generated successfully")
}

// CookingAssistance handles POST /api/v1/ai/cooking-assistant
func (h *AIHandlers) CookingAssistance(w http.ResponseWriter, r *http.Request) {
	var req CookingAssistanceRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	reply, err := h.assistant.CookingAssistance(r.Context(), ai.AssistanceRequest{
		Question:      req.Question,
		RecipeContext: req.RecipeContext,
	})
	h.reply(w, r, reply, err, "Answer generated successfully")
}

// Translate handles POST /api/v1/ai/translate
func (h *AIHandlers) Translate(w http.ResponseWriter, r *http.Request) {
	var req TranslateRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	reply, err := h.assistant.Translate(r.Context(), ai.TranslationRequest{
		Content:        req.Content,
		TargetLanguage: req.TargetLanguage,
	})
	h.reply(w, r, reply, err, "Translation completed successfully")
}

func (h *AIHandlers) reply(w http.ResponseWriter, r *http.Request, reply *inbound.Reply, err error, message string) {
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if reply.Fallback {
		message = "AI provider unavailable, showing an offline answer"
	}
	h.ok(w, http.StatusOK, reply, message)
}
