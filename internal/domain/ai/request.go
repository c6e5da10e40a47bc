// Package ai describes the assistant's requests: how each one is validated,
// which prompt it sends to the model and which cache key it is stored under.
package ai

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrIngredientsRequired    = errors.New("at least one ingredient is required")
	ErrQuestionRequired       = errors.New("question is required")
	ErrContentRequired        = errors.New("content is required")
	ErrTargetLanguageRequired = errors.New("target language is required")
)

// Kind identifies the assistant operation
type Kind string

const (
	KindRecipe      Kind = "recipe"
	KindAssistance  Kind = "assistance"
	KindTranslation Kind = "translate"
)

// cacheKeyExcerpt is how many runes of free text go into a cache key
const cacheKeyExcerpt = 50

// Prompt is a provider independent model request
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Request is implemented by every assistant request
type Request interface {
	Kind() Kind
	Validate() error
	CacheKey() string
	Prompt() Prompt
}

// RecipeRequest asks the model for a recipe built from ingredients
type RecipeRequest struct {
	Ingredients  []string
	Preferences  map[string]interface{}
	SystemPrompt string
}

func (r RecipeRequest) Kind() Kind { return KindRecipe }

// Validate requires at least one non-blank ingredient
func (r RecipeRequest) Validate() error {
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(ing) != "" {
			return nil
		}
	}
	return ErrIngredientsRequired
}

// CacheKey is independent of ingredient order
func (r RecipeRequest) CacheKey() string {
	sorted := append([]string(nil), r.Ingredients...)
	sort.Strings(sorted)

	variant := "default"
	if r.SystemPrompt != "" {
		variant = "custom"
	}
	return fmt.Sprintf("%s:%s:%s:%s", KindRecipe, strings.Join(sorted, ","), preferencesJSON(r.Preferences), variant)
}

func (r RecipeRequest) Prompt() Prompt {
	system := r.SystemPrompt
	if system == "" {
		system = defaultRecipeSystemPrompt
	}
	return Prompt{
		System: system,
		User: fmt.Sprintf(
			"Create a recipe using these ingredients: %s.\nTake these preferences into account: %s\nFormat: title, ingredients with amounts, steps, nutrition facts.",
			strings.Join(r.Ingredients, ", "), preferencesJSON(r.Preferences),
		),
		Temperature: 0.7,
		MaxTokens:   1000,
	}
}

// AssistanceRequest is a cooking question, optionally about a recipe
type AssistanceRequest struct {
	Question      string
	RecipeContext string
}

func (r AssistanceRequest) Kind() Kind { return KindAssistance }

func (r AssistanceRequest) Validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return ErrQuestionRequired
	}
	return nil
}

func (r AssistanceRequest) CacheKey() string {
	return fmt.Sprintf("%s:%s:%s", KindAssistance, r.Question, excerpt(r.RecipeContext))
}

func (r AssistanceRequest) Prompt() Prompt {
	return Prompt{
		System:      defaultAssistantSystemPrompt,
		User:        fmt.Sprintf("In the context of this recipe: %s\nMy question: %s", r.RecipeContext, r.Question),
		Temperature: 0.3,
		MaxTokens:   500,
	}
}

// TranslationRequest translates recipe text into another language
type TranslationRequest struct {
	Content        string
	TargetLanguage string
}

func (r TranslationRequest) Kind() Kind { return KindTranslation }

func (r TranslationRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return ErrContentRequired
	}
	if strings.TrimSpace(r.TargetLanguage) == "" {
		return ErrTargetLanguageRequired
	}
	return nil
}

func (r TranslationRequest) CacheKey() string {
	return fmt.Sprintf("%s:%s:%s", KindTranslation, excerpt(r.Content), r.TargetLanguage)
}

func (r TranslationRequest) Prompt() Prompt {
	return Prompt{
		System:      "You are a precise translator. Keep markdown formatting intact.",
		User:        fmt.Sprintf("Translate the following text into %s: %s", r.TargetLanguage, r.Content),
		Temperature: 0.1,
		MaxTokens:   1000,
	}
}

const defaultRecipeSystemPrompt = "You are a creative chef. Answer in markdown using # headers, " +
	"bulleted ingredient lists, numbered steps and **bold** labels."

const defaultAssistantSystemPrompt = "You are a helpful cooking assistant. Keep answers short and practical."

func preferencesJSON(p map[string]interface{}) string {
	// map keys marshal in sorted order so equal preferences share a key
	data, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// excerpt keeps short text as is. Longer text is cut to cacheKeyExcerpt runes
// and followed by "#" and a digest of the whole text, so two texts that only
// differ after the cut still get distinct keys.
func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= cacheKeyExcerpt {
		return s
	}
	sum := sha256.Sum256([]byte(s))
	return string(runes[:cacheKeyExcerpt]) + "#" + hex.EncodeToString(sum[:8])
}
