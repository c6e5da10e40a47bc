package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecipeRequest(t *testing.T) {
	t.Run("CacheKey_ShouldIgnoreIngredientOrder", func(t *testing.T) {
		a := RecipeRequest{Ingredients: []string{"tomato", "basil"}, Preferences: map[string]interface{}{"diet": "vegan"}}
		b := RecipeRequest{Ingredients: []string{"basil", "tomato"}, Preferences: map[string]interface{}{"diet": "vegan"}}

		assert.Equal(t, `recipe:basil,tomato:{"diet":"vegan"}:default`, a.CacheKey())
		assert.Equal(t, a.CacheKey(), b.CacheKey())
		assert.Equal(t, []string{"tomato", "basil"}, a.Ingredients, "caller slice must not be reordered")
	})

	t.Run("CustomSystemPrompt_ShouldChangeKey", func(t *testing.T) {
		req := RecipeRequest{Ingredients: []string{"egg"}, SystemPrompt: "be brief"}

		assert.Equal(t, "recipe:egg:null:custom", req.CacheKey())
		assert.Equal(t, "be brief", req.Prompt().System)
	})

	t.Run("Prompt_ShouldUseRecipeSettings", func(t *testing.T) {
		p := RecipeRequest{Ingredients: []string{"egg", "milk"}}.Prompt()

		assert.Equal(t, 0.7, p.Temperature)
		assert.Equal(t, 1000, p.MaxTokens)
		assert.Contains(t, p.User, "egg, milk")
	})

	t.Run("Validate_ShouldRequireIngredients", func(t *testing.T) {
		assert.ErrorIs(t, RecipeRequest{}.Validate(), ErrIngredientsRequired)
		assert.ErrorIs(t, RecipeRequest{Ingredients: []string{" "}}.Validate(), ErrIngredientsRequired)
		assert.NoError(t, RecipeRequest{Ingredients: []string{"rice"}}.Validate())
	})
}

func TestAssistanceRequest(t *testing.T) {
	context := strings.Repeat("ä", 60)
	req := AssistanceRequest{Question: "How long?", RecipeContext: context}

	assert.True(t, strings.HasPrefix(req.CacheKey(), "assistance:How long?:"+strings.Repeat("ä", 50)+"#"))
	other := AssistanceRequest{Question: "How long?", RecipeContext: strings.Repeat("ä", 59) + "ö"}
	assert.NotEqual(t, req.CacheKey(), other.CacheKey())
	assert.Equal(t, 0.3, req.Prompt().Temperature)
	assert.Equal(t, 500, req.Prompt().MaxTokens)
	assert.ErrorIs(t, AssistanceRequest{}.Validate(), ErrQuestionRequired)
	assert.Equal(t, "assistance:q:", AssistanceRequest{Question: "q"}.CacheKey())
}

func TestTranslationRequest(t *testing.T) {
	req := TranslationRequest{Content: "Boil the pasta", TargetLanguage: "German"}

	assert.NoError(t, req.Validate())
	assert.Equal(t, "translate:Boil the pasta:German", req.CacheKey())

	t.Run("LongContent_ShouldKeyOnWholeText", func(t *testing.T) {
		opening := strings.Repeat("Stir the sauce. ", 4)
		first := TranslationRequest{Content: opening + "Add salt.", TargetLanguage: "German"}
		second := TranslationRequest{Content: opening + "Add sugar.", TargetLanguage: "German"}

		assert.NotEqual(t, first.CacheKey(), second.CacheKey())
		assert.Equal(t, first.CacheKey(), TranslationRequest{Content: opening + "Add salt.", TargetLanguage: "German"}.CacheKey())
		assert.True(t, strings.HasPrefix(first.CacheKey(), "translate:"+opening[:50]+"#"))
		assert.True(t, strings.HasSuffix(first.CacheKey(), ":German"))
	})
	assert.Equal(t, 0.1, req.Prompt().Temperature)
	assert.ErrorIs(t, TranslationRequest{TargetLanguage: "de"}.Validate(), ErrContentRequired)
	assert.ErrorIs(t, TranslationRequest{Content: "x"}.Validate(), ErrTargetLanguageRequired)
}

func TestFallbackAnswer(t *testing.T) {
	tests := []struct {
		question string
		contains string
	}{
		{"What can I use INSTEAD OF butter?", "olive oil"},
		{"Can this be vegan?", "tofu"},
		{"Is it safe for celiac guests?", "gluten-free"},
		{"How do I freeze leftovers?", "airtight"},
		{"How do I double this?", "ratio"},
		{"What wine pairs with it?", "offline mode"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			assert.Contains(t, FallbackAnswer(tt.question), tt.contains)
		})
	}
}
