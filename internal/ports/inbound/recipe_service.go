// Package inbound defines the use cases the application exposes to
// HTTP handlers and the CLI
package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/google/uuid"
)

// RecipeService defines the recipe use cases. Every operation acts on
// behalf of an authenticated user and only touches that user's recipes.
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error
	GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, userID uuid.UUID) ([]*RecipeDTO, error)
}

// RecipeFields are the editable recipe attributes
type RecipeFields struct {
	Title               string              `json:"title" validate:"required,min=3,max=200"`
	Description         string              `json:"description,omitempty" validate:"max=2000"`
	Ingredients         []recipe.Ingredient `json:"ingredients,omitempty" validate:"dive"`
	Steps               []string            `json:"steps,omitempty" validate:"dive,required"`
	Cuisine             string              `json:"cuisine,omitempty" validate:"max=50"`
	DietaryRestrictions []string            `json:"dietary_restrictions,omitempty"`
	Difficulty          string              `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	PrepTime            int                 `json:"prep_time,omitempty" validate:"gte=0"`
	CookTime            int                 `json:"cook_time,omitempty" validate:"gte=0"`
	Nutrition           *recipe.Nutrition   `json:"nutrition,omitempty"`
	IsAIGenerated       bool                `json:"is_ai_generated,omitempty"`
	AIText              string              `json:"ai_text,omitempty"`
}

// CreateRecipeCommand contains data for creating a recipe
type CreateRecipeCommand struct {
	CreatorID uuid.UUID
	RecipeFields
}

// UpdateRecipeCommand replaces only the fields that are set
type UpdateRecipeCommand struct {
	RecipeID            uuid.UUID
	UserID              uuid.UUID
	Title               *string
	Description         *string
	Ingredients         *[]recipe.Ingredient
	Steps               *[]string
	Cuisine             *string
	DietaryRestrictions *[]string
	Difficulty          *string
	PrepTime            *int
	CookTime            *int
	Nutrition           *recipe.Nutrition
}

// RecipeDTO is the API view of a recipe. AIHTML holds the rendered
// assistant text for AI generated recipes.
type RecipeDTO struct {
	ID                  uuid.UUID           `json:"id"`
	Title               string              `json:"title"`
	Description         string              `json:"description,omitempty"`
	CreatorID           uuid.UUID           `json:"creator_id"`
	Ingredients         []recipe.Ingredient `json:"ingredients"`
	Steps               []string            `json:"steps"`
	Cuisine             string              `json:"cuisine,omitempty"`
	DietaryRestrictions []string            `json:"dietary_restrictions"`
	Difficulty          string              `json:"difficulty,omitempty"`
	PrepTime            int                 `json:"prep_time"`
	CookTime            int                 `json:"cook_time"`
	Nutrition           *recipe.Nutrition   `json:"nutrition,omitempty"`
	IsAIGenerated       bool                `json:"is_ai_generated"`
	AIText              string              `json:"ai_text,omitempty"`
	AIHTML              string              `json:"ai_html,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}
