package handlers

import (
	"net/http"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/security"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"go.uber.org/zap"
)

// RecipeHandlers handles recipe CRUD requests
type RecipeHandlers struct {
	base
	recipes inbound.RecipeService
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(recipes inbound.RecipeService, validator *security.Validator, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		base:    base{validator: validator, logger: logger.Named("recipe-api")},
		recipes: recipes,
	}
}

// UpdateRecipeRequest is a partial update; absent fields are left unchanged
type UpdateRecipeRequest struct {
	Title               *string              `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description         *string              `json:"description,omitempty" validate:"omitempty,max=2000"`
	Ingredients         *[]recipe.Ingredient `json:"ingredients,omitempty" validate:"omitempty,dive"`
	Steps               *[]string            `json:"steps,omitempty" validate:"omitempty,dive,required"`
	Cuisine             *string              `json:"cuisine,omitempty" validate:"omitempty,max=50"`
	DietaryRestrictions *[]string            `json:"dietary_restrictions,omitempty"`
	Difficulty          *string              `json:"difficulty,omitempty" validate:"omitempty,oneof=easy medium hard"`
	PrepTime            *int                 `json:"prep_time,omitempty" validate:"omitempty,gte=0"`
	CookTime            *int                 `json:"cook_time,omitempty" validate:"omitempty,gte=0"`
	Nutrition           *recipe.Nutrition    `json:"nutrition,omitempty"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, err := h.principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	recipes, err := h.recipes.ListRecipes(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, recipes, "Recipes retrieved successfully")
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := h.principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var fields inbound.RecipeFields
	if err := h.bind(r, &fields); err != nil {
		h.fail(w, r, err)
		return
	}

	created, err := h.recipes.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		CreatorID:    userID,
		RecipeFields: fields,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusCreated, created, "Recipe created successfully")
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := h.principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	found, err := h.recipes.GetRecipe(r.Context(), recipeID, userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, found, "Recipe retrieved successfully")
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *RecipeHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := h.principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req UpdateRecipeRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	updated, err := h.recipes.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:            recipeID,
		UserID:              userID,
		Title:               req.Title,
		Description:         req.Description,
		Ingredients:         req.Ingredients,
		Steps:               req.Steps,
		Cuisine:             req.Cuisine,
		DietaryRestrictions: req.DietaryRestrictions,
		Difficulty:          req.Difficulty,
		PrepTime:            req.PrepTime,
		CookTime:            req.CookTime,
		Nutrition:           req.Nutrition,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, updated, "Recipe updated successfully")
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *RecipeHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, err := h.principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	recipeID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.recipes.DeleteRecipe(r.Context(), recipeID, userID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, nil, "Recipe deleted successfully")
}
