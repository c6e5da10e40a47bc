package gorm

import (
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
)

// UserToModel converts a user entity to its row
func UserToModel(u *user.User) *UserModel {
	s := u.Snapshot()
	return &UserModel{
		ID:                  s.ID,
		Email:               s.Email,
		Name:                s.Name,
		PasswordHash:        s.PasswordHash,
		IsActive:            s.IsActive,
		DietaryRestrictions: StringSlice(s.Preferences.DietaryRestrictions),
		PreferredCuisines:   StringSlice(s.Preferences.PreferredCuisines),
		Language:            s.Preferences.Language,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		LastLoginAt:         s.LastLoginAt,
	}
}

// ModelToUser rebuilds a user entity from its row
func ModelToUser(m *UserModel) *user.User {
	return user.Restore(user.Snapshot{
		ID:           m.ID,
		Email:        m.Email,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		IsActive:     m.IsActive,
		Preferences: user.Preferences{
			DietaryRestrictions: []string(m.DietaryRestrictions),
			PreferredCuisines:   []string(m.PreferredCuisines),
			Language:            m.Language,
		},
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		LastLoginAt: m.LastLoginAt,
	})
}

// RecipeToModel converts a recipe entity to its row
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	s := r.Snapshot()
	return &RecipeModel{
		ID:                  s.ID,
		Title:               s.Title,
		Description:         s.Description,
		CreatorID:           s.CreatorID,
		Ingredients:         s.Ingredients,
		Steps:               StringSlice(s.Steps),
		Nutrition:           s.Nutrition,
		Cuisine:             s.Cuisine,
		DietaryRestrictions: StringSlice(s.DietaryRestrictions),
		Difficulty:          string(s.Difficulty),
		PrepTimeMinutes:     int(s.PrepTime / time.Minute),
		CookTimeMinutes:     int(s.CookTime / time.Minute),
		IsAIGenerated:       s.AIGenerated,
		AIText:              s.AIText,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// ModelToRecipe rebuilds a recipe entity from its row
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Restore(recipe.Snapshot{
		ID:                  m.ID,
		Title:               m.Title,
		Description:         m.Description,
		CreatorID:           m.CreatorID,
		Ingredients:         m.Ingredients,
		Steps:               []string(m.Steps),
		Cuisine:             m.Cuisine,
		DietaryRestrictions: []string(m.DietaryRestrictions),
		Difficulty:          recipe.Difficulty(m.Difficulty),
		PrepTime:            time.Duration(m.PrepTimeMinutes) * time.Minute,
		CookTime:            time.Duration(m.CookTimeMinutes) * time.Minute,
		Nutrition:           m.Nutrition,
		AIGenerated:         m.IsAIGenerated,
		AIText:              m.AIText,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	})
}
