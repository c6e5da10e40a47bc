package gorm

import (
	"context"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository stores recipes in the recipes table. Deletes are soft.
type RecipeRepository struct {
	db *gorm.DB
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// ownedBy limits a query to one author's recipes, newest first.
func ownedBy(creatorID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_id = ?", creatorID).Order("created_at DESC")
	}
}

func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Create(RecipeToModel(rec)).Error
}

// Update overwrites all mutable columns, including zero values.
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	model := RecipeToModel(rec)
	return exactlyOne(r.db.WithContext(ctx).
		Model(&RecipeModel{ID: model.ID}).
		Select("*").
		Omit("id", "created_at", "deleted_at").
		Updates(model), recipe.ErrRecipeNotFound)
}

func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return exactlyOne(r.db.WithContext(ctx).Delete(&RecipeModel{}, "id = ?", id), recipe.ErrRecipeNotFound)
}

func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel
	if err := notFoundAs(r.db.WithContext(ctx).Take(&model, "id = ?", id).Error, recipe.ErrRecipeNotFound); err != nil {
		return nil, err
	}
	return ModelToRecipe(&model), nil
}

func (r *RecipeRepository) FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*recipe.Recipe, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).Scopes(ownedBy(creatorID)).Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*recipe.Recipe, len(models))
	for i := range models {
		out[i] = ModelToRecipe(&models[i])
	}
	return out, nil
}
