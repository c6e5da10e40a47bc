// Package recipe implements the recipe use cases
package recipe

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/alchemorsel/recipe-assistant/pkg/markup"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecipeService implements inbound.RecipeService
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	events     outbound.EventPublisher
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	events outbound.EventPublisher,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		events:     events,
		logger:     logger.Named("recipe-service"),
	}
}

var _ inbound.RecipeService = (*RecipeService)(nil)

// CreateRecipe creates a recipe owned by cmd.CreatorID
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating recipe",
		zap.String("title", cmd.Title),
		zap.String("creator_id", cmd.CreatorID.String()),
		zap.Bool("ai_generated", cmd.IsAIGenerated),
	)

	entity, err := recipe.NewRecipe(cmd.Title, cmd.CreatorID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := applyFields(entity, cmd.RecipeFields); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}
	s.events.Publish(ctx, entity.Events()...)

	s.logger.Info("Recipe created", zap.String("recipe_id", entity.ID().String()))
	return ToDTO(entity), nil
}

// UpdateRecipe applies a partial update after the ownership check
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.loadOwned(ctx, cmd.RecipeID, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if err := applyUpdate(entity, cmd); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, s.mapRepoError(err, cmd.RecipeID, "update recipe")
	}
	s.events.Publish(ctx, entity.Events()...)

	s.logger.Info("Recipe updated", zap.String("recipe_id", cmd.RecipeID.String()))
	return ToDTO(entity), nil
}

// DeleteRecipe removes a recipe after the ownership check
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return err
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return s.mapRepoError(err, recipeID, "delete recipe")
	}
	entity.MarkDeleted()
	s.events.Publish(ctx, entity.Events()...)

	s.logger.Info("Recipe deleted", zap.String("recipe_id", recipeID.String()))
	return nil
}

// GetRecipe returns one of the user's recipes
func (s *RecipeService) GetRecipe(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.loadOwned(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	return ToDTO(entity), nil
}

// ListRecipes returns the user's recipes, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]*inbound.RecipeDTO, error) {
	entities, err := s.recipeRepo.FindByCreator(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipes", err)
	}

	dtos := make([]*inbound.RecipeDTO, 0, len(entities))
	for _, e := range entities {
		dtos = append(dtos, ToDTO(e))
	}
	return dtos, nil
}

func (s *RecipeService) loadOwned(ctx context.Context, recipeID, userID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, s.mapRepoError(err, recipeID, "find recipe")
	}

	if err := entity.EnsureOwner(userID); err != nil {
		s.logger.Warn("Recipe access denied",
			zap.String("recipe_id", recipeID.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, errors.NewNotRecipeOwnerError(recipeID.String()).WithCause(err)
	}
	return entity, nil
}

func (s *RecipeService) mapRepoError(err error, recipeID uuid.UUID, op string) error {
	if stderrors.Is(err, recipe.ErrRecipeNotFound) {
		return errors.NewRecipeNotFoundError(recipeID.String()).WithCause(err)
	}
	return errors.NewDatabaseError(op, err)
}

func applyFields(r *recipe.Recipe, f inbound.RecipeFields) error {
	difficulty, err := recipe.ParseDifficulty(f.Difficulty)
	if err != nil {
		return err
	}
	steps := []func() error{
		func() error { return r.Describe(f.Description) },
		func() error { return r.SetIngredients(f.Ingredients) },
		func() error { return r.SetSteps(f.Steps) },
		func() error { return r.Categorize(f.Cuisine, f.DietaryRestrictions, difficulty) },
		func() error { return r.SetTimes(minutes(f.PrepTime), minutes(f.CookTime)) },
		func() error { return r.SetNutrition(f.Nutrition) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	if f.IsAIGenerated {
		r.MarkAIGenerated(f.AIText)
	}
	return nil
}

func applyUpdate(r *recipe.Recipe, cmd inbound.UpdateRecipeCommand) error {
	if cmd.Title != nil {
		if err := r.Rename(*cmd.Title); err != nil {
			return err
		}
	}
	if cmd.Description != nil {
		if err := r.Describe(*cmd.Description); err != nil {
			return err
		}
	}
	if cmd.Ingredients != nil {
		if err := r.SetIngredients(*cmd.Ingredients); err != nil {
			return err
		}
	}
	if cmd.Steps != nil {
		if err := r.SetSteps(*cmd.Steps); err != nil {
			return err
		}
	}
	if cmd.Cuisine != nil || cmd.DietaryRestrictions != nil || cmd.Difficulty != nil {
		cuisine, restrictions, difficulty := r.Cuisine(), r.DietaryRestrictions(), r.Difficulty()
		if cmd.Cuisine != nil {
			cuisine = *cmd.Cuisine
		}
		if cmd.DietaryRestrictions != nil {
			restrictions = *cmd.DietaryRestrictions
		}
		if cmd.Difficulty != nil {
			d, err := recipe.ParseDifficulty(*cmd.Difficulty)
			if err != nil {
				return err
			}
			difficulty = d
		}
		if err := r.Categorize(cuisine, restrictions, difficulty); err != nil {
			return err
		}
	}
	if cmd.PrepTime != nil || cmd.CookTime != nil {
		prep, cook := r.PrepTime(), r.CookTime()
		if cmd.PrepTime != nil {
			prep = minutes(*cmd.PrepTime)
		}
		if cmd.CookTime != nil {
			cook = minutes(*cmd.CookTime)
		}
		if err := r.SetTimes(prep, cook); err != nil {
			return err
		}
	}
	if cmd.Nutrition != nil {
		if err := r.SetNutrition(cmd.Nutrition); err != nil {
			return err
		}
	}
	return nil
}

// ToDTO converts the aggregate to its API view
func ToDTO(r *recipe.Recipe) *inbound.RecipeDTO {
	dto := &inbound.RecipeDTO{
		ID:                  r.ID(),
		Title:               r.Title(),
		Description:         r.Description(),
		CreatorID:           r.CreatorID(),
		Ingredients:         nonNilIngredients(r.Ingredients()),
		Steps:               nonNilStrings(r.Steps()),
		Cuisine:             r.Cuisine(),
		DietaryRestrictions: nonNilStrings(r.DietaryRestrictions()),
		Difficulty:          string(r.Difficulty()),
		PrepTime:            int(r.PrepTime() / time.Minute),
		CookTime:            int(r.CookTime() / time.Minute),
		Nutrition:           r.Nutrition(),
		IsAIGenerated:       r.IsAIGenerated(),
		AIText:              r.AIText(),
		CreatedAt:           r.CreatedAt(),
		UpdatedAt:           r.UpdatedAt(),
	}
	if r.IsAIGenerated() {
		dto.AIHTML = markup.Render(r.AIText())
	}
	return dto
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilIngredients(s []recipe.Ingredient) []recipe.Ingredient {
	if s == nil {
		return []recipe.Ingredient{}
	}
	return s
}
