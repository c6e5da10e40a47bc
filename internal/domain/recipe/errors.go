package recipe

import "errors"

var (
	ErrTitleTooShort      = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong       = errors.New("recipe title must not exceed 200 characters")
	ErrDescriptionTooLong = errors.New("recipe description must not exceed 2000 characters")
	ErrInvalidIngredient  = errors.New("ingredient name is required")
	ErrEmptyStep          = errors.New("recipe steps must not be empty")
	ErrInvalidDifficulty  = errors.New("difficulty must be easy, medium or hard")
	ErrNegativeTime       = errors.New("preparation and cooking time cannot be negative")
	ErrNegativeNutrition  = errors.New("nutrition values cannot be negative")
	ErrMissingCreator     = errors.New("recipe must have a creator")

	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("only recipe owner can perform this action")
)
