// Package recipe contains the recipe aggregate and its business rules
package recipe

import (
	"strings"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	minTitleLength       = 3
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

// Recipe is the aggregate root for a user's recipe
type Recipe struct {
	id          uuid.UUID
	title       string
	description string
	creatorID   uuid.UUID

	ingredients         []Ingredient
	steps               []string
	cuisine             string
	dietaryRestrictions []string
	difficulty          Difficulty
	prepTime            time.Duration
	cookTime            time.Duration
	nutrition           *Nutrition

	// Raw assistant output, rendered on read
	aiGenerated bool
	aiText      string

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewRecipe creates a new Recipe with validation
func NewRecipe(title string, creatorID uuid.UUID) (*Recipe, error) {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if creatorID == uuid.Nil {
		return nil, ErrMissingCreator
	}

	now := time.Now().UTC()
	r := &Recipe{
		id:        uuid.New(),
		title:     title,
		creatorID: creatorID,
		createdAt: now,
		updatedAt: now,
	}

	r.addEvent(RecipeCreatedEvent{
		RecipeID:  r.id,
		CreatorID: creatorID,
		Title:     title,
		CreatedAt: now,
	})

	return r, nil
}

// Snapshot is the full persisted state of a recipe
type Snapshot struct {
	ID                  uuid.UUID
	Title               string
	Description         string
	CreatorID           uuid.UUID
	Ingredients         []Ingredient
	Steps               []string
	Cuisine             string
	DietaryRestrictions []string
	Difficulty          Difficulty
	PrepTime            time.Duration
	CookTime            time.Duration
	Nutrition           *Nutrition
	AIGenerated         bool
	AIText              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Restore rebuilds a recipe from storage without raising events
func Restore(s Snapshot) *Recipe {
	return &Recipe{
		id:                  s.ID,
		title:               s.Title,
		description:         s.Description,
		creatorID:           s.CreatorID,
		ingredients:         s.Ingredients,
		steps:               s.Steps,
		cuisine:             s.Cuisine,
		dietaryRestrictions: s.DietaryRestrictions,
		difficulty:          s.Difficulty,
		prepTime:            s.PrepTime,
		cookTime:            s.CookTime,
		nutrition:           s.Nutrition,
		aiGenerated:         s.AIGenerated,
		aiText:              s.AIText,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
	}
}

// Snapshot exports the recipe state for storage
func (r *Recipe) Snapshot() Snapshot {
	return Snapshot{
		ID:                  r.id,
		Title:               r.title,
		Description:         r.description,
		CreatorID:           r.creatorID,
		Ingredients:         r.ingredients,
		Steps:               r.steps,
		Cuisine:             r.cuisine,
		DietaryRestrictions: r.dietaryRestrictions,
		Difficulty:          r.difficulty,
		PrepTime:            r.prepTime,
		CookTime:            r.cookTime,
		Nutrition:           r.nutrition,
		AIGenerated:         r.aiGenerated,
		AIText:              r.aiText,
		CreatedAt:           r.createdAt,
		UpdatedAt:           r.updatedAt,
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID { return r.id }

// Title returns the recipe's title
func (r *Recipe) Title() string { return r.title }

// Description returns the recipe's description
func (r *Recipe) Description() string { return r.description }

// CreatorID returns the user who owns the recipe
func (r *Recipe) CreatorID() uuid.UUID { return r.creatorID }

// Ingredients returns the recipe's ingredients
func (r *Recipe) Ingredients() []Ingredient { return r.ingredients }

// Steps returns the preparation steps in order
func (r *Recipe) Steps() []string { return r.steps }

// Cuisine returns the recipe's cuisine
func (r *Recipe) Cuisine() string { return r.cuisine }

// DietaryRestrictions returns the diets the recipe satisfies
func (r *Recipe) DietaryRestrictions() []string { return r.dietaryRestrictions }

// Difficulty returns the difficulty level
func (r *Recipe) Difficulty() Difficulty { return r.difficulty }

// PrepTime returns the preparation time
func (r *Recipe) PrepTime() time.Duration { return r.prepTime }

// CookTime returns the cooking time
func (r *Recipe) CookTime() time.Duration { return r.cookTime }

// TotalTime returns preparation plus cooking time
func (r *Recipe) TotalTime() time.Duration { return r.prepTime + r.cookTime }

// Nutrition returns nutrition values, nil when unknown
func (r *Recipe) Nutrition() *Nutrition { return r.nutrition }

// IsAIGenerated reports whether the assistant produced the recipe
func (r *Recipe) IsAIGenerated() bool { return r.aiGenerated }

// AIText returns the assistant's raw answer
func (r *Recipe) AIText() string { return r.aiText }

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time { return r.updatedAt }

// IsOwnedBy reports whether userID created the recipe
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.creatorID == userID
}

// EnsureOwner returns ErrNotRecipeOwner unless userID created the recipe
func (r *Recipe) EnsureOwner(userID uuid.UUID) error {
	if !r.IsOwnedBy(userID) {
		return ErrNotRecipeOwner
	}
	return nil
}

// Rename updates the recipe title with validation
func (r *Recipe) Rename(title string) error {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}
	r.title = title
	r.touch()
	return nil
}

// Describe sets the free text description
func (r *Recipe) Describe(description string) error {
	if len(description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	r.description = description
	r.touch()
	return nil
}

// SetIngredients replaces the ingredient list
func (r *Recipe) SetIngredients(ingredients []Ingredient) error {
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	r.ingredients = append([]Ingredient(nil), ingredients...)
	r.touch()
	return nil
}

// SetSteps replaces the preparation steps
func (r *Recipe) SetSteps(steps []string) error {
	for _, step := range steps {
		if strings.TrimSpace(step) == "" {
			return ErrEmptyStep
		}
	}
	r.steps = append([]string(nil), steps...)
	r.touch()
	return nil
}

// Categorize sets cuisine, dietary restrictions and difficulty
func (r *Recipe) Categorize(cuisine string, restrictions []string, difficulty Difficulty) error {
	if _, err := ParseDifficulty(string(difficulty)); err != nil {
		return err
	}
	r.cuisine = strings.TrimSpace(cuisine)
	r.dietaryRestrictions = append([]string(nil), restrictions...)
	r.difficulty = difficulty
	r.touch()
	return nil
}

// SetTimes sets preparation and cooking time
func (r *Recipe) SetTimes(prep, cook time.Duration) error {
	if prep < 0 || cook < 0 {
		return ErrNegativeTime
	}
	r.prepTime = prep
	r.cookTime = cook
	r.touch()
	return nil
}

// SetNutrition sets nutrition values; nil clears them
func (r *Recipe) SetNutrition(n *Nutrition) error {
	if n != nil {
		if err := n.Validate(); err != nil {
			return err
		}
		copied := *n
		n = &copied
	}
	r.nutrition = n
	r.touch()
	return nil
}

// MarkAIGenerated records that the assistant produced the recipe
func (r *Recipe) MarkAIGenerated(text string) {
	r.aiGenerated = true
	r.aiText = text
	r.touch()
}

// MarkDeleted raises the deletion event
func (r *Recipe) MarkDeleted() {
	r.addEvent(RecipeDeletedEvent{RecipeID: r.id, DeletedAt: time.Now().UTC()})
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

func (r *Recipe) touch() {
	r.updatedAt = time.Now().UTC()
	// one change event per unit of work
	if len(r.events) == 0 {
		r.addEvent(RecipeUpdatedEvent{RecipeID: r.id, UpdatedAt: r.updatedAt})
	}
}

func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

func validateTitle(title string) error {
	n := len([]rune(title))
	if n < minTitleLength {
		return ErrTitleTooShort
	}
	if n > maxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
