// Package testutils provides test data factories and mocks shared by tests
package testutils

import (
	"strings"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// TestPassword is the password every factory user is created with
const TestPassword = "s3cret-password"

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{faker: gofakeit.New(seed)}
}

// Title returns a plausible recipe title
func (f *RecipeFactory) Title() string {
	return f.faker.Adjective() + " " + f.faker.Noun() + " stew"
}

// Ingredients returns n random ingredients
func (f *RecipeFactory) Ingredients(n int) []recipe.Ingredient {
	units := []string{"g", "ml", "tbsp", "tsp", "cup", "piece"}
	out := make([]recipe.Ingredient, n)
	for i := range out {
		out[i] = recipe.Ingredient{
			Name:   f.faker.Vegetable(),
			Amount: f.faker.DigitN(2),
			Unit:   units[f.faker.Number(0, len(units)-1)],
		}
	}
	return out
}

// Steps returns n preparation steps
func (f *RecipeFactory) Steps(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = f.faker.Sentence(6)
	}
	return out
}

// Create builds a fully populated recipe owned by creatorID
func (f *RecipeFactory) Create(creatorID uuid.UUID) *recipe.Recipe {
	r, err := recipe.NewRecipe(f.Title(), creatorID)
	if err != nil {
		panic(err)
	}
	must(r.Describe(f.faker.Sentence(12)))
	must(r.SetIngredients(f.Ingredients(3)))
	must(r.SetSteps(f.Steps(3)))
	must(r.Categorize("italian", []string{"vegetarian"}, recipe.DifficultyMedium))
	must(r.SetTimes(15*time.Minute, 30*time.Minute))
	must(r.SetNutrition(&recipe.Nutrition{Calories: 420, Protein: 12, Carbs: 50, Fat: 14}))
	r.Events()
	return r
}

// CreateAIGenerated builds a recipe carrying assistant markdown
func (f *RecipeFactory) CreateAIGenerated(creatorID uuid.UUID) *recipe.Recipe {
	r := f.Create(creatorID)
	r.MarkAIGenerated("# " + r.Title() + "\n\n* **" + r.Ingredients()[0].Name + "**\n1. " + r.Steps()[0])
	r.Events()
	return r
}

// UserFactory provides methods to create test users
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a new user factory with seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// Email returns a unique looking address
func (f *UserFactory) Email() string {
	return strings.ToLower(f.faker.Username()) + "." + f.faker.DigitN(6) + "@example.com"
}

// Create builds an active user with TestPassword
func (f *UserFactory) Create() *user.User {
	u, err := user.NewUser(f.Email(), f.faker.FirstName()+" "+f.faker.LastName(), TestPassword)
	if err != nil {
		panic(err)
	}
	return u
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
