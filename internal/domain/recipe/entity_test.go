package recipe

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RecipeTestSuite provides a test suite for the Recipe aggregate
type RecipeTestSuite struct {
	suite.Suite
	creatorID uuid.UUID
}

func (suite *RecipeTestSuite) SetupTest() {
	suite.creatorID = uuid.New()
}

func (suite *RecipeTestSuite) TestNewRecipe() {
	suite.Run("ValidRecipe_ShouldCreateSuccessfully", func() {
		// Act
		r, err := NewRecipe("  Spaghetti Carbonara ", suite.creatorID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Spaghetti Carbonara", r.Title())
		assert.NotEqual(suite.T(), uuid.Nil, r.ID())
		assert.Equal(suite.T(), suite.creatorID, r.CreatorID())
		assert.False(suite.T(), r.IsAIGenerated())
		assert.False(suite.T(), r.CreatedAt().IsZero())

		events := r.Events()
		require.Len(suite.T(), events, 1)
		created, ok := events[0].(RecipeCreatedEvent)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), r.ID(), created.RecipeID)
		assert.Empty(suite.T(), r.Events(), "events should be cleared after read")
	})

	suite.Run("ShortTitle_ShouldReturnError", func() {
		_, err := NewRecipe("AB", suite.creatorID)
		assert.ErrorIs(suite.T(), err, ErrTitleTooShort)
	})

	suite.Run("LongTitle_ShouldReturnError", func() {
		_, err := NewRecipe(strings.Repeat("a", 201), suite.creatorID)
		assert.ErrorIs(suite.T(), err, ErrTitleTooLong)
	})

	suite.Run("MissingCreator_ShouldReturnError", func() {
		_, err := NewRecipe("Pancakes", uuid.Nil)
		assert.ErrorIs(suite.T(), err, ErrMissingCreator)
	})
}

func (suite *RecipeTestSuite) TestOwnership() {
	r, err := NewRecipe("Pancakes", suite.creatorID)
	require.NoError(suite.T(), err)

	assert.True(suite.T(), r.IsOwnedBy(suite.creatorID))
	assert.NoError(suite.T(), r.EnsureOwner(suite.creatorID))
	assert.ErrorIs(suite.T(), r.EnsureOwner(uuid.New()), ErrNotRecipeOwner)
}

func (suite *RecipeTestSuite) TestUpdates() {
	suite.Run("ValidDetails_ShouldApply", func() {
		// Arrange
		r, err := NewRecipe("Pancakes", suite.creatorID)
		require.NoError(suite.T(), err)
		r.Events()

		// Act
		require.NoError(suite.T(), r.Rename("Fluffy Pancakes"))
		require.NoError(suite.T(), r.SetIngredients([]Ingredient{{Name: "flour", Amount: "200", Unit: "g"}}))
		require.NoError(suite.T(), r.SetSteps([]string{"Mix", "Fry"}))
		require.NoError(suite.T(), r.Categorize("american", []string{"vegetarian"}, DifficultyEasy))
		require.NoError(suite.T(), r.SetTimes(10*time.Minute, 15*time.Minute))
		require.NoError(suite.T(), r.SetNutrition(&Nutrition{Calories: 350, Protein: 9}))

		// Assert
		assert.Equal(suite.T(), "Fluffy Pancakes", r.Title())
		assert.Len(suite.T(), r.Ingredients(), 1)
		assert.Equal(suite.T(), []string{"Mix", "Fry"}, r.Steps())
		assert.Equal(suite.T(), DifficultyEasy, r.Difficulty())
		assert.Equal(suite.T(), 25*time.Minute, r.TotalTime())
		assert.Equal(suite.T(), 350.0, r.Nutrition().Calories)

		events := r.Events()
		require.Len(suite.T(), events, 1)
		assert.Equal(suite.T(), "recipe.updated", events[0].EventName())
	})

	suite.Run("InvalidDetails_ShouldBeRejected", func() {
		r, err := NewRecipe("Pancakes", suite.creatorID)
		require.NoError(suite.T(), err)

		assert.ErrorIs(suite.T(), r.SetIngredients([]Ingredient{{Name: " "}}), ErrInvalidIngredient)
		assert.ErrorIs(suite.T(), r.SetSteps([]string{"Mix", ""}), ErrEmptyStep)
		assert.ErrorIs(suite.T(), r.Categorize("", nil, Difficulty("impossible")), ErrInvalidDifficulty)
		assert.ErrorIs(suite.T(), r.SetTimes(-time.Minute, 0), ErrNegativeTime)
		assert.ErrorIs(suite.T(), r.SetNutrition(&Nutrition{Fat: -1}), ErrNegativeNutrition)
		assert.ErrorIs(suite.T(), r.Describe(strings.Repeat("x", 2001)), ErrDescriptionTooLong)
	})
}

func (suite *RecipeTestSuite) TestSnapshotRoundTrip() {
	r, err := NewRecipe("Tomato Soup", suite.creatorID)
	require.NoError(suite.T(), err)
	r.MarkAIGenerated("# Tomato Soup\n* tomatoes")

	restored := Restore(r.Snapshot())

	assert.Equal(suite.T(), r.Snapshot(), restored.Snapshot())
	assert.True(suite.T(), restored.IsAIGenerated())
	assert.Empty(suite.T(), restored.Events())
}

func TestRecipeTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeTestSuite))
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" Medium ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyUnset, d)

	_, err = ParseDifficulty("chef")
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}
