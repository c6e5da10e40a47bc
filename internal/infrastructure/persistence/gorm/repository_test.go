package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
	"github.com/alchemorsel/recipe-assistant/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RepositoryTestSuite runs the repositories against in-memory SQLite
type RepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	recipes  *RecipeRepository
	users    *UserRepository
	rFactory *testutils.RecipeFactory
	uFactory *testutils.UserFactory
	ctx      context.Context
}

func (suite *RepositoryTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.Require().NoError(db.AutoMigrate(&UserModel{}, &RecipeModel{}))

	suite.db = db
	suite.recipes = NewRecipeRepository(db)
	suite.users = NewUserRepository(db)
	suite.rFactory = testutils.NewRecipeFactory(7)
	suite.uFactory = testutils.NewUserFactory(7)
	suite.ctx = context.Background()
}

func (suite *RepositoryTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *RepositoryTestSuite) TestRecipeRoundTrip() {
	// Arrange
	creator := uuid.New()
	original := suite.rFactory.Create(creator)
	suite.Require().NoError(original.SetNutrition(&recipe.Nutrition{Calories: 420, Protein: 12}))
	suite.Require().NoError(original.SetTimes(10*time.Minute, 25*time.Minute))

	// Act
	suite.Require().NoError(suite.recipes.Create(suite.ctx, original))
	loaded, err := suite.recipes.FindByID(suite.ctx, original.ID())

	// Assert
	suite.Require().NoError(err)
	suite.Equal(original.Title(), loaded.Title())
	suite.Equal(original.Ingredients(), loaded.Ingredients())
	suite.Equal(original.Steps(), loaded.Steps())
	suite.Equal(creator, loaded.CreatorID())
	suite.Equal(35*time.Minute, loaded.TotalTime())
	suite.Require().NotNil(loaded.Nutrition())
	suite.Equal(420.0, loaded.Nutrition().Calories)
	suite.Empty(loaded.Events())
}

func (suite *RepositoryTestSuite) TestRecipeAIText() {
	original := suite.rFactory.CreateAIGenerated(uuid.New())
	suite.Require().NoError(suite.recipes.Create(suite.ctx, original))

	loaded, err := suite.recipes.FindByID(suite.ctx, original.ID())

	suite.Require().NoError(err)
	suite.True(loaded.IsAIGenerated())
	suite.Equal(original.AIText(), loaded.AIText())
}

func (suite *RepositoryTestSuite) TestRecipeUpdateAndDelete() {
	suite.Run("Update_ShouldPersistChanges", func() {
		rec := suite.rFactory.Create(uuid.New())
		suite.Require().NoError(suite.recipes.Create(suite.ctx, rec))
		suite.Require().NoError(rec.Rename("Renamed Stew"))

		suite.Require().NoError(suite.recipes.Update(suite.ctx, rec))

		loaded, err := suite.recipes.FindByID(suite.ctx, rec.ID())
		suite.Require().NoError(err)
		suite.Equal("Renamed Stew", loaded.Title())
	})

	suite.Run("UpdateMissing_ShouldBeNotFound", func() {
		rec := suite.rFactory.Create(uuid.New())

		err := suite.recipes.Update(suite.ctx, rec)

		suite.ErrorIs(err, recipe.ErrRecipeNotFound)
	})

	suite.Run("Delete_ShouldHideRecipe", func() {
		rec := suite.rFactory.Create(uuid.New())
		suite.Require().NoError(suite.recipes.Create(suite.ctx, rec))

		suite.Require().NoError(suite.recipes.Delete(suite.ctx, rec.ID()))

		_, err := suite.recipes.FindByID(suite.ctx, rec.ID())
		suite.ErrorIs(err, recipe.ErrRecipeNotFound)
		suite.ErrorIs(suite.recipes.Delete(suite.ctx, rec.ID()), recipe.ErrRecipeNotFound)
	})
}

func (suite *RepositoryTestSuite) TestFindByCreator() {
	owner, other := uuid.New(), uuid.New()
	first := suite.rFactory.Create(owner)
	suite.Require().NoError(suite.recipes.Create(suite.ctx, first))
	time.Sleep(5 * time.Millisecond)
	second := suite.rFactory.Create(owner)
	suite.Require().NoError(suite.recipes.Create(suite.ctx, second))
	suite.Require().NoError(suite.recipes.Create(suite.ctx, suite.rFactory.Create(other)))

	found, err := suite.recipes.FindByCreator(suite.ctx, owner)

	suite.Require().NoError(err)
	suite.Require().Len(found, 2)
	suite.Equal(second.ID(), found[0].ID())
	suite.Equal(first.ID(), found[1].ID())
}

func (suite *RepositoryTestSuite) TestUsers() {
	suite.Run("CreateAndFind_ShouldRoundTrip", func() {
		u := suite.uFactory.Create()
		u.UpdatePreferences(user.Preferences{DietaryRestrictions: []string{"vegan"}, Language: "fr"})
		suite.Require().NoError(suite.users.Create(suite.ctx, u))

		byEmail, err := suite.users.FindByEmail(suite.ctx, u.Email())
		suite.Require().NoError(err)
		byID, err := suite.users.FindByID(suite.ctx, u.ID())
		suite.Require().NoError(err)

		suite.Equal(u.ID(), byEmail.ID())
		suite.Equal([]string{"vegan"}, byID.Preferences().DietaryRestrictions)
		suite.Equal("fr", byID.Preferences().Language)
		suite.NoError(byID.CheckPassword(testutils.TestPassword))
	})

	suite.Run("DuplicateEmail_ShouldBeTaken", func() {
		u := suite.uFactory.Create()
		suite.Require().NoError(suite.users.Create(suite.ctx, u))
		clone, err := user.NewUser(u.Email(), "Someone Else", testutils.TestPassword)
		suite.Require().NoError(err)

		err = suite.users.Create(suite.ctx, clone)

		suite.ErrorIs(err, user.ErrEmailTaken)
	})

	suite.Run("ExistsByEmail_ShouldIgnoreCase", func() {
		u := suite.uFactory.Create()
		suite.Require().NoError(suite.users.Create(suite.ctx, u))

		exists, err := suite.users.ExistsByEmail(suite.ctx, "  "+u.Email())

		suite.Require().NoError(err)
		suite.True(exists)
	})

	suite.Run("Missing_ShouldBeNotFound", func() {
		_, err := suite.users.FindByID(suite.ctx, uuid.New())
		suite.ErrorIs(err, user.ErrUserNotFound)
	})

	suite.Run("UpdateLogin_ShouldPersist", func() {
		u := suite.uFactory.Create()
		suite.Require().NoError(suite.users.Create(suite.ctx, u))
		u.RecordLogin()

		suite.Require().NoError(suite.users.Update(suite.ctx, u))

		loaded, err := suite.users.FindByID(suite.ctx, u.ID())
		suite.Require().NoError(err)
		suite.NotNil(loaded.LastLoginAt())
	})
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
