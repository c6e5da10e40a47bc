package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/alchemorsel/recipe-assistant/test/testutils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// UserServiceTestSuite tests the account use cases
type UserServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockUserRepository
	tokens  *testutils.MockTokenIssuer
	service *UserService
	factory *testutils.UserFactory
	ctx     context.Context
	pair    *outbound.TokenPair
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.repo = new(testutils.MockUserRepository)
	suite.tokens = new(testutils.MockTokenIssuer)
	suite.service = NewUserService(suite.repo, suite.tokens, zap.NewNop())
	suite.factory = testutils.NewUserFactory(42)
	suite.ctx = context.Background()
	suite.pair = &outbound.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
}

func (suite *UserServiceTestSuite) TestRegister() {
	suite.Run("NewEmail_ShouldCreateUserAndIssueTokens", func() {
		suite.SetupTest()
		// Arrange
		cmd := inbound.RegisterCommand{Email: "  Cook@Example.com ", Name: "Julia", Password: testutils.TestPassword}
		suite.repo.On("ExistsByEmail", suite.ctx, "cook@example.com").Return(false, nil)
		suite.repo.On("Create", suite.ctx, mock.AnythingOfType("*user.User")).Return(nil)
		suite.tokens.On("IssueTokens", suite.ctx, mock.Anything, "cook@example.com").Return(suite.pair, nil)

		// Act
		result, err := suite.service.Register(suite.ctx, cmd)

		// Assert
		suite.Require().NoError(err)
		suite.Equal("cook@example.com", result.User.Email)
		suite.Equal("Julia", result.User.Name)
		suite.Equal("Bearer", result.TokenType)
		suite.Equal("access", result.AccessToken)
		suite.NotNil(result.User.DietaryRestrictions)
		suite.repo.AssertExpectations(suite.T())
	})

	suite.Run("TakenEmail_ShouldConflict", func() {
		suite.SetupTest()
		suite.repo.On("ExistsByEmail", suite.ctx, "taken@example.com").Return(true, nil)

		_, err := suite.service.Register(suite.ctx, inbound.RegisterCommand{
			Email: "taken@example.com", Name: "Julia", Password: testutils.TestPassword,
		})

		suite.True(apperrors.Is(err, apperrors.CodeEmailAlreadyExists))
		suite.repo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
	})

	suite.Run("ShortPassword_ShouldFailValidation", func() {
		suite.SetupTest()
		suite.repo.On("ExistsByEmail", suite.ctx, "new@example.com").Return(false, nil)

		_, err := suite.service.Register(suite.ctx, inbound.RegisterCommand{
			Email: "new@example.com", Name: "Julia", Password: "short",
		})

		suite.True(apperrors.Is(err, apperrors.CodeValidationFailed))
	})
}

func (suite *UserServiceTestSuite) TestLogin() {
	suite.Run("CorrectPassword_ShouldRecordLogin", func() {
		suite.SetupTest()
		// Arrange
		existing := suite.factory.Create()
		suite.repo.On("FindByEmail", suite.ctx, existing.Email()).Return(existing, nil)
		suite.repo.On("Update", suite.ctx, existing).Return(nil)
		suite.tokens.On("IssueTokens", suite.ctx, existing.ID(), existing.Email()).Return(suite.pair, nil)

		// Act
		result, err := suite.service.Login(suite.ctx, inbound.LoginCommand{Email: existing.Email(), Password: testutils.TestPassword})

		// Assert
		suite.Require().NoError(err)
		suite.Equal(existing.ID(), result.User.ID)
		suite.NotNil(result.User.LastLoginAt)
	})

	suite.Run("WrongPassword_ShouldBeInvalidCredentials", func() {
		suite.SetupTest()
		existing := suite.factory.Create()
		suite.repo.On("FindByEmail", suite.ctx, existing.Email()).Return(existing, nil)

		_, err := suite.service.Login(suite.ctx, inbound.LoginCommand{Email: existing.Email(), Password: "wrong-password"})

		suite.True(apperrors.Is(err, apperrors.CodeInvalidCredentials))
		suite.tokens.AssertNotCalled(suite.T(), "IssueTokens", mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("UnknownEmail_ShouldBeInvalidCredentials", func() {
		suite.SetupTest()
		suite.repo.On("FindByEmail", suite.ctx, "ghost@example.com").Return(nil, user.ErrUserNotFound)

		_, err := suite.service.Login(suite.ctx, inbound.LoginCommand{Email: "ghost@example.com", Password: "whatever1"})

		suite.True(apperrors.Is(err, apperrors.CodeInvalidCredentials))
	})

	suite.Run("Deactivated_ShouldBeForbidden", func() {
		suite.SetupTest()
		existing := suite.factory.Create()
		existing.Deactivate()
		suite.repo.On("FindByEmail", suite.ctx, existing.Email()).Return(existing, nil)

		_, err := suite.service.Login(suite.ctx, inbound.LoginCommand{Email: existing.Email(), Password: testutils.TestPassword})

		suite.True(apperrors.Is(err, apperrors.CodeForbidden))
	})
}

func (suite *UserServiceTestSuite) TestRefresh() {
	suite.Run("ValidRefresh_ShouldRotateTokens", func() {
		suite.SetupTest()
		// Arrange
		existing := suite.factory.Create()
		claims := &outbound.TokenClaims{ID: "jti", UserID: existing.ID(), Kind: outbound.RefreshToken}
		suite.tokens.On("ParseToken", suite.ctx, "old-refresh", outbound.RefreshToken).Return(claims, nil)
		suite.repo.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil)
		suite.tokens.On("RevokeToken", suite.ctx, claims).Return(nil)
		suite.tokens.On("IssueTokens", suite.ctx, existing.ID(), existing.Email()).Return(suite.pair, nil)

		// Act
		result, err := suite.service.Refresh(suite.ctx, "old-refresh")

		// Assert
		suite.Require().NoError(err)
		suite.Equal("refresh", result.RefreshToken)
		suite.tokens.AssertExpectations(suite.T())
	})

	suite.Run("BadToken_ShouldBeUnauthorized", func() {
		suite.SetupTest()
		suite.tokens.On("ParseToken", suite.ctx, "bad", outbound.RefreshToken).Return(nil, errors.New("expired"))

		_, err := suite.service.Refresh(suite.ctx, "bad")

		suite.True(apperrors.Is(err, apperrors.CodeUnauthorized))
	})
}

func (suite *UserServiceTestSuite) TestUpdateProfile() {
	suite.Run("SetFields_ShouldChangeOnlyThose", func() {
		suite.SetupTest()
		// Arrange
		existing := suite.factory.Create()
		existing.UpdatePreferences(user.Preferences{Language: "en", PreferredCuisines: []string{"thai"}})
		suite.repo.On("FindByID", suite.ctx, existing.ID()).Return(existing, nil)
		suite.repo.On("Update", suite.ctx, existing).Return(nil)
		name := "Julia Child"
		restrictions := []string{"vegetarian"}

		// Act
		dto, err := suite.service.UpdateProfile(suite.ctx, inbound.UpdateProfileCommand{
			UserID:              existing.ID(),
			Name:                &name,
			DietaryRestrictions: &restrictions,
		})

		// Assert
		suite.Require().NoError(err)
		suite.Equal("Julia Child", dto.Name)
		suite.Equal([]string{"vegetarian"}, dto.DietaryRestrictions)
		suite.Equal([]string{"thai"}, dto.PreferredCuisines)
		suite.Equal("en", dto.Language)
	})

	suite.Run("UnknownUser_ShouldBeNotFound", func() {
		suite.SetupTest()
		missing := suite.factory.Create().ID()
		suite.repo.On("FindByID", suite.ctx, missing).Return(nil, user.ErrUserNotFound)

		_, err := suite.service.Profile(suite.ctx, missing)

		suite.True(apperrors.Is(err, apperrors.CodeUserNotFound))
	})
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
