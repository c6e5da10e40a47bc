// Package user provides the application layer for user management
package user

import (
	"context"
	stderrors "errors"

	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService implements user management use cases
type UserService struct {
	userRepo outbound.UserRepository
	tokens   outbound.TokenIssuer
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	tokens outbound.TokenIssuer,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.Named("user-service"),
	}
}

var _ inbound.UserService = (*UserService)(nil)

// Register creates a new user account
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.AuthResult, error) {
	email := user.NormalizeEmail(cmd.Email)
	s.logger.Info("Registering new user", zap.String("email", email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewDatabaseError("check email", err)
	}
	if exists {
		return nil, errors.NewEmailAlreadyExistsError(email)
	}

	newUser, err := user.NewUser(email, cmd.Name, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, newUser); err != nil {
		if stderrors.Is(err, user.ErrEmailTaken) {
			return nil, errors.NewEmailAlreadyExistsError(email)
		}
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered successfully",
		zap.String("user_id", newUser.ID().String()),
		zap.String("email", newUser.Email()),
	)

	return s.authenticate(ctx, newUser)
}

// Login authenticates a user
func (s *UserService) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.AuthResult, error) {
	existing, err := s.userRepo.FindByEmail(ctx, user.NormalizeEmail(cmd.Email))
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewInvalidCredentialsError()
		}
		return nil, errors.NewDatabaseError("find user", err)
	}

	if err := existing.CheckPassword(cmd.Password); err != nil {
		s.logger.Warn("Failed login attempt", zap.String("user_id", existing.ID().String()))
		return nil, errors.NewInvalidCredentialsError()
	}
	if !existing.IsActive() {
		return nil, errors.NewForbiddenError(user.ErrUserInactive.Error())
	}

	existing.RecordLogin()
	if err := s.userRepo.Update(ctx, existing); err != nil {
		// a stale last-login time does not block the login
		s.logger.Warn("Failed to record login", zap.Error(err))
	}

	s.logger.Info("User logged in", zap.String("user_id", existing.ID().String()))
	return s.authenticate(ctx, existing)
}

// Refresh exchanges a refresh token for a new token pair. The presented
// refresh token is revoked.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*inbound.AuthResult, error) {
	claims, err := s.tokens.ParseToken(ctx, refreshToken, outbound.RefreshToken)
	if err != nil {
		return nil, errors.NewUnauthorizedError("invalid refresh token").WithCause(err)
	}

	existing, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewUnauthorizedError("invalid refresh token")
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	if !existing.IsActive() {
		return nil, errors.NewUnauthorizedError(user.ErrUserInactive.Error())
	}

	if err := s.tokens.RevokeToken(ctx, claims); err != nil {
		s.logger.Warn("Failed to revoke refresh token", zap.Error(err))
	}

	return s.authenticate(ctx, existing)
}

// Profile returns the account of userID
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	existing, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToDTO(existing), nil
}

// UpdateProfile changes the name and preferences that are set in cmd
func (s *UserService) UpdateProfile(ctx context.Context, cmd inbound.UpdateProfileCommand) (*inbound.UserDTO, error) {
	existing, err := s.load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		if err := existing.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	prefs := existing.Preferences()
	if cmd.DietaryRestrictions != nil {
		prefs.DietaryRestrictions = *cmd.DietaryRestrictions
	}
	if cmd.PreferredCuisines != nil {
		prefs.PreferredCuisines = *cmd.PreferredCuisines
	}
	if cmd.Language != nil {
		prefs.Language = *cmd.Language
	}
	existing.UpdatePreferences(prefs)

	if err := s.userRepo.Update(ctx, existing); err != nil {
		return nil, errors.NewDatabaseError("update user", err)
	}

	s.logger.Info("Profile updated", zap.String("user_id", cmd.UserID.String()))
	return ToDTO(existing), nil
}

func (s *UserService) load(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	existing, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, user.ErrUserNotFound) {
			return nil, errors.NewUserNotFoundError(userID.String())
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	return existing, nil
}

func (s *UserService) authenticate(ctx context.Context, u *user.User) (*inbound.AuthResult, error) {
	pair, err := s.tokens.IssueTokens(ctx, u.ID(), u.Email())
	if err != nil {
		return nil, errors.NewInternalError("failed to issue tokens").WithCause(err)
	}

	return &inbound.AuthResult{
		User:         ToDTO(u),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    pair.ExpiresAt,
	}, nil
}

// ToDTO converts a user entity to its API view
func ToDTO(u *user.User) *inbound.UserDTO {
	prefs := u.Preferences()
	return &inbound.UserDTO{
		ID:                  u.ID(),
		Email:               u.Email(),
		Name:                u.Name(),
		DietaryRestrictions: nonNil(prefs.DietaryRestrictions),
		PreferredCuisines:   nonNil(prefs.PreferredCuisines),
		Language:            prefs.Language,
		CreatedAt:           u.CreatedAt(),
		LastLoginAt:         u.LastLoginAt(),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
