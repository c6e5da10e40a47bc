package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserService defines account and authentication use cases
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error)
	Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Profile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*UserDTO, error)
}

// RegisterCommand creates an account
type RegisterCommand struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginCommand authenticates with email and password
type LoginCommand struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileCommand changes the display name and generation defaults
type UpdateProfileCommand struct {
	UserID              uuid.UUID `json:"-"`
	Name                *string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	DietaryRestrictions *[]string `json:"dietary_restrictions,omitempty"`
	PreferredCuisines   *[]string `json:"preferred_cuisines,omitempty"`
	Language            *string   `json:"language,omitempty" validate:"omitempty,min=2,max=35"`
}

// UserDTO is the API view of an account
type UserDTO struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	DietaryRestrictions []string   `json:"dietary_restrictions"`
	PreferredCuisines   []string   `json:"preferred_cuisines"`
	Language            string     `json:"language,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
}

// AuthResult is returned after a successful login or registration
type AuthResult struct {
	User         *UserDTO  `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}
