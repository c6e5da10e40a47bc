package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenPair is issued on login, registration and refresh
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// TokenClaims is the verified content of a token
type TokenClaims struct {
	ID        string
	UserID    uuid.UUID
	Email     string
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies bearer tokens
type TokenIssuer interface {
	IssueTokens(ctx context.Context, userID uuid.UUID, email string) (*TokenPair, error)
	ParseToken(ctx context.Context, token string, kind TokenKind) (*TokenClaims, error)
	RevokeToken(ctx context.Context, claims *TokenClaims) error
}
