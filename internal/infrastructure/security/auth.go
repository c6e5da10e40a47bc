// Package security provides token based authentication and request
// validation
package security

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/config"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "revoked_token:"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrWrongTokenType = errors.New("wrong token type")
	ErrTokenRevoked   = errors.New("token has been revoked")
)

// Claims represents JWT claims structure
type Claims struct {
	UserID    string             `json:"user_id"`
	Email     string             `json:"email,omitempty"`
	TokenType outbound.TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// AuthService signs and validates HS256 tokens. Revocation is recorded in
// the cache when one is configured.
type AuthService struct {
	config    config.AuthConfig
	cache     outbound.CacheRepository
	logger    *zap.Logger
	jwtSecret []byte
	now       func() time.Time
}

var _ outbound.TokenIssuer = (*AuthService)(nil)

// NewAuthService creates a new authentication service. An empty secret is
// replaced by a random one, which invalidates tokens on every restart.
func NewAuthService(cfg config.AuthConfig, cache outbound.CacheRepository, logger *zap.Logger) (*AuthService, error) {
	secret := []byte(cfg.JWTSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		logger.Warn("No JWT secret configured, using an ephemeral one")
	}
	if cfg.RefreshExpiration <= 0 {
		cfg.RefreshExpiration = 7 * 24 * time.Hour
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "alchemorsel"
	}

	return &AuthService{
		config:    cfg,
		cache:     cache,
		logger:    logger.Named("auth"),
		jwtSecret: secret,
		now:       time.Now,
	}, nil
}

// IssueTokens creates an access and refresh token for the user
func (a *AuthService) IssueTokens(ctx context.Context, userID uuid.UUID, email string) (*outbound.TokenPair, error) {
	now := a.now()
	accessExpiry := now.Add(a.config.JWTExpiration)

	access, err := a.sign(userID, email, outbound.AccessToken, now, accessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := a.sign(userID, "", outbound.RefreshToken, now, now.Add(a.config.RefreshExpiration))
	if err != nil {
		return nil, err
	}

	return &outbound.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    accessExpiry,
	}, nil
}

func (a *AuthService) sign(userID uuid.UUID, email string, kind outbound.TokenKind, now, expiry time.Time) (string, error) {
	claims := &Claims{
		UserID:    userID.String(),
		Email:     email,
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.config.Issuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(expiry),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return signed, nil
}

// ParseToken validates and parses a JWT token of the expected kind
func (a *AuthService) ParseToken(ctx context.Context, tokenString string, expected outbound.TokenKind) (*outbound.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.jwtSecret, nil
	},
		jwt.WithIssuer(a.config.Issuer),
		jwt.WithTimeFunc(a.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != expected {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrWrongTokenType, expected, claims.TokenType)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	if a.cache != nil {
		revoked, err := a.cache.Exists(ctx, revokedKeyPrefix+claims.ID)
		if err != nil {
			a.logger.Warn("Failed to check token revocation", zap.Error(err))
		} else if revoked {
			return nil, ErrTokenRevoked
		}
	}

	return &outbound.TokenClaims{
		ID:        claims.ID,
		UserID:    userID,
		Email:     claims.Email,
		Kind:      claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// RevokeToken blocks the token until it would have expired anyway
func (a *AuthService) RevokeToken(ctx context.Context, claims *outbound.TokenClaims) error {
	if a.cache == nil {
		return nil
	}
	ttl := claims.ExpiresAt.Sub(a.now())
	if ttl <= 0 {
		return nil
	}
	if err := a.cache.Set(ctx, revokedKeyPrefix+claims.ID, []byte("revoked"), ttl); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
