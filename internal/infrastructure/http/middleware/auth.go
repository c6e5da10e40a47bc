package middleware

import (
	"context"
	"net/http"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/response"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	apperrors "github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userEmailKey
)

// AuthenticateAPI requires a valid bearer access token and stores the
// principal in the request context
func AuthenticateAPI(tokens outbound.TokenIssuer, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				response.Error(w, r, logger, apperrors.NewUnauthorizedError("Authorization header required"))
				return
			}

			token, ok := response.Bearer(header)
			if !ok {
				response.Error(w, r, logger, apperrors.NewUnauthorizedError("Invalid authorization header format"))
				return
			}

			claims, err := tokens.ParseToken(r.Context(), token, outbound.AccessToken)
			if err != nil {
				response.Error(w, r, logger, apperrors.NewUnauthorizedError("Invalid or expired token").WithCause(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.UserID, claims.Email)))
		})
	}
}

// WithUser returns ctx carrying the authenticated user
func WithUser(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userEmailKey, email)
}

// UserIDFromContext extracts the authenticated user ID
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey).(uuid.UUID)
	return userID, ok
}

// UserEmailFromContext extracts the authenticated user's email
func UserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}
