// Package outbound defines the interfaces the application uses to reach
// storage, caches and AI providers
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
	"github.com/google/uuid"
)

// ErrCacheMiss is returned by CacheRepository.Get for absent or expired keys
var ErrCacheMiss = errors.New("cache miss")

// RecipeRepository defines recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	// FindByCreator returns the creator's recipes, newest first
	FindByCreator(ctx context.Context, creatorID uuid.UUID) ([]*recipe.Recipe, error)
}

// UserRepository defines user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CacheRepository defines a byte-oriented cache with expiry
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// DeleteByPrefix removes every key starting with prefix and reports how many
	DeleteByPrefix(ctx context.Context, prefix string) (int, error)
}
