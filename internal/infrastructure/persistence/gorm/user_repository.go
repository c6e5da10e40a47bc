package gorm

import (
	"context"

	"github.com/alchemorsel/recipe-assistant/internal/domain/user"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements the user repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

var _ outbound.UserRepository = (*UserRepository)(nil)

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	result := r.db.WithContext(ctx).Create(UserToModel(u))
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return user.ErrEmailTaken
		}
		return result.Error
	}
	return nil
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model := UserToModel(u)

	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil && isDuplicate(result.Error) {
		return user.ErrEmailTaken
	}
	return exactlyOne(result, user.ErrUserNotFound)
}

// FindByID finds a user by ID
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

// FindByEmail finds a user by email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", user.NormalizeEmail(email))
}

// ExistsByEmail checks if an email is registered
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("email = ?", user.NormalizeEmail(email)).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *UserRepository) first(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	var model UserModel
	if err := notFoundAs(r.db.WithContext(ctx).Take(&model, query, arg).Error, user.ErrUserNotFound); err != nil {
		return nil, err
	}
	return ModelToUser(&model), nil
}
