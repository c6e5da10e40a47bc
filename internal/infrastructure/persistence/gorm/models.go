// Package gorm provides GORM models and repository implementations
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alchemorsel/recipe-assistant/internal/domain/recipe"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users
type UserModel struct {
	ID                  uuid.UUID   `gorm:"type:char(36);primaryKey"`
	Email               string      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name                string      `gorm:"type:varchar(255);not null"`
	PasswordHash        string      `gorm:"type:varchar(255);not null"`
	IsActive            bool        `gorm:"default:true"`
	DietaryRestrictions StringSlice `gorm:"type:text"`
	PreferredCuisines   StringSlice `gorm:"type:text"`
	Language            string      `gorm:"type:varchar(35)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	LastLoginAt         *time.Time
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title       string    `gorm:"type:varchar(255);not null;index"`
	Description string    `gorm:"type:text"`
	CreatorID   uuid.UUID `gorm:"type:char(36);not null;index"`

	Ingredients []recipe.Ingredient `gorm:"type:text;serializer:json"`
	Steps       StringSlice         `gorm:"type:text"`
	Nutrition   *recipe.Nutrition   `gorm:"type:text;serializer:json"`

	Cuisine             string      `gorm:"type:varchar(50);index"`
	DietaryRestrictions StringSlice `gorm:"type:text"`
	Difficulty          string      `gorm:"type:varchar(20)"`

	// stored in minutes
	PrepTimeMinutes int `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int `gorm:"column:cook_time_minutes;default:0"`

	IsAIGenerated bool   `gorm:"column:is_ai_generated;default:false"`
	AIText        string `gorm:"column:ai_text;type:text"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// StringSlice stores a list of strings as a JSON array
type StringSlice []string

// Value implements driver.Valuer
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
	if len(data) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(data, (*[]string)(s))
}

func (UserModel) TableName() string {
	return "users"
}

func (RecipeModel) TableName() string {
	return "recipes"
}
