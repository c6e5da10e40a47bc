package recipe

import "strings"

// Ingredient is one line of a recipe's ingredient list.
// Amount is free text because AI output mixes numbers with "a pinch".
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Unit   string `json:"unit,omitempty"`
}

// Validate validates the ingredient
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrInvalidIngredient
	}
	return nil
}

// Nutrition holds per-serving nutrition values
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Validate validates the nutrition values
func (n Nutrition) Validate() error {
	if n.Calories < 0 || n.Protein < 0 || n.Carbs < 0 || n.Fat < 0 {
		return ErrNegativeNutrition
	}
	return nil
}

// Difficulty represents recipe difficulty
type Difficulty string

const (
	DifficultyUnset  Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts a difficulty name in any case
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyUnset, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return DifficultyUnset, ErrInvalidDifficulty
	}
}
