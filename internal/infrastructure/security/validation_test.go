package security

import (
	"testing"

	apperrors "github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"notblank,min=2,printable"`
	Password string `json:"password" validate:"required,min=8"`
	Level    string `json:"level,omitempty" validate:"omitempty,oneof=easy hard"`
}

func TestValidator_Struct(t *testing.T) {
	v := NewValidator()

	t.Run("Valid_ShouldPass", func(t *testing.T) {
		err := v.Struct(signup{Email: "a@example.com", Name: "Ada", Password: "password1"})
		assert.NoError(t, err)
	})

	t.Run("Invalid_ShouldReportJSONFieldNames", func(t *testing.T) {
		// Act
		err := v.Struct(signup{Email: "nope", Name: "   ", Password: "short", Level: "medium"})

		// Assert
		require.Error(t, err)
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

		details, ok := appErr.Metadata["validation_errors"].(apperrors.ValidationErrors)
		require.True(t, ok)
		fields := make([]string, 0, len(details))
		for _, d := range details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"email", "name", "password", "level"}, fields)
		assert.Contains(t, appErr.Details, "password must be at least 8 characters")
	})

	t.Run("ControlCharacters_ShouldFail", func(t *testing.T) {
		err := v.Struct(signup{Email: "a@example.com", Name: "Ad\x00a", Password: "password1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "control characters")
	})

	t.Run("NonStruct_ShouldBeBadRequest", func(t *testing.T) {
		err := v.Struct("not a struct")
		assert.Equal(t, apperrors.CodeBadRequest, apperrors.GetCode(err))
	})
}
