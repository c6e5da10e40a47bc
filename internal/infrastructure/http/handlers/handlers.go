// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"net/http"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/http/response"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/security"
	apperrors "github.com/alchemorsel/recipe-assistant/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// base carries the helpers every handler group shares
type base struct {
	validator *security.Validator
	logger    *zap.Logger
}

// bind decodes the body into dst and validates it
func (b base) bind(r *http.Request, dst interface{}) error {
	if err := response.Decode(r, dst); err != nil {
		return err
	}
	return b.validator.Struct(dst)
}

func (b base) ok(w http.ResponseWriter, status int, data interface{}, message string) {
	response.OK(w, b.logger, status, data, message)
}

func (b base) fail(w http.ResponseWriter, r *http.Request, err error) {
	response.Error(w, r, b.logger, err)
}

// principal returns the authenticated user set by AuthenticateAPI
func (b base) principal(r *http.Request) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, apperrors.NewUnauthorizedError("User not authenticated")
	}
	return userID, nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}
