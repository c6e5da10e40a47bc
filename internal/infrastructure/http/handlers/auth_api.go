package handlers

import (
	"net/http"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/security"
	"github.com/alchemorsel/recipe-assistant/internal/ports/inbound"
	"go.uber.org/zap"
)

// AuthHandlers handles authentication and profile requests
type AuthHandlers struct {
	base
	users inbound.UserService
}

// NewAuthHandlers creates a new authentication handlers instance
func NewAuthHandlers(users inbound.UserService, validator *security.Validator, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		base:  base{validator: validator, logger: logger.Named("auth-api")},
		users: users,
	}
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.RegisterCommand
	if err := h.bind(r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.users.Register(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusCreated, result, "User registered successfully")
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd inbound.LoginCommand
	if err := h.bind(r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.users.Login(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, result, "Login successful")
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := h.bind(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, result, "Token refreshed successfully")
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	profile, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, profile, "Profile retrieved successfully")
}

// UpdateProfile handles PUT /api/v1/auth/profile
func (h *AuthHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := h.principal(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var cmd inbound.UpdateProfileCommand
	if err := h.bind(r, &cmd); err != nil {
		h.fail(w, r, err)
		return
	}
	cmd.UserID = userID

	profile, err := h.users.UpdateProfile(r.Context(), cmd)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, http.StatusOK, profile, "Profile updated successfully")
}
