package user

import "errors"

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmailTooLong     = errors.New("email too long")
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrNameTooLong      = errors.New("name too long")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("password too long")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrUserInactive     = errors.New("user account is deactivated")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)
