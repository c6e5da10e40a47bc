// Package user defines the user account entity
package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minNameLength     = 2
	maxNameLength     = 100
	maxEmailLength    = 255
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLength = 72
)

// User represents an account that owns recipes
type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	isActive     bool
	preferences  Preferences
	createdAt    time.Time
	updatedAt    time.Time
	lastLoginAt  *time.Time
}

// Preferences are defaults applied to AI recipe generation
type Preferences struct {
	DietaryRestrictions []string `json:"dietary_restrictions,omitempty"`
	PreferredCuisines   []string `json:"preferred_cuisines,omitempty"`
	Language            string   `json:"language,omitempty"`
}

// NewUser creates a new user with validation and a bcrypt password hash
func NewUser(email, name, password string) (*User, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         name,
		passwordHash: hash,
		isActive:     true,
		preferences:  Preferences{Language: "en"},
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Snapshot is the persisted state of a user
type Snapshot struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	Preferences  Preferences
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// Restore rebuilds a user from storage
func Restore(s Snapshot) *User {
	return &User{
		id:           s.ID,
		email:        s.Email,
		name:         s.Name,
		passwordHash: s.PasswordHash,
		isActive:     s.IsActive,
		preferences:  s.Preferences,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		lastLoginAt:  s.LastLoginAt,
	}
}

// Snapshot exports the user state for storage
func (u *User) Snapshot() Snapshot {
	return Snapshot{
		ID:           u.id,
		Email:        u.email,
		Name:         u.name,
		PasswordHash: u.passwordHash,
		IsActive:     u.isActive,
		Preferences:  u.preferences,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
		LastLoginAt:  u.lastLoginAt,
	}
}

// ID returns the user's ID
func (u *User) ID() uuid.UUID {
	return u.id
}

// Email returns the user's normalized email
func (u *User) Email() string {
	return u.email
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.name
}

// IsActive returns whether the user may log in
func (u *User) IsActive() bool {
	return u.isActive
}

// Preferences returns the user's generation defaults
func (u *User) Preferences() Preferences {
	return u.preferences
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// LastLoginAt returns when the user last logged in
func (u *User) LastLoginAt() *time.Time {
	return u.lastLoginAt
}

// CheckPassword verifies the provided password against the stored hash
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// ChangePassword replaces the password hash
func (u *User) ChangePassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.passwordHash = hash
	u.updatedAt = time.Now().UTC()
	return nil
}

// Rename updates the display name
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return err
	}
	u.name = name
	u.updatedAt = time.Now().UTC()
	return nil
}

// UpdatePreferences replaces the generation defaults
func (u *User) UpdatePreferences(p Preferences) {
	u.preferences = p
	u.updatedAt = time.Now().UTC()
}

// Deactivate blocks further logins
func (u *User) Deactivate() {
	u.isActive = false
	u.updatedAt = time.Now().UTC()
}

// RecordLogin records a login timestamp
func (u *User) RecordLogin() {
	now := time.Now().UTC()
	u.lastLoginAt = &now
	u.updatedAt = now
}

// NormalizeEmail lowercases and trims an address for lookups
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len(email) > maxEmailLength {
		return ErrEmailTooLong
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

func validateName(name string) error {
	n := len([]rune(name))
	if n < minNameLength {
		return ErrNameTooShort
	}
	if n > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
