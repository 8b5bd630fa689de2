package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountNotFound    = errors.New("linked account not found")
	ErrEmailTaken         = errors.New("email address is already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrForbidden          = errors.New("forbidden")
)

type Role string

const (
	RoleSubscriber Role = "subscriber"
	RoleAdmin      Role = "admin"
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Account links a local user to an external identity provider.
// AccountID is the provider's user ID, not ours.
type Account struct {
	ID         string
	UserID     string
	ProviderID string
	AccountID  string
	CreatedAt  time.Time
}

type MagicToken struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
