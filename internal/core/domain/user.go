package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a principal can hold. The RBAC gate checks
// membership on this type, never raw strings.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an authenticated principal.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is the request-scoped view of a validated token: who is calling
// and with which role. It exists only for the duration of a single request.
type Identity struct {
	Subject string
	Role    Role
}

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// login failures so the API never confirms which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("access forbidden")
)
