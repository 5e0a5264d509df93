package ports

import (
	"context"

	"github.com/bookvault/book-api/internal/core/domain"
)

// AuthService implements registration and login.
type AuthService interface {
	// Register creates a new principal with role USER. Returns
	// domain.ErrUserExists when the username is taken.
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Login verifies the credential pair and returns a signed token. Unknown
	// usernames and wrong passwords both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// ListUsers returns every principal. Exposed on admin routes only.
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
