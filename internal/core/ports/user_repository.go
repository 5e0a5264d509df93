package ports

import (
	"context"

	"github.com/bookvault/book-api/internal/core/domain"
)

// UserRepository is the persistence boundary for principals.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
}
