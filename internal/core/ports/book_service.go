package ports

import (
	"context"
	"time"

	"github.com/bookvault/book-api/internal/core/domain"
)

// BookInput carries the client-editable fields of a book. The owner is never
// part of the input; it always comes from the caller's identity.
type BookInput struct {
	Title  string
	Author string
}

// BookView is the external representation of a book.
type BookView struct {
	ID        string
	Title     string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookService defines the ownership-scoped use cases over books. Every
// operation resolves the identity's subject to a stored principal first and
// fails with domain.ErrUserNotFound when the principal no longer exists
// (a valid token for a deleted account).
type BookService interface {
	ListOwned(ctx context.Context, identity domain.Identity) ([]BookView, error)
	Get(ctx context.Context, identity domain.Identity, bookID string) (*BookView, error)
	Create(ctx context.Context, identity domain.Identity, input BookInput) (*BookView, error)
	Update(ctx context.Context, identity domain.Identity, bookID string, input BookInput) (*BookView, error)
	Delete(ctx context.Context, identity domain.Identity, bookID string) error
}
