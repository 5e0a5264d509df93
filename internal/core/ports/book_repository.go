package ports

import (
	"context"

	"github.com/bookvault/book-api/internal/core/domain"
)

// BookRepository defines persistence operations for owned books.
//
// Every query that takes an ownerID must apply it inside the query itself, so
// "does not exist" and "exists under another owner" are the same outcome
// (domain.ErrBookNotFound) produced in a single round trip.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Book, error)
	// ListByOwner returns the owner's books in creation order.
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Book, error)
	// Update mutates title and author of the owner's book; OwnerID never changes.
	Update(ctx context.Context, id, ownerID, title, author string) (*domain.Book, error)
	Delete(ctx context.Context, id, ownerID string) error
}
