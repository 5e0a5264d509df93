package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
)

// BookService implements the ownership-scoped book use cases.
type BookService struct {
	books  ports.BookRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewBookService(books ports.BookRepository, users ports.UserRepository, logger zerolog.Logger) *BookService {
	return &BookService{books: books, users: users, logger: logger}
}

// resolveOwner maps the token subject to a stored principal. A valid token
// whose subject no longer exists fails with ErrUserNotFound (surfaced as 401).
func (s *BookService) resolveOwner(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, identity.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListOwned returns the caller's books in creation order.
func (s *BookService) ListOwned(ctx context.Context, identity domain.Identity) ([]ports.BookView, error) {
	owner, err := s.resolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}

	books, err := s.books.ListByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.BookView, 0, len(books))
	for _, b := range books {
		views = append(views, toView(b))
	}
	return views, nil
}

func (s *BookService) Get(ctx context.Context, identity domain.Identity, bookID string) (*ports.BookView, error) {
	owner, err := s.resolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}

	book, err := s.books.FindByIDAndOwner(ctx, bookID, owner.ID)
	if err != nil {
		return nil, err
	}

	view := toView(book)
	return &view, nil
}

// Create stores a new book owned by the caller. The owner comes from the
// identity, never from client input.
func (s *BookService) Create(ctx context.Context, identity domain.Identity, input ports.BookInput) (*ports.BookView, error) {
	owner, err := s.resolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	book := &domain.Book{
		Title:     input.Title,
		Author:    input.Author,
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.books.Create(ctx, book)
	if err != nil {
		s.logger.Error().Err(err).Str("owner", owner.Username).Msg("failed to create book")
		return nil, err
	}

	s.logger.Info().Str("book_id", created.ID).Str("owner", owner.Username).Msg("book created")

	view := toView(created)
	return &view, nil
}

func (s *BookService) Update(ctx context.Context, identity domain.Identity, bookID string, input ports.BookInput) (*ports.BookView, error) {
	owner, err := s.resolveOwner(ctx, identity)
	if err != nil {
		return nil, err
	}

	updated, err := s.books.Update(ctx, bookID, owner.ID, input.Title, input.Author)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("book_id", updated.ID).Str("owner", owner.Username).Msg("book updated")

	view := toView(updated)
	return &view, nil
}

// Delete removes the caller's book. Deleting the same id twice yields
// ErrBookNotFound on the second call.
func (s *BookService) Delete(ctx context.Context, identity domain.Identity, bookID string) error {
	owner, err := s.resolveOwner(ctx, identity)
	if err != nil {
		return err
	}

	if err := s.books.Delete(ctx, bookID, owner.ID); err != nil {
		return err
	}

	s.logger.Info().Str("book_id", bookID).Str("owner", owner.Username).Msg("book deleted")
	return nil
}

func toView(b *domain.Book) ports.BookView {
	return ports.BookView{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
