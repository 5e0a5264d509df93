package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/crypto"
)

// Seed populates the database with a known admin, two users, and a few books.
// Intended for development environments only; it is idempotent and backs off
// as soon as the admin account already exists.
func Seed(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
	users := NewUserRepository(db)
	books := NewBookRepository(db)

	if exists, err := users.ExistsByUsername(ctx, "admin"); err != nil {
		return err
	} else if exists {
		log.Debug().Msg("seed: admin already present, skipping")
		return nil
	}

	now := time.Now().UTC()

	seedUsers := []struct {
		username string
		password string
		role     domain.Role
		books    []domain.Book
	}{
		{username: "admin", password: "admin1234", role: domain.RoleAdmin},
		{
			username: "alice", password: "alice1234", role: domain.RoleUser,
			books: []domain.Book{
				{Title: "The Left Hand of Darkness", Author: "Ursula K. Le Guin"},
				{Title: "Kindred", Author: "Octavia E. Butler"},
			},
		},
		{
			username: "bob", password: "bob12345", role: domain.RoleUser,
			books: []domain.Book{
				{Title: "Neuromancer", Author: "William Gibson"},
			},
		},
	}

	for _, su := range seedUsers {
		hash, err := crypto.HashPassword(su.password)
		if err != nil {
			return err
		}

		created, err := users.Create(ctx, &domain.User{
			Username:     su.username,
			PasswordHash: hash,
			Role:         su.role,
			CreatedAt:    now,
		})
		if err != nil {
			// Another instance may have seeded concurrently.
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return err
		}

		for _, b := range su.books {
			b.OwnerID = created.ID
			b.CreatedAt = now
			b.UpdatedAt = now
			if _, err := books.Create(ctx, &b); err != nil {
				return err
			}
		}

		log.Info().Str("username", su.username).Str("role", string(su.role)).Msg("seeded user")
	}

	return nil
}
