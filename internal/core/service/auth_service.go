package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
	"github.com/bookvault/book-api/internal/crypto"
	"github.com/bookvault/book-api/internal/token"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	codec  *token.Codec
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *token.Codec, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, logger: logger}
}

// Register creates a new principal with role USER. The password is hashed
// before the existence check so the taken and free paths pay the same bcrypt
// cost (best-effort against timing-based username enumeration).
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

// Login verifies the credential pair and issues a signed token. An unknown
// username and a wrong password return the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user.Username, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Msg("user logged in")
	return signed, user, nil
}

// ListUsers returns every principal. Password hashes stay internal; the
// domain.User JSON tags never serialize them.
func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListAll(ctx)
}
