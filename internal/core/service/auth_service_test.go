package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/crypto"
	"github.com/bookvault/book-api/internal/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newTestAuthService(repo *stubUserRepo) (*AuthService, *token.Codec) {
	codec := token.NewCodec([]byte("test-secret"), time.Hour)
	return NewAuthService(repo, codec, zerolog.Nop()), codec
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if !crypto.VerifyPassword("pass123", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("new registrations must get role USER, got %s", user.Role)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	first, err := svc.Register(context.Background(), "bob", "pass")
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	if _, err := svc.Register(context.Background(), "bob", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	// The first registration's credential is untouched.
	stored, err := repo.FindByUsername(context.Background(), "bob")
	if err != nil {
		t.Fatalf("find bob: %v", err)
	}
	if stored.PasswordHash != first.PasswordHash {
		t.Fatalf("stored hash changed after duplicate registration attempt")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "carl", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, codec := newTestAuthService(repo)

	if _, err := svc.Register(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	signed, user, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != "carol" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: subject=%s role=%s", claims.Subject, claims.Role)
	}
}

func TestAuthService_Login_UnifiedFailure(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestAuthService(repo)

	_, _ = svc.Register(context.Background(), "dave", "goodpass")

	_, _, wrongPass := svc.Login(context.Background(), "dave", "badpass")
	_, _, noUser := svc.Login(context.Background(), "ghost", "whatever")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if noUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", noUser)
	}
	// Same sentinel, same message: no username enumeration signal.
	if wrongPass != noUser {
		t.Fatalf("login failures must be indistinguishable: %v vs %v", wrongPass, noUser)
	}
}
