// Package token signs and verifies the compact bearer tokens issued at login.
//
// A Codec is constructed with the process signing key and a fixed TTL; there
// is no package-level key. Rotating the key means constructing a new Codec,
// which invalidates every previously issued token.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookvault/book-api/internal/core/domain"
)

// ErrInvalidToken is returned for every verification failure: malformed
// input, bad signature, unexpected algorithm, or expiry.
var ErrInvalidToken = errors.New("invalid or expired token")

const defaultTTL = 24 * time.Hour

// Claims is the signed claim set carried inside a token.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies HMAC-SHA256 signed tokens.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec returns a Codec signing with secret. A non-positive ttl falls back
// to 24 hours.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Codec{secret: secret, ttl: ttl, now: time.Now}
}

// WithClock overrides the codec's clock. Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Issue builds and signs a token for subject with the given role, valid from
// now until now + TTL.
func (c *Codec) Issue(subject string, role domain.Role) (string, error) {
	now := c.now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify parses raw, checks the signature and expiry, and returns the claims.
// Any failure maps to ErrInvalidToken; callers get no detail about why a
// token was rejected.
func (c *Codec) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
