package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/book-api/internal/api/metrics"
	"github.com/bookvault/book-api/internal/token"
)

// Context keys populated by Auth for downstream handlers.
const (
	CtxUsername = "username"
	CtxRole     = "role"
)

// Auth validates the bearer token and injects the caller's identity into the
// request context. Requests without a valid token never reach the handler:
// the outcome is exactly one of handler-invoked, 401, or (via RBAC) 403.
func Auth(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.TokensRejectedTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokensRejectedTotal.WithLabelValues("bad_scheme").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := codec.Verify(parts[1])
			if err != nil {
				metrics.TokensRejectedTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(CtxUsername, claims.Subject)
			c.Set(CtxRole, claims.Role)

			return next(c)
		}
	}
}
