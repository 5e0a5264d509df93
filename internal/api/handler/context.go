package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/book-api/internal/api/middleware"
	"github.com/bookvault/book-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a present, valid subject and role prove
// the middleware ran on this route.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	subject, _ := c.Get(middleware.CtxUsername).(string)
	role, _ := c.Get(middleware.CtxRole).(domain.Role)

	if subject == "" || !role.Valid() {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	return domain.Identity{Subject: subject, Role: role}, nil
}
