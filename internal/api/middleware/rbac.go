package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/bookvault/book-api/internal/core/domain"
)

// RBAC gates a route to the given role set. Routes that declare no role
// requirement simply don't attach this middleware. The check is set
// membership on the closed domain.Role enum, not string comparison; the
// central error handler maps ErrForbidden to 403.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxRole).(domain.Role)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
