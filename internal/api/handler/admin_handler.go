package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/book-api/internal/core/ports"
)

// AdminHandler serves the admin-only read endpoints. Route gating happens in
// the RBAC middleware; these handlers assume an ADMIN identity.
type AdminHandler struct {
	authService ports.AuthService
	activity    ports.ActivityService
}

func NewAdminHandler(authService ports.AuthService, activity ports.ActivityService) *AdminHandler {
	return &AdminHandler{authService: authService, activity: activity}
}

// Users handles GET /api/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userResponse{
			ID:        u.ID,
			Username:  u.Username,
			Role:      string(u.Role),
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

// Activity handles GET /api/admin/activity.
//
// @Summary      List recent audit-trail entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries to return (default 100)"
// @Success      200    {array}   activityResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/admin/activity [get]
func (h *AdminHandler) Activity(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	entries, err := h.activity.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	resp := make([]activityResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, activityResponse{
			Username:  e.Username,
			Action:    e.Action,
			Subject:   e.Subject,
			Timestamp: e.Timestamp,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
