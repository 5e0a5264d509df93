package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bookvault/book-api/internal/api/metrics"
	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
)

// ActivityRecorder is the interface handlers use to enqueue audit entries.
type ActivityRecorder interface {
	Enqueue(in ports.ActivityInput)
}

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService ports.AuthService
	recorder    ActivityRecorder
}

func NewAuthHandler(authService ports.AuthService, recorder ActivityRecorder) *AuthHandler {
	return &AuthHandler{authService: authService, recorder: recorder}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Credentials for the new account"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		} else {
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	h.recorder.Enqueue(ports.ActivityInput{
		Username:  user.Username,
		Action:    domain.ActionRegister,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusCreated, registerResponse{
		Username: user.Username,
		Message:  "User created",
	})
}

// Login authenticates a user and returns a signed token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.recorder.Enqueue(ports.ActivityInput{
		Username:  user.Username,
		Action:    domain.ActionLogin,
		Timestamp: time.Now().UTC(),
	})

	return c.JSON(http.StatusOK, loginResponse{
		Username: user.Username,
		Token:    signed,
	})
}
