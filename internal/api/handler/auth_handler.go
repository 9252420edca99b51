package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/api/metrics"
	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// TokenIssuer signs a bearer token for an authenticated user.
type TokenIssuer func(user *domain.User) (string, error)

type AuthHandler struct {
	authService ports.AuthService
	issue       TokenIssuer
}

func NewAuthHandler(authService ports.AuthService, issue TokenIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, issue: issue}
}

// Login checks the credentials against the static accounts and returns a token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	if user == nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return domain.ErrInvalidCredentials
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	token, err := h.issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout clears the persisted current user.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the user carried by the bearer token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
