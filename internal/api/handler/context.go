package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

// ctxUser rebuilds the caller from the claims injected by the Auth
// middleware. A missing role means the middleware did not run.
func ctxUser(c echo.Context) (*domain.User, error) {
	role, _ := c.Get("role").(string)
	if role == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	username, _ := c.Get("username").(string)
	id, _ := c.Get("user_id").(int)
	return &domain.User{ID: id, Username: username, Role: domain.Role(role)}, nil
}
