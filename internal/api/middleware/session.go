package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
	"github.com/psychodash/practice-dashboard/internal/core/ports"
)

// CurrentUser admits a request only while the token's user is still the
// persisted current user. It must run after Auth.
func CurrentUser(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := auth.CurrentUser(c.Request().Context())
			if err != nil {
				return err
			}

			id, _ := c.Get("user_id").(int)
			role, _ := c.Get("role").(string)
			if user == nil || user.ID != id || user.Role != domain.Role(role) {
				return echo.NewHTTPError(http.StatusUnauthorized, "session ended")
			}

			return next(c)
		}
	}
}
