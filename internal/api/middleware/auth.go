package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/psychodash/practice-dashboard/internal/core/domain"
)

// NewToken signs an HS256 token for user. The token carries no exp claim:
// a session lasts until logout.
func NewToken(jwtSecret string, user *domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
	})
	return token.SignedString([]byte(jwtSecret))
}

// TokenIssuer binds NewToken to a secret.
func TokenIssuer(jwtSecret string) func(*domain.User) (string, error) {
	return func(user *domain.User) (string, error) {
		return NewToken(jwtSecret, user)
	}
}

// Auth validates the JWT and injects user_id, username and role into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role, _ := claims["role"].(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing role")
			}
			// JSON numbers decode as float64.
			id, _ := claims["user_id"].(float64)

			c.Set("user_id", int(id))
			c.Set("username", claims["username"])
			c.Set("role", role)

			return next(c)
		}
	}
}
