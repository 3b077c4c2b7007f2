package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
)

// UserContextKey is the echo context key holding the authenticated domain.User.
const UserContextKey = "user"

// Auth verifies the bearer token and injects the resolved user into context.
func Auth(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := tokens.Verify(strings.TrimSpace(token))
			if err != nil {
				return err
			}

			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth.
func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(UserContextKey).(domain.User)
	return user, ok
}
