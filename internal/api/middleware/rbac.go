package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// RequireAdmin lets only admin users through. It must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return domain.ErrInvalidToken
			}
			if !user.IsAdmin {
				return domain.ErrInsufficientPrivilege
			}
			return next(c)
		}
	}
}
