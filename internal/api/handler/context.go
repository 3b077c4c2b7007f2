package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moodjournal/journal-api/internal/api/middleware"
	"github.com/moodjournal/journal-api/internal/core/domain"
)

// currentUser returns the user placed in context by the Auth middleware.
// Its absence means the route was mounted without Auth.
func currentUser(c echo.Context) (domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok || user.ID == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
