package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moodjournal/journal-api/internal/core/ports"
)

type AdminHandler struct {
	users ports.UserRegistry
}

func NewAdminHandler(users ports.UserRegistry) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers handles GET /api/admin/users. Mounted behind RequireAdmin.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, userListResponse{
		Items: h.users.List(c.Request().Context()),
	})
}
