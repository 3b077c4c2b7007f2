package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
)

type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get handles GET /api/user/settings.
//
// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Settings
// @Failure      401  {object}  errorResponse
// @Router       /api/user/settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.service.Get(c.Request().Context(), user.ID))
}

// Put handles PUT /api/user/settings. The body replaces the stored record.
//
// @Summary      Replace settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      settingsRequest  true  "Settings"
// @Success      200   {object}  domain.Settings
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/user/settings [put]
func (h *SettingsHandler) Put(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	saved := h.service.Put(c.Request().Context(), user.ID, domain.Settings{
		DisplayName:  req.DisplayName,
		ReminderTime: req.ReminderTime,
		Theme:        req.Theme,
	})
	return c.JSON(http.StatusOK, saved)
}
