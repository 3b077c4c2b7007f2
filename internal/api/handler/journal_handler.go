package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moodjournal/journal-api/internal/core/ports"
)

// JournalHandler serves the authenticated user's own journal.
type JournalHandler struct {
	service ports.JournalService
}

func NewJournalHandler(service ports.JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// List handles GET /api/user/journal, newest first.
//
// @Summary      List journal entries
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entryListResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/journal [get]
func (h *JournalHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entryListResponse{
		Items: h.service.List(c.Request().Context(), user.ID),
	})
}

// Create handles POST /api/user/journal.
//
// @Summary      Create a journal entry
// @Tags         journal
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEntryRequest  true  "Entry"
// @Success      201   {object}  entryResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/user/journal [post]
func (h *JournalHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	entry, err := h.service.Create(c.Request().Context(), user.ID, ports.CreateEntryInput{
		Text:          req.Text,
		Mood:          req.Mood,
		EntryDatetime: req.EntryDatetime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entryResponse{Item: entry})
}

// MoodCalendar handles GET /api/user/mood-calendar.
//
// @Summary      Daily average mood
// @Tags         journal
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  moodCalendarResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/user/mood-calendar [get]
func (h *JournalHandler) MoodCalendar(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, moodCalendarResponse{
		Days: h.service.MoodCalendar(c.Request().Context(), user.ID),
	})
}
