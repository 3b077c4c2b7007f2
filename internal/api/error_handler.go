package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error   string   `json:"error"`
	Allowed []string `json:"allowed,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, errorResponse) {
	// Echo's own errors (bind failures, 404 from router, rate limiting, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, errorResponse{Error: fmt.Sprintf("%v", he.Message)}
	}

	var unknown *domain.UnknownUserError
	if errors.As(err, &unknown) {
		return http.StatusUnauthorized, errorResponse{Error: "unknown user", Allowed: unknown.Allowed}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: "invalid token"}
	case errors.Is(err, domain.ErrUnknownUser):
		return http.StatusUnauthorized, errorResponse{Error: "unknown user"}
	case errors.Is(err, domain.ErrInsufficientPrivilege):
		return http.StatusForbidden, errorResponse{Error: "admin access required"}
	case errors.Is(err, domain.ErrInvalidEntry):
		return http.StatusUnprocessableEntity, errorResponse{Error: entryMessage(err)}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, errorResponse{Error: "internal server error"}
}

// entryMessage trims caller wrap prefixes so only the validation message
// starting at the domain sentinel reaches the client.
func entryMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, domain.ErrInvalidEntry.Error()); i > 0 {
		return msg[i:]
	}
	return msg
}
