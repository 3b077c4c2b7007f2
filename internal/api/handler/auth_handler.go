package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
	"github.com/moodjournal/journal-api/internal/pkg/metrics"
)

type AuthHandler struct {
	tokens      ports.TokenService
	users       ports.UserRegistry
	federation  ports.FederationService
	frontendURL string
	log         zerolog.Logger
}

func NewAuthHandler(
	tokens ports.TokenService,
	users ports.UserRegistry,
	federation ports.FederationService,
	frontendURL string,
	log zerolog.Logger,
) *AuthHandler {
	if frontendURL == "" {
		frontendURL = "/app"
	}
	return &AuthHandler{
		tokens:      tokens,
		users:       users,
		federation:  federation,
		frontendURL: frontendURL,
		log:         log,
	}
}

// DemoLogin issues a token for one of the fixed demo accounts.
//
// @Summary      Demo login
// @Tags         auth
// @Produce      json
// @Param        username  query     string  true  "Demo account (demo or admin)"
// @Success      200       {object}  loginResponse
// @Failure      401       {object}  errorResponse
// @Failure      429       {object}  errorResponse
// @Router       /api/public/login [post]
func (h *AuthHandler) DemoLogin(c echo.Context) error {
	username := strings.TrimSpace(c.QueryParam("username"))

	user, err := h.users.LookupDemo(username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("demo", "failure").Inc()
		return err
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("demo", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("demo", "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

// GoogleLogin redirects the browser to Google's consent page.
//
// @Summary      Start Google login
// @Tags         auth
// @Success      302
// @Router       /api/auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	target, err := h.federation.Begin(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Msg("could not start federated login")
		return c.Redirect(http.StatusFound, domain.FederationFailed(domain.FailureFederation).RedirectURL(h.frontendURL))
	}
	return c.Redirect(http.StatusFound, target)
}

// GoogleCallback finishes the Google login and hands the result to the
// front end as a token or error query parameter.
//
// @Summary      Google login callback
// @Tags         auth
// @Param        code   query  string  false  "Authorization code"
// @Param        state  query  string  false  "Login state"
// @Param        error  query  string  false  "Provider error"
// @Success      302
// @Router       /api/auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	result := h.federation.Complete(c.Request().Context(), ports.CallbackInput{
		State: c.QueryParam("state"),
		Code:  c.QueryParam("code"),
		Error: c.QueryParam("error"),
	})
	return c.Redirect(http.StatusFound, result.RedirectURL(h.frontendURL))
}
