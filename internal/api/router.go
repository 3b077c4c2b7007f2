package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/moodjournal/journal-api/docs"
	"github.com/moodjournal/journal-api/internal/api/handler"
	"github.com/moodjournal/journal-api/internal/api/middleware"
	"github.com/moodjournal/journal-api/internal/core/ports"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Tokens     ports.TokenService
	Users      ports.UserRegistry
	Federation ports.FederationService
	Journal    ports.JournalService
	Settings   ports.SettingsService
}

// RouterConfig holds the transport-level settings.
type RouterConfig struct {
	CORSOrigins     []string
	FrontendAppURL  string
	LoginRatePerMin int
	// Redis is checked by the readiness probe. Nil when login state is in memory.
	Redis *redis.Client
}

const defaultLoginRatePerMin = 30

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, cfg RouterConfig, log zerolog.Logger) *echo.Echo {
	if cfg.LoginRatePerMin <= 0 {
		cfg.LoginRatePerMin = defaultLoginRatePerMin
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// Per-router registry so several routers can coexist in one process.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(svc.Tokens, svc.Users, svc.Federation, cfg.FrontendAppURL, log)
	journalHandler := handler.NewJournalHandler(svc.Journal)
	settingsHandler := handler.NewSettingsHandler(svc.Settings)
	adminHandler := handler.NewAdminHandler(svc.Users)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.Redis)

	requireAuth := middleware.Auth(svc.Tokens)
	loginLimit := middleware.RateLimit(cfg.LoginRatePerMin)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public ---
	public := e.Group("/api/public")
	public.GET("/health", healthHandler.Liveness)
	public.POST("/login", authHandler.DemoLogin, loginLimit)

	// --- Google federation ---
	google := e.Group("/api/auth/google")
	google.GET("/login", authHandler.GoogleLogin, loginLimit)
	google.GET("/callback", authHandler.GoogleCallback)

	// --- Authenticated user ---
	user := e.Group("/api/user", requireAuth)
	user.GET("/journal", journalHandler.List)
	user.POST("/journal", journalHandler.Create)
	user.GET("/mood-calendar", journalHandler.MoodCalendar)
	user.GET("/settings", settingsHandler.Get)
	user.PUT("/settings", settingsHandler.Put)

	// --- Admin ---
	admin := e.Group("/api/admin", requireAuth, middleware.RequireAdmin())
	admin.GET("/users", adminHandler.ListUsers)

	return e
}
