package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CORSOrigins is a comma-separated allow-list of front-end origins.
	CORSOrigins []string `env:"CORS_ORIGINS, default=http://localhost:4321,http://localhost:5173"`
	// FrontendAppURL is where the browser lands after a federated login.
	FrontendAppURL string `env:"FRONTEND_APP_URL, default=/app"`
	// LoginRatePerMin caps login attempts per client IP.
	LoginRatePerMin int `env:"LOGIN_RATE_PER_MIN, default=30"`

	Auth   AuthConfig
	Google GoogleConfig
	Redis  RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	TokenTTL  time.Duration `env:"JWT_TTL,    default=24h"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURI  string `env:"GOOGLE_REDIRECT_URI, default=http://localhost:8080/api/auth/google/callback"`

	AuthURL     string `env:"GOOGLE_AUTH_URL,     default=https://accounts.google.com/o/oauth2/v2/auth"`
	TokenURL    string `env:"GOOGLE_TOKEN_URL,    default=https://oauth2.googleapis.com/token"`
	UserInfoURL string `env:"GOOGLE_USERINFO_URL, default=https://openidconnect.googleapis.com/v1/userinfo"`

	Timeout  time.Duration `env:"OAUTH_TIMEOUT,   default=10s"`
	StateTTL time.Duration `env:"OAUTH_STATE_TTL, default=10m"`
}

// Configured reports whether client credentials are present.
func (g GoogleConfig) Configured() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

// RedisConfig is optional. An empty Addr keeps login state in memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads a .env file when one exists, then the process environment.
func Load() *Config {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom resolves configuration through the given lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if c.Google.Timeout <= 0 {
		errs = append(errs, errors.New("OAUTH_TIMEOUT must be positive"))
	}
	if c.Google.StateTTL <= 0 {
		errs = append(errs, errors.New("OAUTH_STATE_TTL must be positive"))
	}
	if c.LoginRatePerMin <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_PER_MIN must be positive"))
	}
	return errors.Join(errs...)
}
