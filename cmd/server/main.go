package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/moodjournal/journal-api/internal/api"
	"github.com/moodjournal/journal-api/internal/core/ports"
	"github.com/moodjournal/journal-api/internal/core/service"
	"github.com/moodjournal/journal-api/internal/infrastructure/db/memory"
	"github.com/moodjournal/journal-api/internal/infrastructure/db/redis"
	"github.com/moodjournal/journal-api/internal/infrastructure/oauth"
	"github.com/moodjournal/journal-api/internal/pkg/config"
	"github.com/moodjournal/journal-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "journal-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Login state: Redis when configured, memory otherwise ---
	var (
		states ports.StateStore = memory.NewStateStore()
		rdb    *goredis.Client
	)
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		rdb = client
		states = redis.NewStateStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("login state stored in redis")
	}

	if !cfg.Google.Configured() {
		log.Warn().Msg("GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET not set; google login will fail")
	}

	// --- Services ---
	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	users := service.NewUserRegistry(ctx, memory.NewUserStore(), log)
	provider := oauth.NewGoogleProvider(oauth.GoogleConfig{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURI,
		AuthURL:      cfg.Google.AuthURL,
		TokenURL:     cfg.Google.TokenURL,
		UserInfoURL:  cfg.Google.UserInfoURL,
		Timeout:      cfg.Google.Timeout,
	})
	federation := service.NewFederationService(provider, states, users, tokens, service.FederationConfig{
		ExternalTimeout: cfg.Google.Timeout,
		StateTTL:        cfg.Google.StateTTL,
	}, log)

	e := api.NewRouter(api.Services{
		Tokens:     tokens,
		Users:      users,
		Federation: federation,
		Journal:    service.NewJournalService(memory.NewJournalStore(), log),
		Settings:   service.NewSettingsService(memory.NewSettingsStore(), log),
	}, api.RouterConfig{
		CORSOrigins:     cfg.CORSOrigins,
		FrontendAppURL:  cfg.FrontendAppURL,
		LoginRatePerMin: cfg.LoginRatePerMin,
		Redis:           rdb,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
