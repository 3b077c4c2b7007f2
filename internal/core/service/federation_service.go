package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
	"github.com/moodjournal/journal-api/internal/pkg/metrics"
)

const (
	defaultExternalTimeout = 10 * time.Second
	defaultStateTTL        = 10 * time.Minute
	stateBytes             = 24
)

// FederationConfig bounds the external calls of a login attempt.
type FederationConfig struct {
	// ExternalTimeout caps code exchange plus profile fetch.
	ExternalTimeout time.Duration
	// StateTTL is how long a started login may take to come back.
	StateTTL time.Duration
}

// FederationService turns a provider's authorization-code callback into a
// local bearer token.
type FederationService struct {
	provider ports.IdentityProvider
	states   ports.StateStore
	users    ports.UserRegistry
	tokens   ports.TokenService
	cfg      FederationConfig
	log      zerolog.Logger
}

func NewFederationService(
	provider ports.IdentityProvider,
	states ports.StateStore,
	users ports.UserRegistry,
	tokens ports.TokenService,
	cfg FederationConfig,
	log zerolog.Logger,
) *FederationService {
	if cfg.ExternalTimeout <= 0 {
		cfg.ExternalTimeout = defaultExternalTimeout
	}
	if cfg.StateTTL <= 0 {
		cfg.StateTTL = defaultStateTTL
	}
	return &FederationService{
		provider: provider,
		states:   states,
		users:    users,
		tokens:   tokens,
		cfg:      cfg,
		log:      log,
	}
}

// Begin mints a one-time state value and returns the provider URL the
// browser should be sent to.
func (s *FederationService) Begin(ctx context.Context) (string, error) {
	state, err := newState()
	if err != nil {
		return "", fmt.Errorf("begin federation: %w", err)
	}
	if err := s.states.Save(ctx, state, s.cfg.StateTTL); err != nil {
		return "", fmt.Errorf("begin federation: save state: %w", err)
	}
	return s.provider.AuthCodeURL(state), nil
}

// Complete runs the callback half of the flow. It never returns an error:
// every failure is reported as a FederationResult carrying a reason code.
func (s *FederationService) Complete(ctx context.Context, in ports.CallbackInput) domain.FederationResult {
	profile, err := s.verifiedProfile(ctx, in)
	if err != nil {
		s.log.Warn().Err(err).Msg("federated login failed")
		return s.fail(domain.FailureFederation)
	}

	if strings.TrimSpace(profile.Email) == "" {
		s.log.Warn().Msg("federated login failed: provider returned no email")
		return s.fail(domain.FailureNoEmail)
	}

	user, err := s.users.ResolveOrCreate(ctx, profile.Email, profile.Name)
	if err != nil {
		s.log.Error().Err(err).Msg("federated login failed: resolve user")
		return s.fail(domain.FailureFederation)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("federated login failed: issue token")
		return s.fail(domain.FailureFederation)
	}

	metrics.LoginsTotal.WithLabelValues("oauth", "success").Inc()
	s.log.Info().Str("user_id", user.ID).Msg("federated login succeeded")
	return domain.FederationSucceeded(token)
}

// verifiedProfile checks the callback, exchanges the code and obtains the
// profile, all within the external-call timeout.
func (s *FederationService) verifiedProfile(ctx context.Context, in ports.CallbackInput) (*ports.Profile, error) {
	if in.Error != "" {
		return nil, fmt.Errorf("%w: provider returned %q", domain.ErrFederation, in.Error)
	}
	if in.Code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", domain.ErrFederation)
	}
	if in.State == "" {
		return nil, fmt.Errorf("%w: missing state", domain.ErrFederation)
	}

	ok, err := s.states.Consume(ctx, in.State)
	if err != nil {
		return nil, fmt.Errorf("%w: consume state: %v", domain.ErrFederation, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: unknown or expired state", domain.ErrFederation)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ExternalTimeout)
	defer cancel()

	tok, err := s.provider.Exchange(callCtx, in.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", domain.ErrFederation, err)
	}
	if tok.Profile != nil {
		return tok.Profile, nil
	}

	profile, err := s.provider.FetchProfile(callCtx, tok)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch profile: %v", domain.ErrFederation, err)
	}
	return profile, nil
}

func (s *FederationService) fail(reason domain.FailureReason) domain.FederationResult {
	metrics.LoginsTotal.WithLabelValues("oauth", "failure").Inc()
	metrics.FederationFailuresTotal.WithLabelValues(string(reason)).Inc()
	return domain.FederationFailed(reason)
}

// newState returns a URL-safe random value with stateBytes of entropy.
func newState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
