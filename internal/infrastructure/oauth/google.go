// Package oauth adapts external OpenID Connect providers to ports.IdentityProvider.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/moodjournal/journal-api/internal/core/ports"
)

const (
	defaultGoogleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	defaultGoogleTokenURL    = "https://oauth2.googleapis.com/token"
	defaultGoogleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	defaultHTTPTimeout       = 10 * time.Second

	// maxErrorBody limits how much of a failed response ends up in an error.
	maxErrorBody = 512
)

// GoogleConfig configures the Google provider. The endpoint URLs default to
// Google's and are overridable for tests.
type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	AuthURL     string
	TokenURL    string
	UserInfoURL string

	// Timeout bounds every HTTP call to the provider.
	Timeout time.Duration
}

// GoogleProvider runs the authorization-code grant against Google.
type GoogleProvider struct {
	oauth       *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
}

func NewGoogleProvider(cfg GoogleConfig) *GoogleProvider {
	if cfg.AuthURL == "" {
		cfg.AuthURL = defaultGoogleAuthURL
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = defaultGoogleTokenURL
	}
	if cfg.UserInfoURL == "" {
		cfg.UserInfoURL = defaultGoogleUserInfoURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultHTTPTimeout
	}

	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userInfoURL: cfg.UserInfoURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}
}

// AuthCodeURL returns the consent page URL carrying state.
func (p *GoogleProvider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state)
}

// idTokenClaims are the profile claims Google embeds in the id_token.
type idTokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Exchange trades the authorization code for tokens. When the response holds
// an id_token its profile claims are attached to the result.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*ports.ProviderToken, error) {
	tok, err := p.oauth.Exchange(p.withClient(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token exchange: empty access token")
	}

	out := &ports.ProviderToken{
		AccessToken: tok.AccessToken,
		TokenType:   tok.Type(),
	}
	if raw, ok := tok.Extra("id_token").(string); ok && raw != "" {
		if profile, err := profileFromIDToken(raw); err == nil {
			out.Profile = profile
		}
	}
	return out, nil
}

// profileFromIDToken reads the claims of an id_token received directly from
// the token endpoint over TLS, which OpenID Connect allows in place of a
// signature check.
func profileFromIDToken(raw string) (*ports.Profile, error) {
	var claims idTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("parse id_token: %w", err)
	}
	return &ports.Profile{Email: claims.Email, Name: claims.Name}, nil
}

type userInfoResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FetchProfile calls the userinfo endpoint with the access token.
func (p *GoogleProvider) FetchProfile(ctx context.Context, token *ports.ProviderToken) (*ports.Profile, error) {
	ctx = p.withClient(ctx)
	client := p.oauth.Client(ctx, &oauth2.Token{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build userinfo request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("userinfo returned status %d: %s", resp.StatusCode, string(body))
	}

	var info userInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode userinfo: %w", err)
	}
	return &ports.Profile{Email: info.Email, Name: info.Name}, nil
}

// withClient makes x/oauth2 use the provider's bounded HTTP client.
func (p *GoogleProvider) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
}

// compile-time interface check
var _ ports.IdentityProvider = (*GoogleProvider)(nil)
