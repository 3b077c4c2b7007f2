package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/domain"
	"github.com/moodjournal/journal-api/internal/core/ports"
)

type stubTokenService struct {
	issueFn func(user domain.User) (string, error)
}

func (s *stubTokenService) Issue(user domain.User) (string, error) {
	return s.issueFn(user)
}

func (s *stubTokenService) Verify(token string) (domain.User, error) {
	return domain.User{}, domain.ErrInvalidToken
}

type stubUserRegistry struct {
	lookupFn func(username string) (domain.User, error)
	users    []domain.User
}

func (s *stubUserRegistry) ResolveOrCreate(ctx context.Context, email, displayName string) (domain.User, error) {
	return domain.User{}, errors.New("not used")
}

func (s *stubUserRegistry) LookupDemo(username string) (domain.User, error) {
	return s.lookupFn(username)
}

func (s *stubUserRegistry) List(ctx context.Context) []domain.User {
	return s.users
}

type stubFederation struct {
	beginFn    func(ctx context.Context) (string, error)
	completeFn func(ctx context.Context, in ports.CallbackInput) domain.FederationResult
}

func (s *stubFederation) Begin(ctx context.Context) (string, error) {
	return s.beginFn(ctx)
}

func (s *stubFederation) Complete(ctx context.Context, in ports.CallbackInput) domain.FederationResult {
	return s.completeFn(ctx, in)
}

func TestAuthHandler_DemoLogin_Success(t *testing.T) {
	e := echo.New()
	users := &stubUserRegistry{lookupFn: func(username string) (domain.User, error) {
		if username != "demo" {
			t.Fatalf("unexpected username %q", username)
		}
		return domain.User{ID: "user-1", DisplayName: "demo"}, nil
	}}
	tokens := &stubTokenService{issueFn: func(user domain.User) (string, error) {
		return "signed-" + user.ID, nil
	}}
	h := NewAuthHandler(tokens, users, &stubFederation{}, "/app", zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/public/login?username=demo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.DemoLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "signed-user-1" || resp["token_type"] != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != "user-1" || user["username"] != "demo" || user["is_admin"] != false {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_DemoLogin_UnknownUser(t *testing.T) {
	e := echo.New()
	users := &stubUserRegistry{lookupFn: func(username string) (domain.User, error) {
		return domain.User{}, &domain.UnknownUserError{Username: username, Allowed: []string{"admin", "demo"}}
	}}
	tokens := &stubTokenService{issueFn: func(user domain.User) (string, error) {
		t.Fatalf("no token should be issued")
		return "", nil
	}}
	h := NewAuthHandler(tokens, users, &stubFederation{}, "/app", zerolog.Nop())

	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/public/login?username=mallory", nil), httptest.NewRecorder())

	err := h.DemoLogin(c)
	if !errors.Is(err, domain.ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
	var unknown *domain.UnknownUserError
	if !errors.As(err, &unknown) || len(unknown.Allowed) != 2 {
		t.Fatalf("expected allowed usernames on error, got %v", err)
	}
}

func TestAuthHandler_GoogleLogin_Redirects(t *testing.T) {
	e := echo.New()
	fed := &stubFederation{beginFn: func(ctx context.Context) (string, error) {
		return "https://accounts.example.test/auth?state=abc", nil
	}}
	h := NewAuthHandler(&stubTokenService{}, &stubUserRegistry{}, fed, "/app", zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil), rec)

	if err := h.GoogleLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "https://accounts.example.test/auth?state=abc" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestAuthHandler_GoogleLogin_BeginFailure(t *testing.T) {
	e := echo.New()
	fed := &stubFederation{beginFn: func(ctx context.Context) (string, error) {
		return "", errors.New("state store down")
	}}
	h := NewAuthHandler(&stubTokenService{}, &stubUserRegistry{}, fed, "http://localhost:5173/app", zerolog.Nop())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/google/login", nil), rec)

	if err := h.GoogleLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "http://localhost:5173/app?error=federation_failed" {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestAuthHandler_GoogleCallback(t *testing.T) {
	tests := []struct {
		name   string
		result domain.FederationResult
		want   string
	}{
		{"success", domain.FederationSucceeded("tok"), "/app?token=tok"},
		{"no email", domain.FederationFailed(domain.FailureNoEmail), "/app?error=no_email"},
		{"failure", domain.FederationFailed(domain.FailureFederation), "/app?error=federation_failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			fed := &stubFederation{completeFn: func(ctx context.Context, in ports.CallbackInput) domain.FederationResult {
				if in.Code != "the-code" || in.State != "the-state" {
					t.Fatalf("unexpected callback input: %+v", in)
				}
				return tt.result
			}}
			h := NewAuthHandler(&stubTokenService{}, &stubUserRegistry{}, fed, "", zerolog.Nop())

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/auth/google/callback?code=the-code&state=the-state", nil)
			if err := h.GoogleCallback(e.NewContext(req, rec)); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusFound {
				t.Fatalf("expected 302, got %d", rec.Code)
			}
			if loc := rec.Header().Get(echo.HeaderLocation); loc != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, loc)
			}
		})
	}
}
