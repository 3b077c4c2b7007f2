package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/moodjournal/journal-api/internal/core/ports"
	"github.com/moodjournal/journal-api/internal/core/service"
	"github.com/moodjournal/journal-api/internal/infrastructure/db/memory"
)

type fakeProvider struct {
	profile *ports.Profile
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://idp.example.test/auth?state=" + url.QueryEscape(state)
}

func (p *fakeProvider) Exchange(ctx context.Context, code string) (*ports.ProviderToken, error) {
	return &ports.ProviderToken{AccessToken: "at", TokenType: "Bearer", Profile: p.profile}, nil
}

func (p *fakeProvider) FetchProfile(ctx context.Context, token *ports.ProviderToken) (*ports.Profile, error) {
	return p.profile, nil
}

func newTestRouter(t *testing.T, profile *ports.Profile) *echo.Echo {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	tokens := service.NewTokenService("router-test-secret", time.Hour)
	users := service.NewUserRegistry(ctx, memory.NewUserStore(), log)
	federation := service.NewFederationService(
		&fakeProvider{profile: profile},
		memory.NewStateStore(),
		users,
		tokens,
		service.FederationConfig{ExternalTimeout: time.Second, StateTTL: time.Minute},
		log,
	)

	return NewRouter(Services{
		Tokens:     tokens,
		Users:      users,
		Federation: federation,
		Journal:    service.NewJournalService(memory.NewJournalStore(), log),
		Settings:   service.NewSettingsService(memory.NewSettingsStore(), log),
	}, RouterConfig{
		CORSOrigins:     []string{"http://localhost:5173"},
		FrontendAppURL:  "http://localhost:5173/app",
		LoginRatePerMin: 100,
	}, log)
}

func do(t *testing.T, e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func login(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/public/login?username="+username, "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(t, rec, &resp)
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected login response: %s", rec.Body.String())
	}
	return resp.AccessToken
}

func TestRouter_JournalFlow(t *testing.T) {
	e := newTestRouter(t, nil)
	token := login(t, e, "demo")

	rec := do(t, e, http.MethodGet, "/api/user/journal", token, "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"items":[]}` {
		t.Fatalf("expected empty journal, got %d %s", rec.Code, rec.Body.String())
	}

	for _, body := range []string{
		`{"text":"first","mood":4,"entry_datetime":"2024-01-01T10:00:00Z"}`,
		`{"text":"second","mood":7,"entry_datetime":"2024-01-02T08:00:00Z"}`,
		`{"text":"third","mood":9,"entry_datetime":"2024-01-02T21:00:00Z"}`,
	} {
		rec := do(t, e, http.MethodPost, "/api/user/journal", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d %s", rec.Code, rec.Body.String())
		}
	}

	var list struct {
		Items []struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"items"`
	}
	decode(t, do(t, e, http.MethodGet, "/api/user/journal", token, ""), &list)
	if len(list.Items) != 3 || list.Items[0].Text != "third" || list.Items[2].Text != "first" {
		t.Fatalf("expected newest first, got %+v", list.Items)
	}

	var cal struct {
		Days []struct {
			Date        string  `json:"date"`
			AverageMood float64 `json:"average_mood"`
			Entries     int     `json:"entries"`
		} `json:"days"`
	}
	decode(t, do(t, e, http.MethodGet, "/api/user/mood-calendar", token, ""), &cal)
	if len(cal.Days) != 2 {
		t.Fatalf("expected 2 days, got %+v", cal.Days)
	}
	if cal.Days[0].Date != "2024-01-02" || cal.Days[0].AverageMood != 8 || cal.Days[0].Entries != 2 {
		t.Fatalf("unexpected first day: %+v", cal.Days[0])
	}
	if cal.Days[1].Date != "2024-01-01" || cal.Days[1].AverageMood != 4 || cal.Days[1].Entries != 1 {
		t.Fatalf("unexpected second day: %+v", cal.Days[1])
	}

	// Another user sees none of it.
	adminToken := login(t, e, "admin")
	decode(t, do(t, e, http.MethodGet, "/api/user/journal", adminToken, ""), &list)
	if len(list.Items) != 0 {
		t.Fatalf("journals must be isolated per user, got %+v", list.Items)
	}
}

func TestRouter_InvalidEntryIsRejected(t *testing.T) {
	e := newTestRouter(t, nil)
	token := login(t, e, "demo")

	rec := do(t, e, http.MethodPost, "/api/user/journal", token, `{"text":"x","mood":11}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	var list struct {
		Items []any `json:"items"`
	}
	decode(t, do(t, e, http.MethodGet, "/api/user/journal", token, ""), &list)
	if len(list.Items) != 0 {
		t.Fatalf("nothing should be stored, got %d", len(list.Items))
	}
}

func TestRouter_SettingsFlow(t *testing.T) {
	e := newTestRouter(t, nil)
	token := login(t, e, "demo")

	var got map[string]string
	decode(t, do(t, e, http.MethodGet, "/api/user/settings", token, ""), &got)
	if got["display_name"] != "Friend" || got["reminder_time"] != "20:00" || got["theme"] != "warm" {
		t.Fatalf("unexpected defaults: %v", got)
	}

	rec := do(t, e, http.MethodPut, "/api/user/settings", token, `{"display_name":"Ada","reminder_time":"07:30","theme":"dark"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d %s", rec.Code, rec.Body.String())
	}

	decode(t, do(t, e, http.MethodGet, "/api/user/settings", token, ""), &got)
	if got["display_name"] != "Ada" || got["reminder_time"] != "07:30" || got["theme"] != "dark" {
		t.Fatalf("unexpected settings after put: %v", got)
	}
}

func TestRouter_AuthErrors(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(t, e, http.MethodGet, "/api/user/journal", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: expected 401, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodGet, "/api/user/journal", "not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
	var body map[string]any
	decode(t, rec, &body)
	if body["error"] != "invalid token" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestRouter_UnknownDemoUser(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(t, e, http.MethodPost, "/api/public/login?username=mallory", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body struct {
		Error   string   `json:"error"`
		Allowed []string `json:"allowed"`
	}
	decode(t, rec, &body)
	if body.Error != "unknown user" || len(body.Allowed) != 2 || body.Allowed[0] != "admin" || body.Allowed[1] != "demo" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestRouter_AdminListing(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(t, e, http.MethodGet, "/api/admin/users", login(t, e, "demo"), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin: expected 403, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodGet, "/api/admin/users", login(t, e, "admin"), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", rec.Code)
	}
	var body struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	decode(t, rec, &body)
	if len(body.Items) != 2 {
		t.Fatalf("expected the two seeded users, got %+v", body.Items)
	}
}

func TestRouter_GoogleFlow(t *testing.T) {
	e := newTestRouter(t, &ports.Profile{Email: "ada@example.com", Name: "Ada"})

	rec := do(t, e, http.MethodGet, "/api/auth/google/login", "", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("login: expected 302, got %d", rec.Code)
	}
	consent, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	if err != nil {
		t.Fatalf("parse consent url: %v", err)
	}
	state := consent.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state on consent url %q", consent)
	}

	rec = do(t, e, http.MethodGet, "/api/auth/google/callback?code=c&state="+url.QueryEscape(state), "", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("callback: expected 302, got %d", rec.Code)
	}
	back, err := url.Parse(rec.Header().Get(echo.HeaderLocation))
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if back.Path != "/app" || back.Query().Get("token") == "" {
		t.Fatalf("expected token redirect, got %q", back)
	}

	// The issued token works against the API.
	token := back.Query().Get("token")
	if rec := do(t, e, http.MethodGet, "/api/user/settings", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("federated token rejected: %d", rec.Code)
	}

	// The state cannot be replayed.
	rec = do(t, e, http.MethodGet, "/api/auth/google/callback?code=c&state="+url.QueryEscape(state), "", "")
	back, _ = url.Parse(rec.Header().Get(echo.HeaderLocation))
	if back.Query().Get("error") != "federation_failed" {
		t.Fatalf("expected replayed state to fail, got %q", back)
	}
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	e := newTestRouter(t, nil)

	for _, path := range []string{"/health", "/health/ready", "/api/public/health"} {
		if rec := do(t, e, http.MethodGet, path, "", ""); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := do(t, e, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "echo_requests_total") {
		t.Fatalf("expected echo request metrics in output")
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	e := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/user/journal", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
}

func TestRouter_SwaggerDocs(t *testing.T) {
	e := newTestRouter(t, nil)

	rec := do(t, e, http.MethodGet, "/swagger/doc.json", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/api/user/journal") {
		t.Fatalf("expected journal route in docs")
	}
}
