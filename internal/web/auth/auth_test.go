package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/meridianworks/meridian.studio/internal/identity"
	"github.com/meridianworks/meridian.studio/internal/web/session"
)

type fakeIdentity struct {
	signInSession identity.Session
	signInErr     error
	lastEmail     string
	signOutCalls  int
}

func (f *fakeIdentity) Refresh(context.Context, string) (identity.Session, error) {
	return identity.Session{}, identity.ErrRefreshInvalid
}

func (f *fakeIdentity) SignIn(_ context.Context, email string, _ string) (identity.Session, error) {
	f.lastEmail = email
	return f.signInSession, f.signInErr
}

func (f *fakeIdentity) SignOut(context.Context, string) error {
	f.signOutCalls++
	return nil
}

func mountLogin(t *testing.T, id identity.Client) http.Handler {
	t.Helper()
	m := New(WithSessions(&session.Provider{Identity: id}))
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return mount.Handler
}

func postForm(path string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestLoginPageRendersForm(t *testing.T) {
	t.Parallel()

	handler := mountLogin(t, &fakeIdentity{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login?next=%2Fportal%2Facme", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `name="email"`) || !strings.Contains(body, `name="password"`) {
		t.Fatalf("form inputs missing:\n%s", body)
	}
	if !strings.Contains(body, `name="next" value="/portal/acme"`) {
		t.Fatalf("next path not carried into form:\n%s", body)
	}
}

func TestLoginSubmitRedirectsToNext(t *testing.T) {
	t.Parallel()

	fake := &fakeIdentity{signInSession: identity.Session{
		UserID:       "user-1",
		AccessToken:  "acc",
		RefreshToken: "ref",
	}}
	handler := mountLogin(t, fake)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postForm("/login", url.Values{
		"email":    {"a@b.c"},
		"password": {"pw"},
		"next":     {"/portal/acme"},
	}))
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if got := rec.Header().Get("Location"); got != "/portal/acme" {
		t.Fatalf("Location = %q, want /portal/acme", got)
	}
	if fake.lastEmail != "a@b.c" {
		t.Fatalf("email = %q, want a@b.c", fake.lastEmail)
	}
	if len(rec.Result().Cookies()) != 2 {
		t.Fatalf("cookies = %d, want session pair", len(rec.Result().Cookies()))
	}
}

func TestLoginSubmitDropsExternalNext(t *testing.T) {
	t.Parallel()

	handler := mountLogin(t, &fakeIdentity{signInSession: identity.Session{UserID: "u", AccessToken: "a", RefreshToken: "r"}})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postForm("/login", url.Values{
		"email":    {"a@b.c"},
		"password": {"pw"},
		"next":     {"https://evil.test/"},
	}))
	if got := rec.Header().Get("Location"); got != "/portal" {
		t.Fatalf("Location = %q, want default /portal", got)
	}
}

func TestLoginSubmitBadCredentials(t *testing.T) {
	t.Parallel()

	handler := mountLogin(t, &fakeIdentity{signInErr: errors.New("invalid_grant")})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postForm("/login", url.Values{
		"email":    {"a@b.c"},
		"password": {"wrong"},
	}))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "did not match") {
		t.Fatalf("error text missing:\n%s", rec.Body.String())
	}
}

func TestLoginSubmitMissingFields(t *testing.T) {
	t.Parallel()

	handler := mountLogin(t, &fakeIdentity{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, postForm("/login", url.Values{"email": {"a@b.c"}}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestLogoutClearsSessionAndRedirectsHome(t *testing.T) {
	t.Parallel()

	fake := &fakeIdentity{}
	m := LogoutModule{Sessions: &session.Provider{Identity: fake}}
	mount, err := m.Mount()
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}

	r := httptest.NewRequest(http.MethodPost, "/logout", nil)
	r.AddCookie(&http.Cookie{Name: "meridian_access", Value: "acc"})
	r.AddCookie(&http.Cookie{Name: "meridian_refresh", Value: "ref"})
	rec := httptest.NewRecorder()
	mount.Handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("Location = %q, want /", got)
	}
	if fake.signOutCalls != 1 {
		t.Fatalf("sign-out calls = %d, want 1", fake.signOutCalls)
	}
	cleared := 0
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge == -1 {
			cleared++
		}
	}
	if cleared != 2 {
		t.Fatalf("cleared cookies = %d, want 2", cleared)
	}
}
