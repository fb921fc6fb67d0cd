// Package auth serves the sign-in and sign-out endpoints.
package auth

import (
	"net/http"
	"strings"

	"github.com/meridianworks/meridian.studio/internal/web/module"
	"github.com/meridianworks/meridian.studio/internal/web/platform/httpx"
	"github.com/meridianworks/meridian.studio/internal/web/platform/pagerender"
	"github.com/meridianworks/meridian.studio/internal/web/routepath"
	"github.com/meridianworks/meridian.studio/internal/web/session"
	"github.com/meridianworks/meridian.studio/internal/web/templates"
)

// Option configures a login module.
type Option func(*Module)

// WithSessions sets the session provider.
func WithSessions(p *session.Provider) Option {
	return func(m *Module) { m.sessions = p }
}

// Module serves the shared sign-in page for the marketing and portal
// surfaces. The admin console carries its own sign-in page.
type Module struct {
	sessions *session.Provider
}

// New returns a login module configured by the given options.
func New(opts ...Option) Module {
	var m Module
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// ID returns a stable module identifier.
func (Module) ID() string { return "auth" }

// Healthy reports whether sign-in can reach the identity service.
func (m Module) Healthy() bool { return m.sessions != nil && m.sessions.Identity != nil }

// Mount wires login route handlers.
func (m Module) Mount() (module.Mount, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+routepath.Login, m.handleLoginPage)
	mux.HandleFunc("POST "+routepath.Login, m.handleLoginSubmit)
	return module.Mount{Prefix: routepath.Login, Handler: mux}, nil
}

func (m Module) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	HandleLoginPage(w, r, routepath.Login, "Sign in")
}

// HandleLoginPage renders a sign-in page for the given form action.
func HandleLoginPage(w http.ResponseWriter, r *http.Request, loginPath string, title string) {
	writeLoginPage(w, r, loginPath, title, "", http.StatusOK)
}

func (m Module) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	HandleSubmit(w, r, m.sessions, routepath.Login, "Sign in", routepath.Portal)
}

// HandleSubmit runs the credential exchange for a login form post and
// redirects to the sanitized next path on success. The admin login page
// reuses it with its own paths.
func HandleSubmit(w http.ResponseWriter, r *http.Request, sessions *session.Provider, loginPath string, title string, defaultNext string) {
	if err := r.ParseForm(); err != nil {
		writeLoginPage(w, r, loginPath, title, "The form could not be read.", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeLoginPage(w, r, loginPath, title, "Email and password are required.", http.StatusBadRequest)
		return
	}
	if sessions == nil {
		writeLoginPage(w, r, loginPath, title, "Sign-in is unavailable right now.", http.StatusServiceUnavailable)
		return
	}
	if _, err := sessions.SignIn(w, r, email, password); err != nil {
		writeLoginPage(w, r, loginPath, title, "That email and password did not match.", http.StatusUnauthorized)
		return
	}
	next := routepath.SanitizeNextPath(r.PostFormValue(routepath.NextQueryKey))
	if next == "" {
		next = defaultNext
	}
	httpx.WriteRedirect(w, r, next)
}

func writeLoginPage(w http.ResponseWriter, r *http.Request, loginPath string, title string, errorText string, status int) {
	next := ""
	if r != nil {
		next = routepath.SanitizeNextPath(r.URL.Query().Get(routepath.NextQueryKey))
		if next == "" {
			next = routepath.SanitizeNextPath(r.PostFormValue(routepath.NextQueryKey))
		}
	}
	_ = pagerender.Write(w, r, pagerender.Page{
		Title:      title,
		StatusCode: status,
		Body: templates.Section("",
			templates.Heading(title, ""),
			templates.CredentialsForm(loginPath, next, errorText),
		),
	})
}
